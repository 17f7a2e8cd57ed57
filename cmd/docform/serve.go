package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-docform/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the form page and the document API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, err := a.server(ctx, addr)
			if err != nil {
				return err
			}
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

func (a *app) server(ctx context.Context, addr string) (*server.Server, error) {
	form, err := a.loadForm(ctx)
	if err != nil {
		return nil, err
	}
	pages, err := a.pages()
	if err != nil {
		return nil, err
	}
	if addr == "" {
		addr = a.cfg.Server.Addr
	}
	return server.New(form, a.composer(form), pages,
		server.WithLogger(a.logger),
		server.WithAddr(addr),
		server.WithTimeouts(a.cfg.ReadTimeout(), a.cfg.WriteTimeout()),
		server.WithShutdownGrace(a.cfg.ShutdownTimeout()),
		server.WithMaxBodyBytes(a.cfg.Server.MaxBodyBytes),
		server.WithVariant(a.cfg.Form.Variant),
	)
}
