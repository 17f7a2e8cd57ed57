package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-docform/pkg/formpage"
)

func newFormCmd(a *app) *cobra.Command {
	var (
		output  string
		variant string
	)

	cmd := &cobra.Command{
		Use:   "form",
		Short: "Print the HTML form page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form, err := a.loadForm(cmd.Context())
			if err != nil {
				return err
			}
			pages, err := a.pages()
			if err != nil {
				return err
			}
			if variant == "" {
				variant = a.cfg.Form.Variant
			}
			html, err := pages.Render(cmd.Context(), form, formpage.PageOptions{Variant: variant})
			if err != nil {
				return err
			}

			if output != "" {
				if err := os.WriteFile(output, html, 0o644); err != nil {
					return fmt.Errorf("write form: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Form written to %s\n", output)
				return nil
			}
			_, err = cmd.OutOrStdout().Write(html)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&variant, "variant", "", "theme variant, e.g. dark")
	return cmd
}
