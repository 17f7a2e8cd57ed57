package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-docform"
	"github.com/goliatone/go-docform/internal/config"
	"github.com/goliatone/go-docform/pkg/collect"
	"github.com/goliatone/go-docform/pkg/composer"
	"github.com/goliatone/go-docform/pkg/formdef"
	"github.com/goliatone/go-docform/pkg/formpage"
	"github.com/goliatone/go-docform/pkg/submission"
)

type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger

	newLogger func(cfg *config.Config, verbose bool) (*zap.Logger, error)
	newDriver func(out io.Writer) collect.PromptDriver
}

func newApp() *app {
	return &app{
		configPath: config.DefaultPath,
		newLogger:  productionLogger,
		newDriver:  collect.NewSurveyDriver,
	}
}

func productionLogger(cfg *config.Config, verbose bool) (*zap.Logger, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "docform",
		Short: "Generate the pre-job training report document",
		Long: `docform collects the student and training details through a web form,
a terminal prompt or a data file and produces the complete training report
as a Word document.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			logger, err := a.newLogger(cfg, a.verbose)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", a.configPath, "config file (optional)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newServeCmd(a),
		newGenerateCmd(a),
		newPromptCmd(a),
		newFormCmd(a),
		newLintCmd(a),
	)
	return root
}

func (a *app) loadForm(ctx context.Context) (formdef.Form, error) {
	src := formdef.SourceFromFS(formdef.DefaultDocument)
	if path := strings.TrimSpace(a.cfg.Form.Path); path != "" {
		src = formdef.SourceFromFile(path)
	}
	operationID := a.cfg.Form.OperationID
	if operationID == "" {
		operationID = formdef.DefaultOperationID
	}
	return docform.LoadForm(ctx, src, operationID)
}

func (a *app) composer(form formdef.Form) *composer.Composer {
	opts := append(a.cfg.ComposerOptions(form.Required), composer.WithLogger(a.logger))
	return composer.New(opts...)
}

func (a *app) pages() (*formpage.Renderer, error) {
	var opts []formpage.Option
	if dir := strings.TrimSpace(a.cfg.Form.Templates); dir != "" {
		engine, err := formpage.NewEngine(formpage.WithBaseDir(dir))
		if err != nil {
			return nil, err
		}
		opts = append(opts, formpage.WithEngine(engine))
	}
	return formpage.New(opts...)
}

// compose checks sub against form and renders the document, printing field
// messages to errOut when the submission is rejected.
func (a *app) compose(ctx context.Context, form formdef.Form, sub submission.Submission, errOut io.Writer) (composer.Result, error) {
	if err := form.Check(sub); err != nil {
		printFieldErrors(errOut, err)
		return composer.Result{}, err
	}
	result, err := a.composer(form).Compose(ctx, sub)
	if err != nil {
		printFieldErrors(errOut, err)
		return composer.Result{}, err
	}
	return result, nil
}

func printFieldErrors(w io.Writer, err error) {
	fields := submission.FieldErrors(err)
	if fields == nil {
		return
	}
	fmt.Fprintln(w, submission.UserMessage(err))
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		for _, message := range fields[key] {
			fmt.Fprintf(w, "  - %s\n", message)
		}
	}
}

// writeResult stores the document at output. An empty output uses the derived
// filename, a directory receives the derived filename and "-" means stdout.
func writeResult(cmd *cobra.Command, result composer.Result, output string) error {
	output = strings.TrimSpace(output)
	if output == "-" {
		_, err := result.WriteTo(cmd.OutOrStdout())
		return err
	}

	path := output
	if path == "" {
		path = result.Filename
	} else if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, result.Filename)
	}
	if err := os.WriteFile(path, result.Data, 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Document written to %s\n", path)
	return nil
}

// readSubmission decodes a JSON or YAML file; "-" reads YAML (or JSON) from
// stdin.
func readSubmission(cmd *cobra.Command, path string) (submission.Submission, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return submission.Submission{}, fmt.Errorf("read input: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return submission.FromJSON(data)
	}
	return submission.FromYAML(data)
}

func applySets(sub submission.Submission, sets []string) (submission.Submission, error) {
	for _, set := range sets {
		key, value, ok := strings.Cut(set, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return submission.Submission{}, fmt.Errorf("invalid --set value %q, expected key=value", set)
		}
		sub = sub.With(key, value)
	}
	return sub, nil
}
