package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-docform/pkg/submission"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		input  string
		output string
		sets   []string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the report from a data file and/or --set values",
		Long: `Reads the submission from --input (JSON, or YAML for any other extension;
"-" reads stdin) and applies --set key=value pairs on top, then writes the
document to --output.

Example:
  docform generate --input student.yaml --set start_date=2024-03-01 --output out/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sub := submission.Submission{}
			if input != "" {
				var err error
				if sub, err = readSubmission(cmd, input); err != nil {
					return err
				}
			}
			sub, err := applySets(sub, sets)
			if err != nil {
				return err
			}

			form, err := a.loadForm(cmd.Context())
			if err != nil {
				return err
			}
			result, err := a.compose(cmd.Context(), form, sub, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			a.logger.Debug("generated", zap.String("filename", result.Filename), zap.Int("size", len(result.Data)))
			return writeResult(cmd, result, output)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "submission file (JSON or YAML, - for stdin)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file or directory (- for stdout, default derived filename)")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field value as key=value (repeatable)")
	return cmd
}
