package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-docform/pkg/collect"
	"github.com/goliatone/go-docform/pkg/submission"
)

func newPromptCmd(a *app) *cobra.Command {
	var (
		input  string
		output string
		yes    bool
	)

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill in the form interactively and generate the report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			seed := submission.Submission{}
			if input != "" {
				var err error
				if seed, err = readSubmission(cmd, input); err != nil {
					return err
				}
			}

			form, err := a.loadForm(cmd.Context())
			if err != nil {
				return err
			}

			collector := collect.New(
				collect.WithPromptDriver(a.newDriver(cmd.ErrOrStderr())),
				collect.WithConfirmation(!yes),
				collect.WithLogger(a.logger),
			)
			sub, err := collector.Collect(cmd.Context(), form, seed)
			if err != nil {
				printFieldErrors(cmd.ErrOrStderr(), err)
				return err
			}

			result, err := a.compose(cmd.Context(), form, sub, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return writeResult(cmd, result, output)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "file with values offered as defaults")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file or directory (- for stdout)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation step")
	return cmd
}
