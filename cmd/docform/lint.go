package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-docform"
	"github.com/goliatone/go-docform/pkg/formdef"
)

func newLintCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Check form definitions for unsupported x-formgen hints",
		Long: `Loads each OpenAPI form definition and reports unsupported or malformed
x-formgen hints, operations without a form body and required fields that have
no property. Without paths the embedded definition is checked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sources := make([]formdef.Source, 0, len(args))
			for _, path := range args {
				sources = append(sources, formdef.SourceFromFile(path))
			}
			if len(sources) == 0 {
				sources = append(sources, formdef.SourceFromFS(formdef.DefaultDocument))
			}

			total := 0
			for _, src := range sources {
				violations, err := docform.LintForm(cmd.Context(), src)
				if err != nil {
					return fmt.Errorf("lint %s: %w", src.Location(), err)
				}
				for _, v := range violations {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", src.Location(), v)
				}
				total += len(violations)
			}
			if total > 0 {
				return fmt.Errorf("lint: %d violation(s)", total)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}
