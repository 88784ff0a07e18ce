package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-compositor/pkg/validation"
)

func newLintCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Check table definitions for problems",
		Long: `Reports unsupported column types, malformed descriptors, labels naming no
column and rows that do not fit their columns. Exits non-zero when any issue
is found.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.store(cmd.Context())
			if err != nil {
				return err
			}
			result := validation.ValidateStore(store)

			w := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintln(w, string(data)); err != nil {
					return err
				}
			} else {
				for _, issue := range result.Issues {
					if _, err := fmt.Fprintln(w, issue.String()); err != nil {
						return err
					}
				}
			}

			if !result.Valid {
				return fmt.Errorf("%d issue(s) found", len(result.Issues))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}
