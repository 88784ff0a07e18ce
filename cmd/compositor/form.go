package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-compositor"
	"github.com/goliatone/go-compositor/pkg/generate"
	"github.com/goliatone/go-compositor/pkg/markup"
	"github.com/goliatone/go-compositor/pkg/render"
	"github.com/goliatone/go-compositor/pkg/schema"
)

func newFormCmd(opts *rootOptions) *cobra.Command {
	var (
		format string
		rowID  string
		hidden map[string]string
	)

	cmd := &cobra.Command{
		Use:   "form <table>",
		Short: "Render the editable form of a defined table",
		Long: `Renders a form for a table definition. With --row the stored row whose id
matches is used to populate the inputs. --hidden adds hidden inputs (for
example a CSRF token) to the form.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := opts.logger(cmd)
			if err != nil {
				return err
			}
			table, err := opts.table(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			options, err := opts.generateOptions(logger)
			if err != nil {
				return err
			}
			if len(table.Labels) > 0 {
				options = append(options, generate.WithLabels(table.Labels))
			}
			if rowID != "" {
				row := findRow(table, rowID)
				if row == nil {
					return fmt.Errorf("table %q has no row %q", table.Name, rowID)
				}
				options = append(options, generate.WithValues(row))
			}

			root := generate.Form(table.Columns, options...)
			return writeRendered(cmd, format, root, compositor.RenderOptions{
				Title:  table.Name,
				Hidden: render.SortedHiddenFields(render.MergeHiddenFields(hidden)),
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "html", "Output format (html, page, json)")
	cmd.Flags().StringVar(&rowID, "row", "", "Populate the form from the stored row with this id")
	cmd.Flags().StringToStringVar(&hidden, "hidden", nil, "Hidden inputs as name=value pairs")
	return cmd
}

func findRow(table schema.Table, id string) map[string]any {
	for _, row := range table.Rows {
		if markup.Stringify(row["id"]) == id {
			return row
		}
	}
	return nil
}
