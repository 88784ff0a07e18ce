package main

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-compositor"
	"github.com/goliatone/go-compositor/pkg/generate"
)

func newTableCmd(opts *rootOptions) *cobra.Command {
	var (
		format    string
		rowsFile  string
		keepNulls bool
	)

	cmd := &cobra.Command{
		Use:   "table <table>",
		Short: "Render the table view of a defined table",
		Long: `Renders the rows of a table definition (or of --rows, a JSON array of
objects) as a table. Columns and their order follow the table's labels.`,
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
			options = append(options, generate.WithBlankNulls(!keepNulls))

			rows := tableRows(table)
			if rowsFile != "" {
				if rows, err = loadRows(cmd, rowsFile); err != nil {
					return err
				}
			}

			root := generate.Table(rows, table.Columns, table.DisplayLabels(), options...)
			return writeRendered(cmd, format, root, compositor.RenderOptions{Title: table.Name})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "html", "Output format (html, page, json)")
	cmd.Flags().StringVar(&rowsFile, "rows", "", "JSON file of rows to show instead of the stored ones (- for stdin)")
	cmd.Flags().BoolVar(&keepNulls, "keep-nulls", false, "Show null values as \"null\" instead of blank cells")
	return cmd
}

func loadRows(cmd *cobra.Command, path string) ([]generate.Row, error) {
	data, err := readInput(cmd, []string{path})
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var rows []generate.Row
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode rows %s: %w", path, err)
	}
	return rows, nil
}
