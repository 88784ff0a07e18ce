package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-compositor"
	"github.com/goliatone/go-compositor/pkg/markup"
)

func newComposeCmd() *cobra.Command {
	var (
		format   string
		title    string
		sanitize bool
	)

	cmd := &cobra.Command{
		Use:   "compose [file]",
		Short: "Render interchange JSON into markup",
		Long: `Reads interchange JSON (objects with tag, className, innerText, innerHTML
or childElements; arrays; bare scalars) from a file or standard input and
renders it. Several top-level nodes are composed as a sequence by the html
format and wrapped in a div by the others. Pass --sanitize when the
innerHTML of the input is not trusted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			nodes, err := markup.Decode(data)
			if err != nil {
				return err
			}
			if sanitize {
				nodes = markup.SanitizeTree(nodes...)
			}

			if format == "html" && len(nodes) != 1 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), markup.Compose(nodes...))
				return err
			}
			root := markup.El("div", markup.Children(nodes...))
			if len(nodes) == 1 {
				root = nodes[0]
			}
			return writeRendered(cmd, format, root, compositor.RenderOptions{Title: title})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "html", "Output format (html, page, json)")
	cmd.Flags().StringVar(&title, "title", "", "Document title for the page format")
	cmd.Flags().BoolVar(&sanitize, "sanitize", false, "Clean innerHTML content before rendering")
	return cmd
}

// writeRendered writes root through the named built-in renderer, followed by a
// newline.
func writeRendered(cmd *cobra.Command, format string, root markup.Node, options compositor.RenderOptions) error {
	out, _, err := compositor.Render(cmd.Context(), format, root, options)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if _, err := w.Write(out); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w)
	return err
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", args[0], err)
	}
	return data, nil
}
