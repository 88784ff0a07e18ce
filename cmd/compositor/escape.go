package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-compositor"
)

func newEscapeCmd() *cobra.Command {
	var script bool

	cmd := &cobra.Command{
		Use:   "escape [text...]",
		Short: "Escape text for markup or script strings",
		Long: `Escapes the arguments (joined by spaces) or, without arguments, standard
input. Markup escaping emits numeric references and leaves existing
references alone; --script emits \x escapes for use inside string literals.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				text = strings.TrimSuffix(string(data), "\n")
			}

			if script {
				text = compositor.EscapeScript(text)
			} else {
				text = compositor.EscapeMarkup(text)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
	cmd.Flags().BoolVar(&script, "script", false, "Escape for a script string literal instead of markup")
	return cmd
}
