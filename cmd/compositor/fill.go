package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/goliatone/go-compositor/pkg/generate"
	"github.com/goliatone/go-compositor/pkg/prompt"
)

// Swapped in tests.
var (
	stdinIsTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
	newPromptDriver = prompt.NewSurveyDriver
)

func newFillCmd(opts *rootOptions) *cobra.Command {
	var (
		output string
		rowID  string
	)

	cmd := &cobra.Command{
		Use:   "fill <table>",
		Short: "Fill a table row interactively",
		Long: `Asks for every form column of a table in the terminal and prints the
normalised values, exactly as a submitted form would produce them. With
--row the stored row supplies the defaults.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !stdinIsTerminal() {
				return errors.New("fill needs an interactive terminal on stdin")
			}
			logger, err := opts.logger(cmd)
			if err != nil {
				return err
			}
			table, err := opts.table(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			var existing map[string]any
			if rowID != "" {
				if existing = findRow(table, rowID); existing == nil {
					return fmt.Errorf("table %q has no row %q", table.Name, rowID)
				}
			}

			styles := termenv.NewOutput(cmd.ErrOrStderr())
			options := []prompt.Option{
				prompt.WithPromptDriver(newPromptDriver()),
				prompt.WithOutputFormat(prompt.OutputFormat(output)),
				prompt.WithLogger(logger),
				prompt.WithTheme(prompt.Theme{
					InfoPrefix:  styles.String("› ").Foreground(styles.Color("#818cf8")).Bold().String(),
					ErrorPrefix: styles.String("✗ ").Foreground(styles.Color("#fb7185")).Bold().String(),
				}),
			}
			var fieldOptions []generate.Option
			if len(table.Labels) > 0 {
				options = append(options, prompt.WithLabels(table.Labels))
				fieldOptions = append(fieldOptions, generate.WithLabels(table.Labels))
			}
			filler := prompt.New(options...)

			fields := generate.Fields(table.Columns, fieldOptions...)
			if err := filler.Info(cmd.Context(), fmt.Sprintf("%s: %d fields", table.Name, len(fields))); err != nil {
				return err
			}

			values, err := filler.Fill(cmd.Context(), table.Columns, existing)
			if err != nil {
				return err
			}
			encoded, err := filler.Encode(values)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if _, err := w.Write(encoded); err != nil {
				return err
			}
			if prompt.OutputFormat(output) != prompt.OutputFormatPrettyText {
				_, err = fmt.Fprintln(w)
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", string(prompt.OutputFormatJSON), "Output format (json, form, pretty)")
	cmd.Flags().StringVar(&rowID, "row", "", "Use the stored row with this id as defaults")
	return cmd
}
