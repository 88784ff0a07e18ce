package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-compositor/internal/logging"
	"github.com/goliatone/go-compositor/pkg/generate"
	"github.com/goliatone/go-compositor/pkg/openapi"
	"github.com/goliatone/go-compositor/pkg/schema"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	logLevel  string
	defs      string
	openAPI   string
	themeFile string
	variant   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "compositor",
		Short: "Compose markup from node trees and column schemas",
		Long: `compositor renders interchange JSON into markup and generates table views
and editable forms from relational column descriptors.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags (available to all commands)
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.logLevel, "log-level", os.Getenv(logging.EnvLevel), "Log level (debug, info, warn, error), defaults to $"+logging.EnvLevel+" or info")
	flags.StringVar(&opts.defs, "defs", "", "Directory of YAML/JSON table definitions")
	flags.StringVar(&opts.openAPI, "openapi", "", "OpenAPI document whose component schemas become tables")
	flags.StringVar(&opts.themeFile, "theme", "", "Theme file providing class-name tokens")
	flags.StringVar(&opts.variant, "variant", "", "Theme variant to apply")

	cmd.AddCommand(
		newEscapeCmd(),
		newComposeCmd(),
		newTableCmd(opts),
		newFormCmd(opts),
		newFillCmd(opts),
		newLintCmd(opts),
		newServeCmd(opts),
	)
	return cmd
}

func (o *rootOptions) logger(cmd *cobra.Command) (*slog.Logger, error) {
	level, err := logging.ParseLevel(o.logLevel)
	if err != nil {
		return nil, err
	}
	return logging.NewWriter(cmd.ErrOrStderr(), level), nil
}

// store loads the table definitions named by --defs and --openapi into a
// single store. Table names must be unique across both sources.
func (o *rootOptions) store(ctx context.Context) (*schema.Store, error) {
	var tables []schema.Table

	if dir := strings.TrimSpace(o.defs); dir != "" {
		defs, err := schema.LoadFS(os.DirFS(dir))
		if err != nil {
			return nil, err
		}
		for _, name := range defs.Names() {
			table, _ := defs.Table(name)
			tables = append(tables, table)
		}
	}
	if path := strings.TrimSpace(o.openAPI); path != "" {
		parsed, err := openapi.LoadFile(ctx, path, openapi.WithValidation(true))
		if err != nil {
			return nil, err
		}
		tables = append(tables, parsed...)
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("no table definitions: pass --defs or --openapi")
	}
	return schema.NewStore(tables...)
}

func (o *rootOptions) table(ctx context.Context, name string) (schema.Table, error) {
	store, err := o.store(ctx)
	if err != nil {
		return schema.Table{}, err
	}
	table, ok := store.Table(name)
	if !ok {
		return schema.Table{}, fmt.Errorf("table %q not found (have: %s)", name, strings.Join(store.Names(), ", "))
	}
	return table, nil
}

// generateOptions returns the generator options implied by the persistent
// flags: the logger and, when --theme is set, the theme classes.
func (o *rootOptions) generateOptions(logger *slog.Logger) ([]generate.Option, error) {
	options := []generate.Option{generate.WithLogger(logger)}
	if strings.TrimSpace(o.themeFile) == "" {
		return options, nil
	}
	selection, err := loadTheme(o.themeFile, o.variant)
	if err != nil {
		return nil, err
	}
	return append(options, generate.WithTheme(selection)), nil
}

func tableRows(table schema.Table) []generate.Row {
	rows := make([]generate.Row, 0, len(table.Rows))
	for _, row := range table.Rows {
		rows = append(rows, generate.Row(row))
	}
	return rows
}
