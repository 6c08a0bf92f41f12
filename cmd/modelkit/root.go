package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-modelkit/pkg/hints"
	"github.com/goliatone/go-modelkit/pkg/loader"
	"github.com/goliatone/go-modelkit/pkg/schema"
)

// app carries the state shared by every command.
type app struct {
	cfg      Config
	logger   zerolog.Logger
	hints    []string
	registry *hints.Registry
}

func newRootCommand(cfg Config) *cobra.Command {
	a := &app{cfg: cfg, logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "modelkit",
		Short: "Inspect, derive and export declarative schemas",
		Long: `modelkit works on schemas declared in JSON or YAML definition files.

Examples:
  modelkit inspect people.yaml
  modelkit derive people.yaml --schema person --fields name,email
  modelkit jsonschema people.yaml --schema person
  modelkit validate people.yaml --schema person record.json
  modelkit openapi api.yaml`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringSliceVar(&a.hints, "hint", nil, "declare an extra hint name accepted in definitions (repeatable)")
	flags.StringVar(&a.cfg.LogLevel, "log-level", cfg.LogLevel, "log level (overrides MODELKIT_LOG_LEVEL)")
	flags.BoolVar(&a.cfg.StrictHints, "strict-hints", cfg.StrictHints, "reject unknown x-modelkit-* extensions")

	root.AddCommand(
		newInspectCommand(a),
		newDeriveCommand(a),
		newJSONSchemaCommand(a),
		newValidateCommand(a),
		newFillCommand(a),
		newOpenAPICommand(a),
		newWatchCommand(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	logger, err := newLogger(a.cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.logger = logger

	a.registry = hints.NewRegistry(hints.WithParent(hints.Default))
	for _, name := range a.hints {
		if name = strings.TrimSpace(name); name != "" {
			a.registry.Declare(name)
		}
	}
	a.logger.Debug().Strs("hints", a.hints).Msg("registry ready")
	return nil
}

func (a *app) loaderOptions() []loader.Option {
	return []loader.Option{loader.WithRegistry(a.registry), loader.WithLogger(a.logger)}
}

func (a *app) loadCatalog(path string) (*loader.Catalog, error) {
	return loader.LoadFile(path, a.loaderOptions()...)
}

// schemaFrom loads path and returns the schema called name.
func (a *app) schemaFrom(path, name string) (*schema.Schema, error) {
	catalog, err := a.loadCatalog(path)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("--schema is required (one of %s)", strings.Join(catalog.Names(), ", "))
	}
	s, ok := catalog.Schema(name)
	if !ok {
		return nil, fmt.Errorf("schema %q not found in %s (have %s)", name, path, strings.Join(catalog.Names(), ", "))
	}
	return s, nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
