package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-modelkit/pkg/jsonschema"
	"github.com/goliatone/go-modelkit/pkg/loader"
	"github.com/goliatone/go-modelkit/pkg/model"
	"github.com/goliatone/go-modelkit/pkg/openapi"
	"github.com/goliatone/go-modelkit/pkg/prompt"
	"github.com/goliatone/go-modelkit/pkg/schema"
)

func newInspectCommand(a *app) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print the field tree of the schemas in a definition file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := a.loadCatalog(args[0])
			if err != nil {
				return err
			}
			names := catalog.Names()
			if name != "" {
				if _, ok := catalog.Schema(name); !ok {
					return fmt.Errorf("schema %q not found in %s", name, args[0])
				}
				names = []string{name}
			}
			for _, n := range names {
				s, _ := catalog.Schema(n)
				writeTree(cmd.OutOrStdout(), s, 0)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "schema", "", "only print this schema")
	return cmd
}

func newDeriveCommand(a *app) *cobra.Command {
	var (
		name    string
		fields  []string
		newName string
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "derive FILE",
		Short: "Copy a schema, optionally keeping only some of its fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := a.schemaFrom(args[0], name)
			if err != nil {
				return err
			}
			var options []schema.Option
			if len(fields) > 0 {
				options = append(options, schema.WithFieldNames(fields...))
			}
			if newName != "" {
				options = append(options, schema.WithName(newName))
			}
			derived, err := schema.CopyAs(source, options...)
			if err != nil {
				return err
			}
			a.logger.Debug().Str("source", source.Name()).Str("schema", derived.Name()).Msg("schema derived")

			if asJSON {
				data, err := jsonschema.Marshal(derived)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			writeTree(cmd.OutOrStdout(), derived, 0)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "schema", "", "schema to copy")
	cmd.Flags().StringSliceVar(&fields, "fields", nil, "own fields to keep, in order")
	cmd.Flags().StringVar(&newName, "name", "", "name of the copy")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the copy as JSON Schema")
	return cmd
}

func newJSONSchemaCommand(a *app) *cobra.Command {
	var (
		name     string
		id       string
		closed   bool
		defaults bool
	)
	cmd := &cobra.Command{
		Use:   "jsonschema FILE",
		Short: "Export a schema as a JSON Schema document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.schemaFrom(args[0], name)
			if err != nil {
				return err
			}
			options := []jsonschema.Option{jsonschema.WithID(id)}
			if closed {
				options = append(options, jsonschema.WithClosedObjects())
			}
			if defaults {
				options = append(options, jsonschema.WithDefaults())
			}
			data, err := jsonschema.Marshal(s, options...)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
	cmd.Flags().StringVar(&name, "schema", "", "schema to export")
	cmd.Flags().StringVar(&id, "id", "", "$id of the document")
	cmd.Flags().BoolVar(&closed, "closed", false, "forbid undeclared properties")
	cmd.Flags().BoolVar(&defaults, "defaults", false, "emit static default values")
	return cmd
}

func newValidateCommand(a *app) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "validate FILE RECORD",
		Short: "Validate a JSON record against a schema (RECORD may be - for stdin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.schemaFrom(args[0], name)
			if err != nil {
				return err
			}
			data, err := readInput(args[1])
			if err != nil {
				return err
			}
			inst, err := model.Bind(s).DecodeJSON(data)
			if err != nil {
				return err
			}

			err = inst.Validate()
			var problems model.ValidationErrors
			if errors.As(err, &problems) {
				for _, issue := range problems.Issues() {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", issue.Path, issue.Message)
				}
				return fmt.Errorf("%d validation issue(s)", len(problems))
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "schema", "", "schema to validate against")
	return cmd
}

func newFillCommand(a *app) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "fill FILE",
		Short: "Prompt for the members of a schema and print the record as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.schemaFrom(args[0], name)
			if err != nil {
				return err
			}
			inst, err := model.Bind(s).New(nil)
			if err != nil {
				return err
			}
			filler := prompt.NewFiller(
				prompt.WithDriver(prompt.NewSurveyDriver(cmd.ErrOrStderr())),
				prompt.WithLogger(a.logger),
			)
			if err := filler.Fill(cmd.Context(), inst); err != nil {
				return err
			}
			data, err := json.MarshalIndent(inst, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
	cmd.Flags().StringVar(&name, "schema", "", "schema to fill")
	return cmd
}

func newOpenAPICommand(a *app) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "openapi SPEC",
		Short: "Import the component schemas of an OpenAPI 3 document and print them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schemas, err := openapi.ImportFile(cmd.Context(), args[0],
				openapi.WithRegistry(a.registry),
				openapi.WithStrictHints(a.cfg.StrictHints),
				openapi.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}
			names := make([]string, 0, len(schemas))
			for n := range schemas {
				names = append(names, n)
			}
			slices.Sort(names)
			if name != "" {
				if _, ok := schemas[name]; !ok {
					return fmt.Errorf("component %q not found in %s", name, args[0])
				}
				names = []string{name}
			}
			for _, n := range names {
				writeTree(cmd.OutOrStdout(), schemas[n], 0)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "schema", "", "only print this component")
	return cmd
}

func newWatchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch FILE",
		Short: "Reload a definition file on every change and report its schemas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l := loader.New(a.loaderOptions()...)
			return l.Watch(cmd.Context(), args[0], func(catalog *loader.Catalog) {
				for _, n := range catalog.Names() {
					s, _ := catalog.Schema(n)
					writeTree(cmd.OutOrStdout(), s, 0)
				}
			})
		},
	}
}
