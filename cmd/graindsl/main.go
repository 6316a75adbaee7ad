package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/grainsearch/grain-dsl/query"
	"github.com/grainsearch/grain-dsl/search"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "graindsl",
		Short: "Grain DSL - search query expression toolkit",
		Long: `Grain DSL builds, combines and validates search engine query bodies.

Run 'graindsl render' to turn a YAML or JSON definition into an engine body.
Run 'graindsl --help' for available commands.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		renderCmd(),
		validateCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a query or search definition into an engine body",
		Long: `Read a YAML or JSON definition and print the JSON body the engine
expects. With --search the file is treated as a full search request
(query plus aggregations, sorting, pagination); otherwise it is a bare
query expression.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asSearch, _ := cmd.Flags().GetBool("search")
			compact, _ := cmd.Flags().GetBool("compact")

			body, err := renderFile(args[0], asSearch, compact)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(body))
			return nil
		},
	}

	cmd.Flags().Bool("search", false, "treat the definition as a full search request")
	cmd.Flags().Bool("compact", false, "emit compact JSON instead of indented")

	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check that definitions parse into valid query expressions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var failed bool
			for _, path := range args {
				if _, err := loadDefinition(path); err != nil {
					failed = true
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			}
			if failed {
				return fmt.Errorf("validation failed")
			}
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("graindsl %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built:  %s\n", date)
		},
	}
}

func renderFile(path string, asSearch, compact bool) ([]byte, error) {
	def, err := loadDefinition(path)
	if err != nil {
		return nil, err
	}

	var body map[string]any
	if asSearch {
		s, err := search.FromMap(def)
		if err != nil {
			return nil, err
		}
		body = s.ToMap()
	} else {
		q, err := query.FromMap(def)
		if err != nil {
			return nil, err
		}
		body = q.ToMap()
	}

	if compact {
		return json.Marshal(body)
	}
	return json.MarshalIndent(body, "", "  ")
}

func loadDefinition(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var def map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		def = normalizeYAML(def)
	}
	return def, nil
}

// normalizeYAML rewrites map[any]any values produced by older YAML documents
// into map[string]any so they match the JSON-decoded shape.
func normalizeYAML(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalizeYAMLValue(v)
	}
	return out
}

func normalizeYAMLValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return normalizeYAML(t)
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeYAMLValue(val)
		}
		return out
	case []any:
		for i, item := range t {
			t[i] = normalizeYAMLValue(item)
		}
		return t
	default:
		return v
	}
}
