package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mvp-joe/project-classdoc/internal/extractor"
	"github.com/mvp-joe/project-classdoc/internal/generator"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	modelJSON            bool
	modelStart           int
	modelFiles           []string
	modelExclude         []string
	modelClasses         []string
	modelSkipParseErrors bool
)

// modelCmd represents the model command
var modelCmd = &cobra.Command{
	Use:   "model [root]",
	Short: "Print the extracted, numbered model without writing a document",
	Long: `Model runs the same selection, extraction and numbering as generate and
prints the result as YAML (default) or JSON. Useful for checking what a
document would contain, or for feeding other tools.

Examples:
  classdoc model
  classdoc model ./src --json --class 'Company.Shop.**'
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runModel,
}

func init() {
	rootCmd.AddCommand(modelCmd)
	f := modelCmd.Flags()
	f.BoolVar(&modelJSON, "json", false, "output as JSON")
	f.IntVarP(&modelStart, "start", "s", 1, "first section number")
	f.StringArrayVar(&modelFiles, "file", nil, "restrict to this root-relative file or folder (repeatable)")
	f.StringArrayVar(&modelExclude, "exclude", nil, "leave out this root-relative file or folder (repeatable)")
	f.StringArrayVar(&modelClasses, "class", nil, "only types matching this pattern (repeatable)")
	f.BoolVar(&modelSkipParseErrors, "skip-parse-errors", false, "skip files that fail to parse instead of aborting")
}

func runModel(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	opts := generator.OptionsFromConfig(root, cfg)
	if cmd.Flags().Changed("start") {
		opts.StartIndex = modelStart
	}
	opts.Files = modelFiles
	opts.Exclude = modelExclude
	opts.Classes = modelClasses
	if modelSkipParseErrors {
		opts.ParseErrors = extractor.ParseErrorSkip
	}

	return executeModel(cmd.Context(), generator.New(newLogger(), nil), opts, modelJSON, cmd.OutOrStdout())
}

// executeModel builds the model and encodes it to w.
func executeModel(ctx context.Context, gen *generator.Generator, opts generator.Options, asJSON bool, w io.Writer) error {
	m, err := gen.BuildModel(ctx, opts)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("failed to encode model: %w", err)
		}
		return nil
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}
	return enc.Close()
}
