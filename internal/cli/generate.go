package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mvp-joe/project-classdoc/internal/document"
	"github.com/mvp-joe/project-classdoc/internal/extractor"
	"github.com/mvp-joe/project-classdoc/internal/generator"
	"github.com/mvp-joe/project-classdoc/internal/watcher"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// generateFlags holds the generate command line. Only flags the user set
// override the configuration.
type generateFlags struct {
	output          string
	format          string
	start           int
	title           string
	files           []string
	exclude         []string
	classes         []string
	skipParseErrors bool
	watch           bool
	quiet           bool
}

var genFlags generateFlags

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate [root]",
	Short: "Generate the class specification document",
	Long: `Generate scans the root folder (default: current directory) for C# sources,
extracts every class and interface and writes a numbered class specification
document. Sections are numbered <start>.<namespace>.<type>.

The format is taken from --format, or inferred from the output extension
(.md for markdown, anything else for docx).

Examples:
  # Document the current directory into ClassSpecifications.docx
  classdoc generate

  # Markdown output, sections starting at 4
  classdoc generate ./src -o docs/classes.md -s 4

  # Only the Models folder, without generated code
  classdoc generate --file Models --exclude Models/Generated

  # Only types whose qualified name matches
  classdoc generate --class 'Company.Shop.**' --class Program

  # Regenerate whenever a source file changes
  classdoc generate --watch
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	f := generateCmd.Flags()
	f.StringVarP(&genFlags.output, "output", "o", "", "output document path, relative to root (default from config)")
	f.StringVar(&genFlags.format, "format", "", "output format: "+strings.Join(document.Formats(), " or "))
	f.IntVarP(&genFlags.start, "start", "s", 1, "first section number")
	f.StringVar(&genFlags.title, "title", "", "document title")
	f.StringArrayVar(&genFlags.files, "file", nil, "restrict to this root-relative file or folder (repeatable)")
	f.StringArrayVar(&genFlags.exclude, "exclude", nil, "leave out this root-relative file or folder (repeatable)")
	f.StringArrayVar(&genFlags.classes, "class", nil, "only types matching this pattern (repeatable)")
	f.BoolVar(&genFlags.skipParseErrors, "skip-parse-errors", false, "skip files that fail to parse instead of aborting")
	f.BoolVarP(&genFlags.watch, "watch", "w", false, "regenerate when source files change")
	f.BoolVarP(&genFlags.quiet, "quiet", "q", false, "disable progress bars and non-error output")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, err := resolveRoot(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	opts := generator.OptionsFromConfig(root, cfg)
	genFlags.apply(&opts, cmd.Flags().Changed)

	logger := newLogger()
	gen := generator.New(logger, NewCLIProgressReporter(cmd.ErrOrStderr(), genFlags.quiet))

	if genFlags.watch {
		return watchAndGenerate(ctx, gen, opts, logger)
	}
	_, err = gen.Run(ctx, opts)
	return err
}

// apply overrides opts with the flags for which changed reports true.
// Setting --output without --format lets the extension pick the format.
func (g *generateFlags) apply(opts *generator.Options, changed func(name string) bool) {
	if changed("output") {
		opts.Output = g.output
		if !changed("format") {
			opts.Format = ""
		}
	}
	if changed("format") {
		opts.Format = g.format
	}
	if changed("start") {
		opts.StartIndex = g.start
	}
	if changed("title") {
		opts.Title = g.title
	}
	opts.Files = g.files
	opts.Exclude = g.exclude
	opts.Classes = g.classes
	if g.skipParseErrors {
		opts.ParseErrors = extractor.ParseErrorSkip
	}
}

// watchAndGenerate runs once, then regenerates after every debounced batch of
// source changes until ctx is done. Failed runs are logged and watching
// continues.
func watchAndGenerate(ctx context.Context, gen *generator.Generator, opts generator.Options, logger logrus.FieldLogger) error {
	w, err := watcher.NewFileWatcher(opts.Root, watcher.Options{
		Extensions:  opts.Extensions,
		ExcludeDirs: opts.ExcludeDirs,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Stop()

	if _, err := gen.Run(ctx, opts); err != nil {
		logger.WithError(err).Error("generation failed")
	}

	// A pending signal already means a full regeneration, so extra batches
	// are dropped.
	changes := make(chan []string, 1)
	if err := w.Start(ctx, func(files []string) {
		select {
		case changes <- files:
		default:
		}
	}); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	logger.WithField("root", opts.Root).Info("watching for changes (Ctrl+C to stop)")
	for {
		select {
		case <-ctx.Done():
			return nil
		case files := <-changes:
			w.Pause()
			logger.WithField("files", len(files)).Info("sources changed, regenerating")
			if _, err := gen.Run(ctx, opts); err != nil {
				logger.WithError(err).Error("generation failed")
			}
			w.Resume()
		}
	}
}
