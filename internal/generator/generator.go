// Package generator runs the class-specification pipeline: select files,
// build the model, number it, assemble the document and write it out.
package generator

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/google/uuid"
	"github.com/mvp-joe/project-classdoc/internal/config"
	"github.com/mvp-joe/project-classdoc/internal/document"
	"github.com/mvp-joe/project-classdoc/internal/extractor"
	"github.com/mvp-joe/project-classdoc/internal/ignore"
	"github.com/mvp-joe/project-classdoc/internal/logging"
	"github.com/mvp-joe/project-classdoc/internal/model"
	"github.com/mvp-joe/project-classdoc/internal/numbering"
	"github.com/mvp-joe/project-classdoc/internal/parsers"
	"github.com/mvp-joe/project-classdoc/internal/selection"
	"github.com/sirupsen/logrus"
)

// Options describes one run.
type Options struct {
	// Root is the folder scanned for sources; the rule store lives here too.
	Root string
	// Output is the document path, relative to Root unless absolute.
	Output string
	// Format is "docx" or "markdown"; empty infers it from Output.
	Format     string
	StartIndex int
	Title      string

	// Files restricts the run to these root-relative files or folders.
	Files []string
	// Exclude deselects these root-relative files or folders.
	Exclude []string
	// Classes keeps only types whose qualified or plain name matches one of
	// these patterns ("*" stops at dots, "**" does not).
	Classes []string

	ParseErrors     extractor.ParseErrorPolicy
	GlobalNamespace string
	Extensions      []string
	ExcludeDirs     []string
}

// OptionsFromConfig fills Options from a loaded configuration.
func OptionsFromConfig(root string, cfg *config.Config) Options {
	return Options{
		Root:            root,
		Output:          cfg.Output.Path,
		Format:          cfg.Output.Format,
		StartIndex:      cfg.Output.StartIndex,
		Title:           cfg.Output.Title,
		ParseErrors:     extractor.ParseErrorPolicy(strings.ToLower(cfg.Extraction.OnParseError)),
		GlobalNamespace: cfg.Extraction.GlobalNamespace,
		Extensions:      cfg.Source.Extensions,
		ExcludeDirs:     cfg.Source.ExcludeDirs,
	}
}

// withDefaults fills unset selection and extraction options from the
// default configuration.
func (o Options) withDefaults() Options {
	defaults := config.Default()
	if len(o.Extensions) == 0 {
		o.Extensions = defaults.Source.Extensions
	}
	if o.ExcludeDirs == nil {
		o.ExcludeDirs = defaults.Source.ExcludeDirs
	}
	if o.GlobalNamespace == "" {
		o.GlobalNamespace = defaults.Extraction.GlobalNamespace
	}
	if o.Title == "" {
		o.Title = defaults.Output.Title
	}
	return o
}

// Model is the numbered model of a run, before any document is produced.
type Model struct {
	RunID    string              `json:"run_id" yaml:"run_id"`
	Files    []string            `json:"files" yaml:"files"`
	Entities []model.TypeEntity  `json:"-" yaml:"-"`
	Sections []numbering.Section `json:"sections" yaml:"sections"`
}

// Result summarizes a completed run.
type Result struct {
	RunID    string
	Files    []string
	Types    int
	Sections []numbering.Section
	// Output is the absolute path of the written document.
	Output string
	Bytes  int
}

// Generator executes runs. It keeps no state between runs.
type Generator struct {
	logger   logrus.FieldLogger
	progress ProgressReporter
	parser   parsers.Parser
}

// New creates a generator. A nil logger discards output; a nil progress
// reporter stays silent.
func New(logger logrus.FieldLogger, progress ProgressReporter) *Generator {
	if logger == nil {
		logger = logging.Discard()
	}
	if progress == nil {
		progress = &NoOpProgressReporter{}
	}
	return &Generator{
		logger:   logger,
		progress: progress,
		parser:   parsers.NewCSharpParser(),
	}
}

// Run performs a full generation and writes the document. Nothing is
// written unless every stage succeeds.
func (g *Generator) Run(ctx context.Context, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	if strings.TrimSpace(opts.Output) == "" {
		return nil, fmt.Errorf("%w: output path is required", ErrValidation)
	}
	format := resolveFormat(opts.Format, opts.Output)
	backend, err := document.NewBackend(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	m, err := g.BuildModel(ctx, opts)
	if err != nil {
		return nil, err
	}
	log := g.logger.WithField("run_id", m.RunID)

	doc := document.Assemble(opts.Title, opts.StartIndex, m.Sections)
	var buf bytes.Buffer
	if err := backend.Write(doc, &buf); err != nil {
		return nil, fmt.Errorf("%w: failed to render document: %w", ErrIO, err)
	}

	outPath := opts.Output
	if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(opts.Root, outPath)
	}
	if err := writeFile(outPath, buf.Bytes()); err != nil {
		return nil, err
	}

	result := &Result{
		RunID:    m.RunID,
		Files:    m.Files,
		Types:    len(m.Entities),
		Sections: m.Sections,
		Output:   outPath,
		Bytes:    buf.Len(),
	}
	log.WithFields(logrus.Fields{
		"output": outPath,
		"format": format,
		"types":  result.Types,
		"bytes":  result.Bytes,
	}).Info("document written")
	g.progress.OnComplete(result)
	return result, nil
}

// BuildModel validates opts, selects files, extracts and numbers the model.
func (g *Generator) BuildModel(ctx context.Context, opts Options) (*Model, error) {
	opts = opts.withDefaults()
	if err := validate(opts); err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	log := g.logger.WithFields(logrus.Fields{
		"run_id": runID,
		"root":   opts.Root,
	})

	classFilter, err := compileClassFilter(opts.Classes)
	if err != nil {
		return nil, err
	}

	rules, err := ignore.Load(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	files, err := g.selectFiles(opts, rules, log)
	if err != nil {
		return nil, err
	}
	g.progress.OnDiscoveryComplete(len(files))
	log.WithFields(logrus.Fields{
		"files": len(files),
		"rules": rules.Len(),
	}).Debug("selected files")

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = filepath.Join(opts.Root, filepath.FromSlash(f))
	}

	builder := extractor.NewBuilder(extractor.BuilderOptions{
		Parser:          g.parser,
		Policy:          opts.ParseErrors,
		GlobalNamespace: opts.GlobalNamespace,
		Logger:          log,
		Progress:        g.progress,
	})
	entities, err := builder.Build(ctx, paths)
	if err != nil {
		return nil, err
	}

	if classFilter != nil {
		entities = classFilter.apply(entities)
	}
	if len(entities) == 0 {
		return nil, fmt.Errorf("%w: no classes selected", ErrValidation)
	}

	sections, err := numbering.Number(entities, opts.StartIndex)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	log.WithField("types", len(entities)).Debug("model built")
	return &Model{
		RunID:    runID,
		Files:    files,
		Entities: entities,
		Sections: sections,
	}, nil
}

func validate(opts Options) error {
	if strings.TrimSpace(opts.Root) == "" {
		return fmt.Errorf("%w: root folder is required", ErrValidation)
	}
	info, err := os.Stat(opts.Root)
	if err != nil {
		return fmt.Errorf("%w: root folder %s: %w", ErrValidation, opts.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: root %s is not a folder", ErrValidation, opts.Root)
	}
	if opts.StartIndex < 1 {
		return fmt.Errorf("%w: %w: got %d", ErrValidation, numbering.ErrInvalidStartIndex, opts.StartIndex)
	}
	return nil
}

// selectFiles scans the tree and applies the Files and Exclude selections.
func (g *Generator) selectFiles(opts Options, rules *ignore.RuleSet, log logrus.FieldLogger) ([]string, error) {
	tree, err := selection.Scan(opts.Root, rules, selection.Options{
		Extensions:  opts.Extensions,
		ExcludeDirs: opts.ExcludeDirs,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	if len(opts.Files) > 0 {
		selection.SetSelected(tree, false)
		for _, f := range opts.Files {
			node := tree.Find(f)
			if node == nil {
				return nil, fmt.Errorf("%w: %s is not an eligible file or folder", ErrValidation, f)
			}
			selection.SetSelected(node, true)
		}
	}

	for _, f := range opts.Exclude {
		node := tree.Find(f)
		if node == nil {
			log.WithField("path", f).Warn("exclude path not found in file tree")
			continue
		}
		selection.SetSelected(node, false)
	}

	files := tree.SelectedFiles()
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files selected", ErrValidation)
	}
	return files, nil
}

type classFilter struct {
	globs []glob.Glob
}

func compileClassFilter(patterns []string) (*classFilter, error) {
	var f classFilter
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		g, err := glob.Compile(p, '.')
		if err != nil {
			return nil, fmt.Errorf("%w: invalid class pattern %q: %w", ErrValidation, p, err)
		}
		f.globs = append(f.globs, g)
	}
	if len(f.globs) == 0 {
		return nil, nil
	}
	return &f, nil
}

func (f *classFilter) apply(entities []model.TypeEntity) []model.TypeEntity {
	var kept []model.TypeEntity
	for i := range entities {
		full := entities[i].FullName()
		for _, g := range f.globs {
			if g.Match(full) || g.Match(entities[i].Name) {
				kept = append(kept, entities[i])
				break
			}
		}
	}
	return kept
}

// resolveFormat returns the explicit format or infers it from the output
// extension.
func resolveFormat(format, output string) string {
	if strings.TrimSpace(format) != "" {
		return format
	}
	switch strings.ToLower(filepath.Ext(output)) {
	case ".md", ".markdown":
		return document.FormatMarkdown
	default:
		return document.FormatDocx
	}
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("%w: failed to create output directory: %w", ErrIO, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", ErrIO, path, err)
	}
	return nil
}
