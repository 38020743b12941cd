package extractor

import (
	"context"
	"fmt"
	"sort"

	"github.com/mvp-joe/project-classdoc/internal/logging"
	"github.com/mvp-joe/project-classdoc/internal/model"
	"github.com/mvp-joe/project-classdoc/internal/parsers"
	"github.com/mvp-joe/project-classdoc/internal/syntax"
	"github.com/sirupsen/logrus"
)

// DefaultGlobalNamespace groups types declared outside any namespace.
const DefaultGlobalNamespace = "Global"

// ParseErrorPolicy decides what a build does with a file that fails to parse.
type ParseErrorPolicy string

const (
	// ParseErrorAbort stops the build and returns the parse error.
	ParseErrorAbort ParseErrorPolicy = "abort"
	// ParseErrorSkip logs the failure and continues with the next file.
	ParseErrorSkip ParseErrorPolicy = "skip"
)

// ProgressReporter receives per-file callbacks during a build.
type ProgressReporter interface {
	// OnFileProcessingStart is called before the first file is parsed.
	OnFileProcessingStart(totalFiles int)

	// OnFileProcessed is called after each file, parsed or skipped.
	OnFileProcessed(fileName string)
}

type noOpProgress struct{}

func (noOpProgress) OnFileProcessingStart(int) {}
func (noOpProgress) OnFileProcessed(string)    {}

// BuilderOptions configures a Builder. Zero values select the defaults.
type BuilderOptions struct {
	Parser          parsers.Parser
	Extractor       *Extractor
	Policy          ParseErrorPolicy
	GlobalNamespace string
	Logger          logrus.FieldLogger
	Progress        ProgressReporter
}

// Builder parses a list of files and extracts their types in order.
type Builder struct {
	parser          parsers.Parser
	extractor       *Extractor
	policy          ParseErrorPolicy
	globalNamespace string
	logger          logrus.FieldLogger
	progress        ProgressReporter
}

// NewBuilder creates a model builder.
func NewBuilder(opts BuilderOptions) *Builder {
	b := &Builder{
		parser:          opts.Parser,
		extractor:       opts.Extractor,
		policy:          opts.Policy,
		globalNamespace: opts.GlobalNamespace,
		logger:          opts.Logger,
		progress:        opts.Progress,
	}
	if b.parser == nil {
		b.parser = parsers.NewCSharpParser()
	}
	if b.extractor == nil {
		b.extractor = NewExtractor(nil)
	}
	if b.policy == "" {
		b.policy = ParseErrorAbort
	}
	if b.globalNamespace == "" {
		b.globalNamespace = DefaultGlobalNamespace
	}
	if b.logger == nil {
		b.logger = logging.Discard()
	}
	if b.progress == nil {
		b.progress = noOpProgress{}
	}
	return b
}

// Build parses files in the given order and returns their types: file order
// first, then declaration order within a file, each type followed by its
// nested types.
func (b *Builder) Build(ctx context.Context, files []string) ([]model.TypeEntity, error) {
	b.progress.OnFileProcessingStart(len(files))

	entities := []model.TypeEntity{}
	for _, file := range files {
		unit, err := b.parser.ParseFile(ctx, file)
		if err != nil {
			if b.policy != ParseErrorSkip {
				return nil, fmt.Errorf("failed to build model: %w", err)
			}
			b.logger.WithFields(logrus.Fields{
				"file":  file,
				"error": err,
			}).Warn("skipping file that failed to parse")
			b.progress.OnFileProcessed(file)
			continue
		}

		before := len(entities)
		entities = append(entities, b.extractUnit(unit)...)
		b.logger.WithFields(logrus.Fields{
			"file":  file,
			"types": len(entities) - before,
		}).Debug("extracted types")
		b.progress.OnFileProcessed(file)
	}

	return entities, nil
}

// extractUnit walks the namespaces and global types of one file in source
// order.
func (b *Builder) extractUnit(unit *syntax.CompilationUnit) []model.TypeEntity {
	var out []model.TypeEntity
	for _, d := range orderedDecls(unit.Namespaces, unit.Types, b.globalNamespace) {
		out = append(out, b.extractor.Extract(d.decl, d.namespace, "")...)
	}
	return out
}

type scopedDecl struct {
	decl      *syntax.TypeDecl
	namespace string
	offset    int
}

// orderedDecls flattens namespaces (recursively) and loose types into one
// list of top-level declarations sorted by source position.
func orderedDecls(namespaces []*syntax.NamespaceDecl, types []*syntax.TypeDecl, namespace string) []scopedDecl {
	var decls []scopedDecl
	for _, t := range types {
		decls = append(decls, scopedDecl{decl: t, namespace: namespace, offset: t.Offset})
	}
	for _, ns := range namespaces {
		decls = append(decls, orderedDecls(ns.Namespaces, ns.Types, ns.Name)...)
	}
	sort.SliceStable(decls, func(i, j int) bool {
		return decls[i].offset < decls[j].offset
	})
	return decls
}
