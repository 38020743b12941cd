package extractor

import (
	"context"
	"errors"
	"testing"

	"github.com/mvp-joe/project-classdoc/internal/model"
	"github.com/mvp-joe/project-classdoc/internal/parsers"
	"github.com/mvp-joe/project-classdoc/internal/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Builder:
// - Builds the fixture model in file order and pre-order within a file
// - Assigns global types to the configured sentinel namespace
// - Handles nested and file-scoped namespaces
// - Abort policy surfaces parse failures as ErrParse
// - Skip policy continues past broken files
// - Reports progress once per file
// - Top-level declarations keep source order, even on a single line

const testdata = "../../testdata/code/csharp/"

type recordingProgress struct {
	total int
	files []string
}

func (r *recordingProgress) OnFileProcessingStart(totalFiles int) { r.total = totalFiles }
func (r *recordingProgress) OnFileProcessed(fileName string)      { r.files = append(r.files, fileName) }

func fullNames(entities []model.TypeEntity) []string {
	names := make([]string, len(entities))
	for i := range entities {
		names[i] = entities[i].FullName()
	}
	return names
}

func TestBuilder_Fixtures(t *testing.T) {
	t.Parallel()

	progress := &recordingProgress{}
	b := NewBuilder(BuilderOptions{Progress: progress})

	files := []string{
		testdata + "shapes.cs",
		testdata + "global.cs",
		testdata + "filescoped.cs",
		testdata + "nested_namespace.cs",
	}
	entities, err := b.Build(context.Background(), files)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Company.Shop.Models.Order",
		"Company.Shop.Models.Order.Line",
		"Company.Shop.Models.Order.Line.Discount",
		"Company.Shop.Models.Order.IPricing",
		"Company.Shop.Models.IOrderRepository",
		"Global.Program",
		"Company.Shop.Services.INotifier",
		"Company.Shop.Services.EmailNotifier",
		"Company.Shop.Billing.Invoice",
	}, fullNames(entities))

	assert.Equal(t, 4, progress.total)
	assert.Equal(t, files, progress.files)

	order := entities[0]
	assert.Equal(t, "Represents a customer order.", order.Summary)
	require.Len(t, order.Attributes, 4)
	assert.Equal(t, "Id", order.Attributes[0].Name)
	assert.Equal(t, model.VisibilityPublic, order.Attributes[0].Visibility)
	assert.Equal(t, "note", order.Attributes[1].Name)
	assert.Equal(t, model.VisibilityPrivate, order.Attributes[1].Visibility)
	assert.Equal(t, "tax", order.Attributes[3].Name)

	require.Len(t, order.Methods, 3)
	addLine := order.Methods[0]
	assert.Equal(t, "Adds a product line to the order.", addLine.Summary)
	assert.Equal(t, "Number of units.", addLine.Parameters[1].Summary)
	assert.Equal(t, model.VisibilityInternal, order.Methods[1].Visibility)

	repo := entities[4]
	assert.Equal(t, model.KindInterface, repo.Kind)
	for _, m := range repo.Methods {
		assert.Equal(t, model.VisibilityPublic, m.Visibility, m.Name)
	}
	assert.Equal(t, "Number of stored orders.", repo.Attributes[0].Summary)
}

func TestBuilder_GlobalNamespace(t *testing.T) {
	t.Parallel()

	b := NewBuilder(BuilderOptions{GlobalNamespace: "Root"})
	entities, err := b.Build(context.Background(), []string{testdata + "global.cs"})
	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.Equal(t, "Root", entities[0].Namespace)
}

func TestBuilder_AbortOnParseError(t *testing.T) {
	t.Parallel()

	b := NewBuilder(BuilderOptions{})
	_, err := b.Build(context.Background(), []string{
		testdata + "global.cs",
		testdata + "broken.cs",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, parsers.ErrParse))
}

func TestBuilder_SkipParseErrors(t *testing.T) {
	t.Parallel()

	progress := &recordingProgress{}
	b := NewBuilder(BuilderOptions{Policy: ParseErrorSkip, Progress: progress})
	entities, err := b.Build(context.Background(), []string{
		testdata + "broken.cs",
		testdata + "missing.cs",
		testdata + "global.cs",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Global.Program"}, fullNames(entities))
	assert.Len(t, progress.files, 3)
}

func TestBuilder_EmptyInput(t *testing.T) {
	t.Parallel()

	entities, err := NewBuilder(BuilderOptions{}).Build(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, entities)
	assert.Empty(t, entities)
}

// stubParser returns a fixed unit for every file.
type stubParser struct {
	unit *syntax.CompilationUnit
}

func (s stubParser) ParseFile(ctx context.Context, filePath string) (*syntax.CompilationUnit, error) {
	return s.unit, nil
}

func TestBuilder_SourceOrder(t *testing.T) {
	t.Parallel()

	// Global type between two namespace blocks keeps its position.
	unit := &syntax.CompilationUnit{
		Types: []*syntax.TypeDecl{{Name: "Middle", Line: 10, Offset: 200}},
		Namespaces: []*syntax.NamespaceDecl{
			{Name: "A", Line: 1, Types: []*syntax.TypeDecl{{Name: "First", Line: 2, Offset: 20}}},
			{
				Name: "B", Line: 20,
				Types: []*syntax.TypeDecl{{Name: "Last", Line: 30, Offset: 600}},
				Namespaces: []*syntax.NamespaceDecl{
					{Name: "B.C", Line: 21, Types: []*syntax.TypeDecl{{Name: "Inner", Line: 22, Offset: 420}}},
				},
			},
		},
	}

	b := NewBuilder(BuilderOptions{Parser: stubParser{unit: unit}})
	entities, err := b.Build(context.Background(), []string{"x.cs"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A.First", "Global.Middle", "B.C.Inner", "B.Last"}, fullNames(entities))
}

func TestBuilder_SameLineDeclarations(t *testing.T) {
	t.Parallel()

	unit, err := parsers.NewCSharpParser().Parse(context.Background(), "one.cs",
		[]byte("namespace A { class X {} } class Y {}\n"))
	require.NoError(t, err)

	b := NewBuilder(BuilderOptions{Parser: stubParser{unit: unit}})
	entities, err := b.Build(context.Background(), []string{"one.cs"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A.X", "Global.Y"}, fullNames(entities))
}
