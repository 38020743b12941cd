package parsers

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/mvp-joe/project-classdoc/internal/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for CSharpParser:
// - Extracts namespace-scoped classes and interfaces in declaration order
// - Extracts properties, multi-variable fields and methods as typed members
// - Keeps modifier keywords on types and members
// - Attaches the contiguous "///" block preceding a declaration
// - Extracts nested classes and interfaces below their parent type
// - Collects types outside any namespace as global types
// - Handles file-scoped namespaces
// - Qualifies nested namespace blocks with the enclosing name
// - Reports syntax errors as ParseError with a position
// - Reports unreadable files as ParseError
// - Records the start offset of each type, distinct for types on one line

const csharpTestdata = "../../testdata/code/csharp/"

func parseFixture(t *testing.T, name string) *syntax.CompilationUnit {
	t.Helper()
	unit, err := NewCSharpParser().ParseFile(context.Background(), csharpTestdata+name)
	require.NoError(t, err)
	require.NotNil(t, unit)
	return unit
}

func TestCSharpParser_NamespaceTypes(t *testing.T) {
	t.Parallel()

	unit := parseFixture(t, "shapes.cs")
	require.Len(t, unit.Namespaces, 1)
	assert.Empty(t, unit.Types)

	ns := unit.Namespaces[0]
	assert.Equal(t, "Company.Shop.Models", ns.Name)
	require.Len(t, ns.Types, 2)

	order := ns.Types[0]
	assert.Equal(t, "Order", order.Name)
	assert.Equal(t, syntax.TypeClass, order.Kind)
	assert.Equal(t, []string{"public"}, order.Modifiers)
	assert.Contains(t, order.DocComment, "Represents a customer order.")

	repo := ns.Types[1]
	assert.Equal(t, "IOrderRepository", repo.Name)
	assert.Equal(t, syntax.TypeInterface, repo.Kind)
	assert.Equal(t, "/// <summary>Stores orders.</summary>", repo.DocComment)
}

func TestCSharpParser_Members(t *testing.T) {
	t.Parallel()

	unit := parseFixture(t, "shapes.cs")
	order := unit.Namespaces[0].Types[0]
	require.Len(t, order.Members, 6)

	id, ok := order.Members[0].(*syntax.PropertyDecl)
	require.True(t, ok, "first member should be a property")
	assert.Equal(t, "Id", id.Name)
	assert.Equal(t, "int", id.Type)
	assert.Equal(t, []string{"public"}, id.Modifiers)
	assert.Equal(t, "/// <summary>Unique order identifier.</summary>", id.DocComment)

	note, ok := order.Members[1].(*syntax.FieldDecl)
	require.True(t, ok, "second member should be a field")
	assert.Equal(t, "string", note.Type)
	assert.Equal(t, []string{"note"}, note.Names)
	assert.Empty(t, note.Modifiers)
	assert.Empty(t, note.DocComment)

	money, ok := order.Members[2].(*syntax.FieldDecl)
	require.True(t, ok)
	assert.Equal(t, "decimal", money.Type)
	assert.Equal(t, []string{"subtotal", "tax"}, money.Names)
	assert.Equal(t, []string{"protected"}, money.Modifiers)

	addLine, ok := order.Members[3].(*syntax.MethodDecl)
	require.True(t, ok)
	assert.Equal(t, "AddLine", addLine.Name)
	assert.Equal(t, "Line", addLine.ReturnType)
	assert.Equal(t, []syntax.ParameterDecl{
		{Name: "productId", Type: "int"},
		{Name: "quantity", Type: "int"},
	}, addLine.Parameters)
	assert.Contains(t, addLine.DocComment, `<param name="quantity">Number of units.</param>`)

	recalc, ok := order.Members[4].(*syntax.MethodDecl)
	require.True(t, ok)
	assert.Equal(t, "Recalculate", recalc.Name)
	assert.Equal(t, "void", recalc.ReturnType)
	assert.Empty(t, recalc.Parameters)
	assert.Equal(t, []string{"internal"}, recalc.Modifiers)

	sort, ok := order.Members[5].(*syntax.MethodDecl)
	require.True(t, ok)
	assert.Equal(t, "List<Line>", sort.ReturnType)
	assert.Equal(t, []string{"private", "static"}, sort.Modifiers)
	assert.Equal(t, "List<Line>", sort.Parameters[0].Type)
	assert.Equal(t, "descending", sort.Parameters[1].Name)
}

func TestCSharpParser_NestedTypes(t *testing.T) {
	t.Parallel()

	unit := parseFixture(t, "shapes.cs")
	order := unit.Namespaces[0].Types[0]
	require.Len(t, order.Nested, 2)

	line := order.Nested[0]
	assert.Equal(t, "Line", line.Name)
	assert.Equal(t, syntax.TypeClass, line.Kind)
	assert.Equal(t, "/// <summary>A single order line.</summary>", line.DocComment)
	require.Len(t, line.Nested, 1)
	assert.Equal(t, "Discount", line.Nested[0].Name)

	pricing := order.Nested[1]
	assert.Equal(t, "IPricing", pricing.Name)
	assert.Equal(t, syntax.TypeInterface, pricing.Kind)
	require.Len(t, pricing.Members, 1)
	price, ok := pricing.Members[0].(*syntax.MethodDecl)
	require.True(t, ok)
	assert.Equal(t, "decimal", price.ReturnType)
}

func TestCSharpParser_GlobalTypes(t *testing.T) {
	t.Parallel()

	unit := parseFixture(t, "global.cs")
	assert.Empty(t, unit.Namespaces)
	require.Len(t, unit.Types, 1)

	program := unit.Types[0]
	assert.Equal(t, "Program", program.Name)
	assert.Empty(t, program.Modifiers)
	assert.Equal(t, "/// <summary>Entry point.</summary>", program.DocComment)

	require.Len(t, program.Members, 1)
	main, ok := program.Members[0].(*syntax.MethodDecl)
	require.True(t, ok)
	assert.Equal(t, []string{"static"}, main.Modifiers)
	assert.Equal(t, "string[]", main.Parameters[0].Type)
}

func TestCSharpParser_FileScopedNamespace(t *testing.T) {
	t.Parallel()

	unit := parseFixture(t, "filescoped.cs")
	assert.Empty(t, unit.Types)
	require.Len(t, unit.Namespaces, 1)

	ns := unit.Namespaces[0]
	assert.Equal(t, "Company.Shop.Services", ns.Name)
	require.Len(t, ns.Types, 2)
	assert.Equal(t, "INotifier", ns.Types[0].Name)
	assert.Equal(t, "EmailNotifier", ns.Types[1].Name)
}

func TestCSharpParser_NestedNamespaces(t *testing.T) {
	t.Parallel()

	unit := parseFixture(t, "nested_namespace.cs")
	require.Len(t, unit.Namespaces, 1)

	outer := unit.Namespaces[0]
	assert.Equal(t, "Company", outer.Name)
	assert.Empty(t, outer.Types)
	require.Len(t, outer.Namespaces, 1)

	inner := outer.Namespaces[0]
	assert.Equal(t, "Company.Shop.Billing", inner.Name)
	require.Len(t, inner.Types, 1)
	assert.Equal(t, "Invoice", inner.Types[0].Name)
}

func TestCSharpParser_SyntaxError(t *testing.T) {
	t.Parallel()

	_, err := NewCSharpParser().ParseFile(context.Background(), csharpTestdata+"broken.cs")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParse))

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, csharpTestdata+"broken.cs", parseErr.Path)
	assert.Greater(t, parseErr.Line, 0)
	assert.Contains(t, err.Error(), "broken.cs")
}

func TestCSharpParser_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewCSharpParser().ParseFile(context.Background(), csharpTestdata+"does-not-exist.cs")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParse))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestCSharpParser_ParseSource(t *testing.T) {
	t.Parallel()

	source := []byte(`namespace Demo
{
    /// <summary>Detached.</summary>

    public class Gap
    {
        public int a, b, c;
    }
}
`)
	unit, err := NewCSharpParser().Parse(context.Background(), "inline.cs", source)
	require.NoError(t, err)

	gap := unit.Namespaces[0].Types[0]
	assert.Empty(t, gap.DocComment, "a blank line detaches the doc comment")

	field, ok := gap.Members[0].(*syntax.FieldDecl)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, field.Names)
}

func TestCSharpParser_TypeOffsets(t *testing.T) {
	t.Parallel()

	source := []byte("namespace A { class X {} } class Y {}\n")
	unit, err := NewCSharpParser().Parse(context.Background(), "one.cs", source)
	require.NoError(t, err)

	require.Len(t, unit.Namespaces, 1)
	require.Len(t, unit.Namespaces[0].Types, 1)
	require.Len(t, unit.Types, 1)

	x, y := unit.Namespaces[0].Types[0], unit.Types[0]
	assert.Equal(t, x.Line, y.Line)
	assert.Equal(t, strings.Index(string(source), "class X"), x.Offset)
	assert.Equal(t, strings.Index(string(source), "class Y"), y.Offset)
}
