package parsers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mvp-joe/project-classdoc/internal/syntax"
	sitter "github.com/tree-sitter/go-tree-sitter"
	csharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
)

// modifierKeywords are the declaration modifiers kept on syntax nodes.
var modifierKeywords = map[string]bool{
	"public":    true,
	"private":   true,
	"protected": true,
	"internal":  true,
	"static":    true,
	"abstract":  true,
	"sealed":    true,
	"virtual":   true,
	"override":  true,
	"readonly":  true,
	"const":     true,
	"async":     true,
	"partial":   true,
	"new":       true,
	"extern":    true,
	"unsafe":    true,
	"volatile":  true,
	"required":  true,
	"file":      true,
}

// CSharpParser parses C# files into declaration trees.
type CSharpParser struct {
	language *sitter.Language
}

var _ Parser = (*CSharpParser)(nil)

// NewCSharpParser creates a new C# parser.
func NewCSharpParser() *CSharpParser {
	return &CSharpParser{
		language: sitter.NewLanguage(csharp.Language()),
	}
}

// ParseFile reads and parses a C# source file.
func (p *CSharpParser) ParseFile(ctx context.Context, filePath string) (*syntax.CompilationUnit, error) {
	source, err := os.ReadFile(filePath)
	if err != nil {
		return nil, &ParseError{Path: filePath, Err: err}
	}
	return p.Parse(ctx, filePath, source)
}

// Parse parses C# source already in memory. filePath is only used for
// reporting.
func (p *CSharpParser) Parse(ctx context.Context, filePath string, source []byte) (*syntax.CompilationUnit, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(p.language); err != nil {
		return nil, &ParseError{Path: filePath, Err: err}
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, &ParseError{Path: filePath, Err: errors.New("parser returned no tree")}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, syntaxError(filePath, root, source)
	}

	unit := &syntax.CompilationUnit{Path: filePath}
	p.extractCompilationUnit(root, source, unit)
	return unit, nil
}

// syntaxError builds a ParseError pointing at the first broken node.
func syntaxError(filePath string, root *sitter.Node, source []byte) error {
	bad := firstError(root)
	if bad == nil {
		return &ParseError{Path: filePath, Err: errors.New("syntax error")}
	}

	pos := bad.StartPosition()
	var cause error
	if bad.IsMissing() {
		cause = fmt.Errorf("missing %s", bad.Kind())
	} else {
		snippet := compactText(bad, source)
		if len(snippet) > 40 {
			snippet = snippet[:40] + "..."
		}
		cause = fmt.Errorf("unexpected %q", snippet)
	}

	return &ParseError{
		Path:   filePath,
		Line:   int(pos.Row) + 1,
		Column: int(pos.Column) + 1,
		Err:    cause,
	}
}

// extractCompilationUnit collects namespaces and global types. Types that
// follow a file-scoped namespace belong to it.
func (p *CSharpParser) extractCompilationUnit(root *sitter.Node, source []byte, unit *syntax.CompilationUnit) {
	var fileScoped *syntax.NamespaceDecl

	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(uint(i))
		switch child.Kind() {
		case "namespace_declaration":
			unit.Namespaces = append(unit.Namespaces, p.extractNamespace(child, source, ""))

		case "file_scoped_namespace_declaration":
			fileScoped = &syntax.NamespaceDecl{
				Name: compactText(fieldOrChild(child, "qualified_name", "name"), source),
				Line: lineOf(child),
			}
			// Newer grammars nest the members under the declaration itself.
			p.extractNamespaceMembers(child, source, fileScoped)
			unit.Namespaces = append(unit.Namespaces, fileScoped)

		case "class_declaration", "interface_declaration":
			decl := p.extractType(child, source)
			if fileScoped != nil {
				fileScoped.Types = append(fileScoped.Types, decl)
			} else {
				unit.Types = append(unit.Types, decl)
			}
		}
	}
}

// extractNamespace extracts a namespace block and, recursively, the
// namespaces declared inside it.
func (p *CSharpParser) extractNamespace(node *sitter.Node, source []byte, outer string) *syntax.NamespaceDecl {
	name := compactText(fieldOrChild(node, "qualified_name", "name"), source)
	if name == "" {
		name = compactText(findChildByType(node, "identifier"), source)
	}
	if outer != "" {
		name = outer + "." + name
	}

	ns := &syntax.NamespaceDecl{Name: name, Line: lineOf(node)}
	if body := fieldOrChild(node, "declaration_list", "body"); body != nil {
		p.extractNamespaceMembers(body, source, ns)
	}
	return ns
}

// extractNamespaceMembers collects type declarations and nested namespaces
// that are direct children of node.
func (p *CSharpParser) extractNamespaceMembers(node *sitter.Node, source []byte, ns *syntax.NamespaceDecl) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(uint(i))
		switch child.Kind() {
		case "namespace_declaration":
			ns.Namespaces = append(ns.Namespaces, p.extractNamespace(child, source, ns.Name))
		case "class_declaration", "interface_declaration":
			ns.Types = append(ns.Types, p.extractType(child, source))
		}
	}
}

// extractType extracts a class or interface declaration with its members
// and nested types.
func (p *CSharpParser) extractType(node *sitter.Node, source []byte) *syntax.TypeDecl {
	decl := &syntax.TypeDecl{
		Kind:       syntax.TypeClass,
		Name:       extractNodeText(fieldOrChild(node, "identifier", "name"), source),
		Modifiers:  modifiersOf(node, source),
		DocComment: docCommentOf(node, source),
		Line:       lineOf(node),
		Offset:     int(node.StartByte()),
	}
	if node.Kind() == "interface_declaration" {
		decl.Kind = syntax.TypeInterface
	}

	body := fieldOrChild(node, "declaration_list", "body")
	if body == nil {
		return decl
	}

	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(uint(i))
		switch child.Kind() {
		case "property_declaration":
			decl.Members = append(decl.Members, p.extractProperty(child, source))
		case "field_declaration":
			if field := p.extractField(child, source); field != nil {
				decl.Members = append(decl.Members, field)
			}
		case "method_declaration":
			decl.Members = append(decl.Members, p.extractMethod(child, source))
		case "class_declaration", "interface_declaration":
			decl.Nested = append(decl.Nested, p.extractType(child, source))
		}
	}

	return decl
}

// extractProperty extracts a property declaration.
func (p *CSharpParser) extractProperty(node *sitter.Node, source []byte) *syntax.PropertyDecl {
	return &syntax.PropertyDecl{
		MemberBase: memberBase(node, source),
		Name:       extractNodeText(fieldOrChild(node, "identifier", "name"), source),
		Type:       compactText(node.ChildByFieldName("type"), source),
	}
}

// extractField extracts a field declaration with one name per declarator.
func (p *CSharpParser) extractField(node *sitter.Node, source []byte) *syntax.FieldDecl {
	varDecl := findChildByType(node, "variable_declaration")
	if varDecl == nil {
		return nil
	}

	field := &syntax.FieldDecl{
		MemberBase: memberBase(node, source),
		Type:       compactText(varDecl.ChildByFieldName("type"), source),
	}
	for _, declarator := range findChildrenByType(varDecl, "variable_declarator") {
		name := extractNodeText(fieldOrChild(declarator, "identifier", "name"), source)
		if name != "" {
			field.Names = append(field.Names, name)
		}
	}
	return field
}

// extractMethod extracts a method declaration and its parameters.
func (p *CSharpParser) extractMethod(node *sitter.Node, source []byte) *syntax.MethodDecl {
	method := &syntax.MethodDecl{
		MemberBase: memberBase(node, source),
		Name:       extractNodeText(fieldOrChild(node, "identifier", "name"), source),
		ReturnType: compactText(fieldOrChild(node, "", "returns", "type"), source),
	}

	params := fieldOrChild(node, "parameter_list", "parameters")
	for _, param := range findChildrenByType(params, "parameter") {
		method.Parameters = append(method.Parameters, syntax.ParameterDecl{
			Name: extractNodeText(fieldOrChild(param, "identifier", "name"), source),
			Type: compactText(param.ChildByFieldName("type"), source),
		})
	}
	return method
}

func memberBase(node *sitter.Node, source []byte) syntax.MemberBase {
	return syntax.MemberBase{
		Modifiers:  modifiersOf(node, source),
		DocComment: docCommentOf(node, source),
		Line:       lineOf(node),
	}
}

// modifiersOf returns the modifier keywords declared directly on node.
func modifiersOf(node *sitter.Node, source []byte) []string {
	var mods []string
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		switch {
		case child.Kind() == "modifier":
			mods = append(mods, strings.TrimSpace(extractNodeText(child, source)))
		case !child.IsNamed() && modifierKeywords[child.Kind()]:
			mods = append(mods, child.Kind())
		}
	}
	return mods
}

// docCommentOf returns the contiguous block of "///" comment lines that
// immediately precedes node, or "" when there is none.
func docCommentOf(node *sitter.Node, source []byte) string {
	var lines []string
	next := node
	for prev := node.PrevSibling(); prev != nil; prev = prev.PrevSibling() {
		if prev.Kind() != "comment" {
			break
		}
		text := strings.TrimSpace(extractNodeText(prev, source))
		if !strings.HasPrefix(text, "///") {
			break
		}
		// A blank line between the comment and the declaration detaches it.
		if int(next.StartPosition().Row)-int(prev.EndPosition().Row) > 1 {
			break
		}
		lines = append(lines, text)
		next = prev
	}

	// Collected bottom-up.
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	return strings.Join(lines, "\n")
}
