// Package syntax defines the declaration tree that parsers hand to the
// extractor. It only carries what documentation needs: namespaces, type
// declarations, their members, modifiers and the raw doc comment that
// precedes each declaration.
package syntax

// CompilationUnit is the parsed form of one source file.
type CompilationUnit struct {
	Path       string
	Namespaces []*NamespaceDecl
	// Types declared outside of any namespace.
	Types []*TypeDecl
}

// NamespaceDecl is a namespace block or file-scoped namespace. Name is
// fully qualified, so a namespace nested in "A" named "B" is "A.B".
type NamespaceDecl struct {
	Name  string
	Types []*TypeDecl
	// Nested namespace blocks, in declaration order.
	Namespaces []*NamespaceDecl
	Line       int
}

// TypeKind is the kind of a type declaration.
type TypeKind int

const (
	TypeClass TypeKind = iota
	TypeInterface
)

func (k TypeKind) String() string {
	switch k {
	case TypeInterface:
		return "interface"
	default:
		return "class"
	}
}

// TypeDecl is a class or interface declaration.
type TypeDecl struct {
	Kind       TypeKind
	Name       string
	Modifiers  []string
	DocComment string
	Members    []Member
	Nested     []*TypeDecl
	Line       int
	// Offset is the byte offset of the declaration in its file.
	Offset int
}

// Member is the closed set of member declarations: *PropertyDecl,
// *FieldDecl and *MethodDecl.
type Member interface {
	member()
	// Mods returns the member's modifier keywords in source order.
	Mods() []string
	// Doc returns the raw doc comment attached to the member.
	Doc() string
}

// MemberBase holds what every member declaration carries.
type MemberBase struct {
	Modifiers  []string
	DocComment string
	Line       int
}

func (m MemberBase) Mods() []string { return m.Modifiers }
func (m MemberBase) Doc() string    { return m.DocComment }

// PropertyDecl is a property declaration.
type PropertyDecl struct {
	MemberBase
	Name string
	Type string
}

// FieldDecl is a field declaration. A single declaration may introduce
// several variables sharing one type ("int a, b;").
type FieldDecl struct {
	MemberBase
	Type  string
	Names []string
}

// MethodDecl is a method declaration.
type MethodDecl struct {
	MemberBase
	Name       string
	ReturnType string
	Parameters []ParameterDecl
}

// ParameterDecl is one formal parameter of a method.
type ParameterDecl struct {
	Name string
	Type string
}

func (*PropertyDecl) member() {}
func (*FieldDecl) member()    {}
func (*MethodDecl) member()   {}
