// Package model defines the extracted class-specification model: one
// TypeEntity per documented class or interface, with its attributes and
// methods.
package model

// Visibility is the access level reported for a member.
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityPrivate   Visibility = "private"
	VisibilityProtected Visibility = "protected"
	VisibilityInternal  Visibility = "internal"
)

// Kind distinguishes classes from interfaces.
type Kind string

const (
	KindClass     Kind = "class"
	KindInterface Kind = "interface"
)

// TypeEntity represents one extracted class or interface declaration.
// Name is dot-joined for nested types (e.g. "Outer.Inner").
type TypeEntity struct {
	Name       string      `json:"name" yaml:"name"`
	Namespace  string      `json:"namespace" yaml:"namespace"`
	Kind       Kind        `json:"kind" yaml:"kind"`
	Summary    string      `json:"summary,omitempty" yaml:"summary,omitempty"`
	Attributes []Attribute `json:"attributes" yaml:"attributes"`
	Methods    []Method    `json:"methods" yaml:"methods"`
}

// FullName returns the namespace-qualified name of the type.
func (t *TypeEntity) FullName() string {
	if t.Namespace == "" {
		return t.Name
	}
	return t.Namespace + "." + t.Name
}

// Attribute is a property or field member.
type Attribute struct {
	Name       string     `json:"name" yaml:"name"`
	Type       string     `json:"type" yaml:"type"`
	Visibility Visibility `json:"visibility" yaml:"visibility"`
	Summary    string     `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// Method is a method member with its parameter list.
type Method struct {
	Name       string      `json:"name" yaml:"name"`
	ReturnType string      `json:"return_type" yaml:"return_type"`
	Visibility Visibility  `json:"visibility" yaml:"visibility"`
	Summary    string      `json:"summary,omitempty" yaml:"summary,omitempty"`
	Parameters []Parameter `json:"parameters" yaml:"parameters"`
}

// Parameter is a single method parameter. Summary is empty when the
// method's doc comment has no matching <param> entry.
type Parameter struct {
	Name    string `json:"name" yaml:"name"`
	Type    string `json:"type" yaml:"type"`
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`
}
