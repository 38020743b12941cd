// Package extractor turns parsed declaration trees into the class
// specification model.
package extractor

import (
	"github.com/mvp-joe/project-classdoc/internal/doccomment"
	"github.com/mvp-joe/project-classdoc/internal/model"
	"github.com/mvp-joe/project-classdoc/internal/syntax"
)

// visibilityOrder is the order in which access modifiers are checked.
var visibilityOrder = []model.Visibility{
	model.VisibilityPublic,
	model.VisibilityPrivate,
	model.VisibilityProtected,
	model.VisibilityInternal,
}

// Extractor converts type declarations into TypeEntity records.
type Extractor struct {
	docs *doccomment.Resolver
}

// NewExtractor creates an extractor that resolves doc comments with docs.
// A nil resolver uses the default one.
func NewExtractor(docs *doccomment.Resolver) *Extractor {
	if docs == nil {
		docs = doccomment.NewResolver()
	}
	return &Extractor{docs: docs}
}

// Extract returns the entity for decl followed by the entities of its nested
// types, depth first. parentPath is the dotted name of the enclosing type, or
// "" for a top-level declaration.
func (e *Extractor) Extract(decl *syntax.TypeDecl, namespace, parentPath string) []model.TypeEntity {
	var out []model.TypeEntity
	e.extract(decl, namespace, parentPath, &out)
	return out
}

func (e *Extractor) extract(decl *syntax.TypeDecl, namespace, parentPath string, out *[]model.TypeEntity) {
	name := decl.Name
	if parentPath != "" {
		name = parentPath + "." + decl.Name
	}

	entity := model.TypeEntity{
		Name:       name,
		Namespace:  namespace,
		Kind:       kindOf(decl.Kind),
		Summary:    e.docs.Summary(decl.DocComment),
		Attributes: []model.Attribute{},
		Methods:    []model.Method{},
	}

	for _, member := range decl.Members {
		visibility := resolveVisibility(decl.Kind, member.Mods())
		summary := e.docs.Summary(member.Doc())

		switch m := member.(type) {
		case *syntax.PropertyDecl:
			entity.Attributes = append(entity.Attributes, model.Attribute{
				Name:       m.Name,
				Type:       m.Type,
				Visibility: visibility,
				Summary:    summary,
			})
		case *syntax.FieldDecl:
			for _, fieldName := range m.Names {
				entity.Attributes = append(entity.Attributes, model.Attribute{
					Name:       fieldName,
					Type:       m.Type,
					Visibility: visibility,
					Summary:    summary,
				})
			}
		case *syntax.MethodDecl:
			entity.Methods = append(entity.Methods, e.method(m, visibility, summary))
		}
	}

	*out = append(*out, entity)

	for _, nested := range decl.Nested {
		e.extract(nested, namespace, name, out)
	}
}

func (e *Extractor) method(m *syntax.MethodDecl, visibility model.Visibility, summary string) model.Method {
	descriptions := e.docs.ParamDescriptions(m.DocComment)

	params := make([]model.Parameter, 0, len(m.Parameters))
	for _, p := range m.Parameters {
		params = append(params, model.Parameter{
			Name:    p.Name,
			Type:    p.Type,
			Summary: descriptions[p.Name],
		})
	}

	return model.Method{
		Name:       m.Name,
		ReturnType: m.ReturnType,
		Visibility: visibility,
		Summary:    summary,
		Parameters: params,
	}
}

// resolveVisibility applies the declaring type's rules: interface members
// are always public; class members take the first access modifier found in
// visibilityOrder and default to private.
func resolveVisibility(kind syntax.TypeKind, modifiers []string) model.Visibility {
	if kind == syntax.TypeInterface {
		return model.VisibilityPublic
	}
	for _, v := range visibilityOrder {
		for _, mod := range modifiers {
			if mod == string(v) {
				return v
			}
		}
	}
	return model.VisibilityPrivate
}

func kindOf(kind syntax.TypeKind) model.Kind {
	if kind == syntax.TypeInterface {
		return model.KindInterface
	}
	return model.KindClass
}
