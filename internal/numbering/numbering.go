// Package numbering groups extracted types by namespace and assigns the
// hierarchical "<start>.<namespace>.<type>" section numbers.
package numbering

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mvp-joe/project-classdoc/internal/model"
)

// ErrInvalidStartIndex is returned when the starting index is not positive.
var ErrInvalidStartIndex = errors.New("start index must be a positive integer")

// Section is a numbered heading. A two-level Path is a namespace header
// (Entity is nil); a three-level Path is a type header.
type Section struct {
	Path   []int             `json:"path" yaml:"path"`
	Title  string            `json:"title" yaml:"title"`
	Entity *model.TypeEntity `json:"entity,omitempty" yaml:"entity,omitempty"`
}

// Label renders the path as "3.1.2".
func (s Section) Label() string {
	parts := make([]string, len(s.Path))
	for i, n := range s.Path {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// Level returns the depth of the section.
func (s Section) Level() int {
	return len(s.Path)
}

// IsNamespace reports whether the section is a namespace header.
func (s Section) IsNamespace() bool {
	return s.Entity == nil
}

// Number groups entities by namespace in first-seen order and numbers each
// namespace start.i and each type start.i.j. Types keep their input order
// within a group.
func Number(entities []model.TypeEntity, start int) ([]Section, error) {
	if start < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidStartIndex, start)
	}

	var order []string
	groups := make(map[string][]int)
	for i := range entities {
		ns := entities[i].Namespace
		if _, seen := groups[ns]; !seen {
			order = append(order, ns)
		}
		groups[ns] = append(groups[ns], i)
	}

	sections := make([]Section, 0, len(order)+len(entities))
	for gi, ns := range order {
		sections = append(sections, Section{
			Path:  []int{start, gi + 1},
			Title: DisplayNamespace(ns),
		})
		for ti, idx := range groups[ns] {
			entity := entities[idx]
			sections = append(sections, Section{
				Path:   []int{start, gi + 1, ti + 1},
				Title:  entity.Name,
				Entity: &entity,
			})
		}
	}
	return sections, nil
}

// DisplayNamespace drops the leading (project) segment and joins the rest
// with "/". A single-segment namespace, such as the global sentinel, is shown
// as is so its group heading keeps a name.
func DisplayNamespace(namespace string) string {
	segments := strings.Split(namespace, ".")
	if len(segments) < 2 {
		return namespace
	}
	return strings.Join(segments[1:], "/")
}
