// Package selection models the file tree a run is generated from: every
// eligible source file under a root, each with a selected flag that can be
// toggled per file or per folder.
package selection

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Ignorer decides whether a root-relative, slash-separated path is excluded.
// IsDirIgnored is only true when the whole subtree is excluded; a directory
// it keeps is still descended and each file checked with IsIgnored.
type Ignorer interface {
	IsIgnored(relPath string) bool
	IsDirIgnored(relDir string) bool
}

// Options controls which files a scan admits.
type Options struct {
	// Extensions of eligible files, including the dot. Matched case-insensitively.
	Extensions []string
	// Directory names pruned wherever they appear (e.g. bin, obj).
	ExcludeDirs []string
}

// Node is a file or directory in the selection tree.
type Node struct {
	// Path relative to the root, slash-separated; "" for the root itself.
	Path     string
	Name     string
	IsDir    bool
	Selected bool
	Children []*Node
}

// Scan walks root and returns the tree of eligible files. Directories come
// before files, each sorted by name. Excluded and ignored entries are pruned,
// as are directories left without files. Every node starts selected.
func Scan(root string, ignorer Ignorer, opts Options) (*Node, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", root)
	}

	s := &scanner{
		root:        root,
		ignorer:     ignorer,
		extensions:  lowerSet(opts.Extensions),
		excludeDirs: make(map[string]bool, len(opts.ExcludeDirs)),
	}
	for _, d := range opts.ExcludeDirs {
		s.excludeDirs[d] = true
	}

	node := &Node{Name: filepath.Base(root), IsDir: true, Selected: true}
	if err := s.scanDir(node); err != nil {
		return nil, err
	}
	return node, nil
}

type scanner struct {
	root        string
	ignorer     Ignorer
	extensions  map[string]bool
	excludeDirs map[string]bool
}

func (s *scanner) scanDir(dir *Node) error {
	entries, err := os.ReadDir(filepath.Join(s.root, filepath.FromSlash(dir.Path)))
	if err != nil {
		return fmt.Errorf("failed to read directory %q: %w", dir.Path, err)
	}

	var dirs, files []*Node
	for _, entry := range entries {
		rel := path.Join(dir.Path, entry.Name())

		if entry.IsDir() {
			if s.excludeDirs[entry.Name()] || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			if s.ignorer != nil && s.ignorer.IsDirIgnored(rel) {
				continue
			}
			child := &Node{Path: rel, Name: entry.Name(), IsDir: true, Selected: true}
			if err := s.scanDir(child); err != nil {
				return err
			}
			if len(child.Children) > 0 {
				dirs = append(dirs, child)
			}
			continue
		}

		if !entry.Type().IsRegular() || !s.eligible(entry.Name()) {
			continue
		}
		if s.ignorer != nil && s.ignorer.IsIgnored(rel) {
			continue
		}
		files = append(files, &Node{Path: rel, Name: entry.Name(), Selected: true})
	}

	sortByName(dirs)
	sortByName(files)
	dir.Children = append(dirs, files...)
	return nil
}

func (s *scanner) eligible(name string) bool {
	if len(s.extensions) == 0 {
		return true
	}
	return s.extensions[strings.ToLower(filepath.Ext(name))]
}

// SetSelected sets the flag on n and all of its descendants.
func SetSelected(n *Node, selected bool) {
	if n == nil {
		return
	}
	n.Selected = selected
	for _, child := range n.Children {
		SetSelected(child, selected)
	}
}

// Find returns the node at relPath, or nil. "" and "." return n itself.
func (n *Node) Find(relPath string) *Node {
	relPath = strings.Trim(strings.ReplaceAll(relPath, `\`, "/"), "/")
	if relPath == "" || relPath == "." {
		return n
	}

	current := n
	for _, part := range strings.Split(path.Clean(relPath), "/") {
		var next *Node
		for _, child := range current.Children {
			if child.Name == part {
				next = child
				break
			}
		}
		if next == nil {
			return nil
		}
		current = next
	}
	return current
}

// SelectedFiles returns the relative paths of selected files in tree order.
func (n *Node) SelectedFiles() []string {
	var out []string
	n.walk(func(node *Node) {
		if !node.IsDir && node.Selected {
			out = append(out, node.Path)
		}
	})
	return out
}

// Files returns the relative paths of all files in tree order.
func (n *Node) Files() []string {
	var out []string
	n.walk(func(node *Node) {
		if !node.IsDir {
			out = append(out, node.Path)
		}
	})
	return out
}

func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, child := range n.Children {
		child.walk(fn)
	}
}

func sortByName(nodes []*Node) {
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].Name < nodes[j].Name
	})
}

func lowerSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if !strings.HasPrefix(v, ".") {
			v = "." + v
		}
		set[v] = true
	}
	return set
}
