// Package ignore implements the gitignore-style rules stored in a project's
// generate.ignore file.
package ignore

import (
	"strings"

	"github.com/gobwas/glob"
)

// globEscaper quotes the glob metacharacters that ignore rules treat as
// literals. Only '*' and '?' keep their wildcard meaning.
var globEscaper = strings.NewReplacer(
	"[", `\[`,
	"]", `\]`,
	"{", `\{`,
	"}", `\}`,
)

// Match reports whether a single ignore pattern matches a path relative to
// the extraction root. Both inputs are normalized to forward slashes.
//
// The pattern shape decides the policy, first match wins:
//
//	dir/**   dir itself and everything below it
//	dir/*    direct children of dir only
//	*.cs     wildcard over the whole path, case-insensitive
//	a/b.cs   exact, case-insensitive
func Match(pattern, path string) bool {
	pattern = normalize(pattern)
	path = normalize(path)
	if path == "" || pattern == "" {
		return false
	}

	switch {
	case strings.HasSuffix(pattern, "/**"):
		prefix := strings.TrimSuffix(pattern, "/**")
		return path == prefix || strings.HasPrefix(path, prefix+"/")

	case strings.HasSuffix(pattern, "/*"):
		prefix := strings.TrimSuffix(pattern, "/*")
		if !strings.HasPrefix(path, prefix+"/") {
			return false
		}
		return !strings.Contains(path[len(prefix)+1:], "/")

	case strings.ContainsAny(pattern, "*?"):
		g, err := compileWildcard(pattern)
		if err != nil {
			// A rule that cannot compile matches nothing.
			return false
		}
		return g.Match(strings.ToLower(path))

	default:
		return strings.EqualFold(path, pattern)
	}
}

// CoversDir reports whether pattern excludes a directory and everything
// below it. Only recursive rules and exact rules naming the directory do;
// other shapes are decided per file with Match.
func CoversDir(pattern, dir string) bool {
	pattern = normalize(pattern)
	dir = normalize(dir)
	if dir == "" || pattern == "" {
		return false
	}

	switch {
	case strings.HasSuffix(pattern, "/**"):
		prefix := strings.TrimSuffix(pattern, "/**")
		return dir == prefix || strings.HasPrefix(dir, prefix+"/")
	case strings.HasSuffix(pattern, "/*"), strings.ContainsAny(pattern, "*?"):
		return false
	default:
		return strings.EqualFold(dir, pattern)
	}
}

// compileWildcard compiles a lower-cased wildcard rule without separators,
// so '*' spans '/' as well.
func compileWildcard(pattern string) (glob.Glob, error) {
	return glob.Compile(globEscaper.Replace(strings.ToLower(pattern)))
}

func normalize(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}
