package ignore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for Match:
// - "/**" rules match the folder itself and everything below it
// - "/*" rules match direct children only
// - wildcard rules are case-insensitive and '*' spans separators
// - '?' matches exactly one character
// - glob metacharacters other than '*' and '?' are literal
// - plain rules are exact, case-insensitive matches
// - backslash separators are normalized in both pattern and path
// - empty inputs never match

func TestMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		path    string
		want    bool
	}{
		{"recursive folder nested file", "src/**", "src/a/b.cs", true},
		{"recursive folder itself", "src/**", "src", true},
		{"recursive folder other root", "src/**", "lib/a.cs", false},
		{"recursive folder shared prefix", "src/**", "srcgen/a.cs", false},
		{"direct child", "src/*", "src/a.cs", true},
		{"direct child rejects grandchild", "src/*", "src/sub/a.cs", false},
		{"direct child rejects folder itself", "src/*", "src", false},
		{"wildcard case-insensitive", "*.cs", "Foo.CS", true},
		{"wildcard spans folders", "*.cs", "src/deep/Foo.cs", true},
		{"wildcard no match", "*.cs", "Foo.csproj", false},
		{"wildcard in middle", "src/*Tests.cs", "src/Unit/FooTests.cs", true},
		{"question mark single char", "File?.cs", "File1.cs", true},
		{"question mark needs a char", "File?.cs", "File.cs", false},
		{"question mark only one char", "File?.cs", "File12.cs", false},
		{"brackets are literal", "gen[1]*.cs", "gen[1]Foo.cs", true},
		{"brackets not a class", "gen[1]*.cs", "gen1Foo.cs", false},
		{"braces are literal", "{a,b}*.cs", "{a,b}x.cs", true},
		{"exact match", "src/Program.cs", "src/Program.cs", true},
		{"exact match ignores case", "src/program.cs", "SRC/Program.cs", true},
		{"exact match different path", "src/Program.cs", "src/Other.cs", false},
		{"backslash pattern", `src\**`, "src/a.cs", true},
		{"backslash path", "src/*", `src\a.cs`, true},
		{"empty path", "*", "", false},
		{"empty pattern", "", "a.cs", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Match(tt.pattern, tt.path))
		})
	}
}
