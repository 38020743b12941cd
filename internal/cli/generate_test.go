package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mvp-joe/project-classdoc/internal/config"
	"github.com/mvp-joe/project-classdoc/internal/extractor"
	"github.com/mvp-joe/project-classdoc/internal/generator"
	"github.com/mvp-joe/project-classdoc/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Generate Command:
// - Unset flags leave the configuration untouched
// - --output without --format clears the configured format so the extension decides
// - --output with --format keeps the explicit format
// - Selections, start, title and --skip-parse-errors are applied
// - Watch mode generates once and again after a source change, and stops on cancel
// - resolveRoot defaults to the working directory and returns absolute paths
// - loadConfig reads <root>/.classdoc/config.yml
// - --format help lists every backend format

const fixtures = "../../testdata/code/csharp"

func changedSet(names ...string) func(string) bool {
	set := make(map[string]bool)
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}

func TestGenerateFlags_Apply(t *testing.T) {
	t.Parallel()

	base := generator.OptionsFromConfig("/src", config.Default())

	tests := []struct {
		name    string
		flags   generateFlags
		changed []string
		check   func(t *testing.T, opts generator.Options)
	}{
		{
			name:  "nothing changed",
			flags: generateFlags{start: 1},
			check: func(t *testing.T, opts generator.Options) {
				assert.Equal(t, base, opts)
			},
		},
		{
			name:    "output without format",
			flags:   generateFlags{output: "docs/classes.md"},
			changed: []string{"output"},
			check: func(t *testing.T, opts generator.Options) {
				assert.Equal(t, "docs/classes.md", opts.Output)
				assert.Empty(t, opts.Format)
			},
		},
		{
			name:    "output with format",
			flags:   generateFlags{output: "classes.txt", format: "markdown"},
			changed: []string{"output", "format"},
			check: func(t *testing.T, opts generator.Options) {
				assert.Equal(t, "classes.txt", opts.Output)
				assert.Equal(t, "markdown", opts.Format)
			},
		},
		{
			name: "selections and overrides",
			flags: generateFlags{
				start:           4,
				title:           "Design",
				files:           []string{"Models"},
				exclude:         []string{"Models/Generated"},
				classes:         []string{"Order"},
				skipParseErrors: true,
			},
			changed: []string{"start", "title"},
			check: func(t *testing.T, opts generator.Options) {
				assert.Equal(t, 4, opts.StartIndex)
				assert.Equal(t, "Design", opts.Title)
				assert.Equal(t, []string{"Models"}, opts.Files)
				assert.Equal(t, []string{"Models/Generated"}, opts.Exclude)
				assert.Equal(t, []string{"Order"}, opts.Classes)
				assert.Equal(t, extractor.ParseErrorSkip, opts.ParseErrors)
				assert.Equal(t, base.Output, opts.Output)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			opts := base
			tt.flags.apply(&opts, changedSet(tt.changed...))
			tt.check(t, opts)
		})
	}
}

func TestWatchAndGenerate(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	data, err := os.ReadFile(filepath.Join(fixtures, "global.cs"))
	require.NoError(t, err)
	source := filepath.Join(root, "Program.cs")
	require.NoError(t, os.WriteFile(source, data, 0644))

	opts := generator.OptionsFromConfig(root, config.Default())
	opts.Output = "out.md"
	opts.Format = ""
	output := filepath.Join(root, "out.md")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logger := logging.Discard()
	done := make(chan error, 1)
	go func() {
		done <- watchAndGenerate(ctx, generator.New(logger, nil), opts, logger)
	}()

	require.Eventually(t, func() bool {
		_, err := os.Stat(output)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond, "initial run")

	// Let the watcher settle before the change.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.Remove(output))
	require.NoError(t, os.WriteFile(source, append(data, []byte("\nclass Later {}\n")...), 0644))

	require.Eventually(t, func() bool {
		out, err := os.ReadFile(output)
		return err == nil && len(out) > 0 && strings.Contains(string(out), "Later")
	}, 5*time.Second, 20*time.Millisecond, "regenerated after change")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestResolveRoot(t *testing.T) {
	t.Parallel()

	wd, err := os.Getwd()
	require.NoError(t, err)

	root, err := resolveRoot(nil)
	require.NoError(t, err)
	assert.Equal(t, wd, root)

	root, err = resolveRoot([]string{"sub/dir"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "sub", "dir"), root)
}

func TestLoadConfig_FromRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, config.DirName), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, config.DirName, "config.yml"), []byte(`
output:
  path: docs/classes.md
  start_index: 7
`), 0644))

	cfg, err := loadConfig(root)
	require.NoError(t, err)
	assert.Equal(t, "docs/classes.md", cfg.Output.Path)
	assert.Equal(t, 7, cfg.Output.StartIndex)

	cfg, err = loadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, config.Default().Output.Path, cfg.Output.Path)
}

func TestGenerateFormatFlagHelp(t *testing.T) {
	t.Parallel()

	flag := generateCmd.Flags().Lookup("format")
	require.NotNil(t, flag)
	assert.Equal(t, "output format: docx or markdown", flag.Usage)
}
