package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/mvp-joe/project-classdoc/internal/ignore"
	"github.com/spf13/cobra"
)

var ignoreRoot string

// patternExample is one documented rule/path outcome shown in the ignore
// help text.
type patternExample struct {
	pattern string
	path    string
	ignored bool
}

var patternExamples = []patternExample{
	{"Migrations/**", "Migrations/Init.cs", true},
	{"src/*", "src/a.cs", true},
	{"src/*", "src/sub/a.cs", false},
	{"*.designer.cs", "Forms/Main.Designer.cs", true},
	{"Data/Program.cs", "data/program.cs", true},
	{"Migrations", "Data/Migrations/Init.cs", false},
}

func ignoreLongHelp() string {
	var b strings.Builder
	b.WriteString(`Ignore edits the gitignore-style rules stored in <root>/generate.ignore.
Every change is saved immediately. Paths are relative to the root and use
'/' separators ('\' is accepted too). The first matching rule wins.

Rule shapes:
  dir/**    dir itself and everything below it
  dir/*     direct children of dir only, not nested folders
  *.cs      '*' and '?' over the whole path; '*' spans '/' and
            matching is case-insensitive
  a/b.cs    exact match on the whole path, case-insensitive

The dir prefix of the first two shapes is compared case-sensitively.

Outcomes:
`)
	for _, ex := range patternExamples {
		verdict := "ignores"
		if !ex.ignored {
			verdict = "keeps"
		}
		fmt.Fprintf(&b, "  %-16s %-7s %s\n", ex.pattern, verdict, ex.path)
	}
	b.WriteString(`
Examples:
  classdoc ignore add 'Migrations/**' '*.Designer.cs'
  classdoc ignore replace 'Migrations/**' 'Data/Migrations/**'
  classdoc ignore check Migrations/Init.cs
`)
	return b.String()
}

// ignoreCmd groups the rule store commands.
var ignoreCmd = &cobra.Command{
	Use:   "ignore",
	Short: "Manage the generate.ignore rules of a source root",
	Long:  ignoreLongHelp(),
}

var ignoreListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the rules in order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuleSet(func(rules *ignore.RuleSet) error {
			return executeIgnoreList(rules, cmd.OutOrStdout())
		})
	},
}

var ignoreAddCmd = &cobra.Command{
	Use:   "add <pattern>...",
	Short: "Add rules; existing rules are left as they are",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuleSet(func(rules *ignore.RuleSet) error {
			return executeIgnoreAdd(rules, args, cmd.OutOrStdout())
		})
	},
}

var ignoreRemoveCmd = &cobra.Command{
	Use:   "remove <pattern>...",
	Short: "Remove rules",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuleSet(func(rules *ignore.RuleSet) error {
			return executeIgnoreRemove(rules, args, cmd.OutOrStdout())
		})
	},
}

var ignoreReplaceCmd = &cobra.Command{
	Use:   "replace <old> <new>",
	Short: "Replace a rule in place",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuleSet(func(rules *ignore.RuleSet) error {
			return executeIgnoreReplace(rules, args[0], args[1], cmd.OutOrStdout())
		})
	},
}

var ignoreCheckCmd = &cobra.Command{
	Use:   "check <path>...",
	Short: "Report whether root-relative paths are ignored, and by which rule",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuleSet(func(rules *ignore.RuleSet) error {
			return executeIgnoreCheck(rules, args, cmd.OutOrStdout())
		})
	},
}

func init() {
	rootCmd.AddCommand(ignoreCmd)
	ignoreCmd.PersistentFlags().StringVar(&ignoreRoot, "root", ".", "source root holding generate.ignore")
	ignoreCmd.AddCommand(ignoreListCmd, ignoreAddCmd, ignoreRemoveCmd, ignoreReplaceCmd, ignoreCheckCmd)
}

func withRuleSet(fn func(rules *ignore.RuleSet) error) error {
	root, err := resolveRoot([]string{ignoreRoot})
	if err != nil {
		return err
	}
	rules, err := ignore.Load(root)
	if err != nil {
		return err
	}
	return fn(rules)
}

func executeIgnoreList(rules *ignore.RuleSet, w io.Writer) error {
	if rules.Len() == 0 {
		fmt.Fprintf(w, "No rules in %s\n", rules.Path())
		return nil
	}
	for _, r := range rules.Rules() {
		fmt.Fprintln(w, r)
	}
	return nil
}

func executeIgnoreAdd(rules *ignore.RuleSet, patterns []string, w io.Writer) error {
	added := 0
	for _, p := range patterns {
		if rules.Add(p) {
			added++
			fmt.Fprintf(w, "Added %s\n", p)
		} else {
			fmt.Fprintf(w, "Skipped %s (empty or already present)\n", p)
		}
	}
	if added == 0 {
		return nil
	}
	return rules.Save()
}

func executeIgnoreRemove(rules *ignore.RuleSet, patterns []string, w io.Writer) error {
	for _, p := range patterns {
		if !rules.Contains(p) {
			return fmt.Errorf("rule %q not found in %s", p, rules.Path())
		}
	}
	for _, p := range patterns {
		rules.Remove(p)
		fmt.Fprintf(w, "Removed %s\n", p)
	}
	return rules.Save()
}

func executeIgnoreReplace(rules *ignore.RuleSet, oldRule, newRule string, w io.Writer) error {
	if !rules.Contains(oldRule) {
		return fmt.Errorf("rule %q not found in %s", oldRule, rules.Path())
	}
	if !rules.Replace(oldRule, newRule) {
		return fmt.Errorf("replacement rule must not be empty")
	}
	fmt.Fprintf(w, "Replaced %s with %s\n", oldRule, newRule)
	return rules.Save()
}

func executeIgnoreCheck(rules *ignore.RuleSet, paths []string, w io.Writer) error {
	for _, p := range paths {
		if rule, ok := rules.MatchingRule(p); ok {
			fmt.Fprintf(w, "%s: ignored by %s\n", p, rule)
		} else {
			fmt.Fprintf(w, "%s: not ignored\n", p)
		}
	}
	return nil
}
