package ignore

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the rule store kept at the root of the extraction folder.
const FileName = "generate.ignore"

// RuleSet is the ordered list of ignore rules for one root folder.
// It is not safe for concurrent use; rules are edited between runs only.
type RuleSet struct {
	path  string
	rules []string
}

// NewRuleSet returns an empty rule set backed by <root>/generate.ignore.
// Nothing is read until Load is called.
func NewRuleSet(root string) *RuleSet {
	return &RuleSet{path: filepath.Join(root, FileName)}
}

// Load creates a rule set for root and reads its store.
func Load(root string) (*RuleSet, error) {
	rs := NewRuleSet(root)
	if err := rs.Load(); err != nil {
		return nil, err
	}
	return rs, nil
}

// Path returns the location of the rule store.
func (rs *RuleSet) Path() string {
	return rs.path
}

// Load replaces the in-memory rules with the contents of the store.
// Blank lines and lines starting with '#' are skipped. A missing store
// yields an empty rule set.
func (rs *RuleSet) Load() error {
	f, err := os.Open(rs.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			rs.rules = nil
			return nil
		}
		return fmt.Errorf("failed to open ignore file: %w", err)
	}
	defer f.Close()

	var rules []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rules = append(rules, line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read ignore file: %w", err)
	}

	rs.rules = rules
	return nil
}

// Save writes the rules to the store, one per line, in order.
func (rs *RuleSet) Save() error {
	var b strings.Builder
	for _, rule := range rs.rules {
		b.WriteString(rule)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(rs.path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write ignore file: %w", err)
	}
	return nil
}

// Rules returns a copy of the rules in insertion order.
func (rs *RuleSet) Rules() []string {
	out := make([]string, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Contains reports whether rule is already present.
func (rs *RuleSet) Contains(rule string) bool {
	return rs.indexOf(strings.TrimSpace(rule)) >= 0
}

// Add appends a rule. Empty rules and duplicates are ignored.
func (rs *RuleSet) Add(rule string) bool {
	rule = strings.TrimSpace(rule)
	if rule == "" || rs.Contains(rule) {
		return false
	}
	rs.rules = append(rs.rules, rule)
	return true
}

// Remove deletes a rule, reporting whether it was present.
func (rs *RuleSet) Remove(rule string) bool {
	i := rs.indexOf(strings.TrimSpace(rule))
	if i < 0 {
		return false
	}
	rs.rules = append(rs.rules[:i], rs.rules[i+1:]...)
	return true
}

// Replace swaps oldRule for newRule at the same position. If newRule is
// already present elsewhere, oldRule is dropped instead so the list stays
// free of duplicates.
func (rs *RuleSet) Replace(oldRule, newRule string) bool {
	oldRule = strings.TrimSpace(oldRule)
	newRule = strings.TrimSpace(newRule)
	i := rs.indexOf(oldRule)
	if i < 0 || newRule == "" {
		return false
	}
	if oldRule == newRule {
		return true
	}
	if rs.Contains(newRule) {
		rs.rules = append(rs.rules[:i], rs.rules[i+1:]...)
		return true
	}
	rs.rules[i] = newRule
	return true
}

// IsIgnored reports whether any rule matches the relative path.
func (rs *RuleSet) IsIgnored(relPath string) bool {
	_, ok := rs.MatchingRule(relPath)
	return ok
}

// IsDirIgnored reports whether a rule excludes the directory relDir with
// its whole subtree.
func (rs *RuleSet) IsDirIgnored(relDir string) bool {
	for _, rule := range rs.rules {
		if CoversDir(rule, relDir) {
			return true
		}
	}
	return false
}

// MatchingRule returns the first rule that matches relPath.
func (rs *RuleSet) MatchingRule(relPath string) (string, bool) {
	if relPath == "" {
		return "", false
	}
	for _, rule := range rs.rules {
		if Match(rule, relPath) {
			return rule, true
		}
	}
	return "", false
}

func (rs *RuleSet) indexOf(rule string) int {
	for i, r := range rs.rules {
		if r == rule {
			return i
		}
	}
	return -1
}
