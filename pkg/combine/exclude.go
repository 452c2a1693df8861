// File: pkg/combine/exclude.go
package combine

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// IgnoreFileName is the per-project exclusion file, read from the working
// directory when present.
const IgnoreFileName = ".combineignore"

// GlobalIgnoreEnv names the environment variable that points at a
// machine-wide exclusion file.
const GlobalIgnoreEnv = "COMBINEIGNORE_GLOBAL"

// Rule is one compiled exclusion pattern.
type Rule struct {
	expr   *regexp.Regexp
	negate bool
	line   string
}

// RuleSet matches slash-separated relative paths against gitignore-style
// patterns: '*' stays inside one segment, '**' crosses segments, a
// trailing '/' restricts the pattern to directories, '!' re-includes, and
// '#' starts a comment. The last matching rule wins.
type RuleSet struct {
	rules  []Rule
	logger *zap.Logger
}

// NewRuleSet returns an empty set. A nil logger is replaced with a no-op.
func NewRuleSet(logger *zap.Logger) *RuleSet {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RuleSet{logger: logger}
}

// Len returns the number of compiled rules.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// AddPatterns compiles pattern lines into the set. Lines that do not
// compile are dropped with a warning.
func (rs *RuleSet) AddPatterns(lines ...string) {
	for _, line := range lines {
		rule, err := compileRule(line)
		if err != nil {
			rs.logger.Warn("dropping unusable exclude pattern",
				zap.String("pattern", line),
				zap.Error(err))
			continue
		}
		if rule == nil {
			continue
		}
		rs.rules = append(rs.rules, *rule)
		rs.logger.Debug("compiled exclude pattern",
			zap.String("pattern", rule.line),
			zap.Bool("negate", rule.negate))
	}
}

// AddFile compiles every line of an exclusion file. A missing file is not
// an error.
func (rs *RuleSet) AddFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			rs.logger.Debug("no exclusion file", zap.String("path", path))
			return nil
		}
		return eris.Wrapf(err, "read exclusion file %s", path)
	}
	rs.AddPatterns(strings.Split(string(raw), "\n")...)
	rs.logger.Debug("loaded exclusion file",
		zap.String("path", path),
		zap.Int("rules", len(rs.rules)))
	return nil
}

// Excluded reports whether rel, a path relative to the expansion root, is
// excluded. Directories are matched with a trailing slash so 'dir/'
// patterns apply to them.
func (rs *RuleSet) Excluded(rel string, isDir bool) bool {
	candidate := filepath.ToSlash(rel)
	if isDir && !strings.HasSuffix(candidate, "/") {
		candidate += "/"
	}

	excluded := false
	for _, rule := range rs.rules {
		if rule.expr.MatchString(candidate) {
			excluded = !rule.negate
		}
	}
	return excluded
}

// LoadRules builds the exclusion rules for a collection run. Later sources
// override earlier ones: the global file, then dir's .combineignore, then
// extra patterns from configuration and flags.
func LoadRules(logger *zap.Logger, globalFile, dir string, extra []string) (*RuleSet, error) {
	rs := NewRuleSet(logger)
	if globalFile != "" {
		if err := rs.AddFile(globalFile); err != nil {
			return nil, err
		}
	}
	if dir != "" {
		if err := rs.AddFile(filepath.Join(dir, IgnoreFileName)); err != nil {
			return nil, err
		}
	}
	rs.AddPatterns(extra...)
	return rs, nil
}

// Regex metacharacters escaped before wildcard expansion. '*', '?', and
// '/' are left alone for the wildcard passes.
const regexMeta = `.+()|^$[]{}`

// Placeholders keep the single-star expansion from rewriting the regex
// fragments that replace '**'.
const (
	tokenStarsMiddle = "\x00sm\x00"
	tokenStarsTail   = "\x00st\x00"
	tokenStarsHead   = "\x00sh\x00"
)

var (
	starsMiddle = regexp.MustCompile(`/\*\*/`)
	starsTail   = regexp.MustCompile(`/\*\*$`)
	starsHead   = regexp.MustCompile(`^\*\*/`)
)

// compileRule turns one pattern line into a Rule. It returns (nil, nil)
// for blank lines and comments.
func compileRule(line string) (*Rule, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil, nil
	}

	negate := strings.HasPrefix(trimmed, "!")
	if negate {
		trimmed = strings.TrimPrefix(trimmed, "!")
	}

	// A leading slash roots the pattern at the expansion root; a trailing
	// slash restricts it to directories.
	rooted := strings.HasPrefix(trimmed, "/")
	body := strings.TrimPrefix(trimmed, "/")
	dirOnly := strings.HasSuffix(body, "/")
	body = strings.TrimSuffix(body, "/")
	if body == "" {
		return nil, nil
	}

	expr := escapeMeta(body)
	expr = starsMiddle.ReplaceAllString(expr, tokenStarsMiddle)
	expr = starsTail.ReplaceAllString(expr, tokenStarsTail)
	expr = starsHead.ReplaceAllString(expr, tokenStarsHead)
	expr = strings.ReplaceAll(expr, "*", `[^/]*`)
	expr = strings.ReplaceAll(expr, "?", `[^/]`)
	expr = strings.ReplaceAll(expr, tokenStarsMiddle, `(/|/.+/)`)
	expr = strings.ReplaceAll(expr, tokenStarsTail, `(/.*)?`)
	expr = strings.ReplaceAll(expr, tokenStarsHead, `(.*/)?`)

	prefix := `^(.*/)?`
	if rooted {
		prefix = `^`
	}
	suffix := `(/.*)?$`
	if dirOnly {
		suffix = `/.*$`
	}

	compiled, err := regexp.Compile(prefix + expr + suffix)
	if err != nil {
		return nil, eris.Wrapf(err, "compile pattern %q", strings.TrimSpace(line))
	}
	return &Rule{expr: compiled, negate: negate, line: strings.TrimSpace(line)}, nil
}

// escapeMeta escapes regex metacharacters in a pattern body.
func escapeMeta(pattern string) string {
	var b strings.Builder
	for _, r := range pattern {
		if strings.ContainsRune(regexMeta, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
