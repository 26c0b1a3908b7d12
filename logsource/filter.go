package logsource

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// Chain decides line visibility: a line is shown when it matches the
// include pattern (if any) and none of the exclude patterns
type Chain struct {
	pattern  string
	include  *regexp.Regexp
	excludes []*regexp.Regexp
}

// CompilePattern compiles a filter pattern with smart case: a pattern with
// no upper-case letters matches case-insensitively
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	expr := pattern
	if !hasUpper(pattern) {
		expr = "(?i)" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	return re, nil
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// NewChain compiles include and excludes. An empty include matches every line
func NewChain(include string, excludes []string) (*Chain, error) {
	c := &Chain{pattern: include}
	if include != "" {
		re, err := CompilePattern(include)
		if err != nil {
			return nil, err
		}
		c.include = re
	}
	for _, p := range excludes {
		if p == "" {
			continue
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("bad exclude pattern %q: %w", p, err)
		}
		c.excludes = append(c.excludes, re)
	}
	return c, nil
}

// WithInclude returns a chain sharing c's excludes with a new include pattern
func (c *Chain) WithInclude(include string) (*Chain, error) {
	next := &Chain{pattern: include, excludes: c.excludes}
	if include != "" {
		re, err := CompilePattern(include)
		if err != nil {
			return nil, err
		}
		next.include = re
	}
	return next, nil
}

// Pattern returns the include pattern text
func (c *Chain) Pattern() string { return c.pattern }

// Excludes returns the number of exclude patterns
func (c *Chain) Excludes() int { return len(c.excludes) }

// PassAll reports whether every line matches
func (c *Chain) PassAll() bool {
	return c == nil || (c.include == nil && len(c.excludes) == 0)
}

// Match reports whether line is visible. Escape sequences are ignored
func (c *Chain) Match(line string) bool {
	if c.PassAll() {
		return true
	}
	if strings.IndexByte(line, 0x1b) >= 0 {
		line = ansi.Strip(line)
	}
	if c.include != nil && !c.include.MatchString(line) {
		return false
	}
	for _, re := range c.excludes {
		if re.MatchString(line) {
			return false
		}
	}
	return true
}
