// Package toolpolicy evaluates agent tool permissions from glob-style
// allow and block pattern lists.
package toolpolicy

import (
	"regexp"
	"strings"
)

// AgentConfig holds the tool permission patterns of an agent
// configuration. Both lists are ordered; order matters for first-match
// reporting but not for the final decision.
type AgentConfig struct {
	BlockedToolPatterns []string `json:"blocked_tool_patterns,omitempty"`
	AllowedToolPatterns []string `json:"allowed_tool_patterns,omitempty"`
}

// IsAllowed decides whether the named tool may execute.
//
// Precedence is fixed: any block match denies immediately; otherwise a
// non-empty allow list permits only tools matching at least one allow
// pattern; an empty allow list permits everything. Patterns that fail to
// compile are treated as non-matching.
func IsAllowed(toolName string, config AgentConfig) bool {
	for _, pattern := range config.BlockedToolPatterns {
		if matchPattern(pattern, toolName) {
			return false
		}
	}

	if len(config.AllowedToolPatterns) == 0 {
		return true
	}
	for _, pattern := range config.AllowedToolPatterns {
		if matchPattern(pattern, toolName) {
			return true
		}
	}
	return false
}

func matchPattern(pattern, name string) bool {
	compiled, err := compilePattern(pattern)
	if err != nil {
		logger.Warn("skipping unparseable tool pattern",
			"pattern", pattern, "error", err)
		return false
	}
	return compiled.MatchString(name)
}

// compilePattern turns a glob pattern into a full-string regexp: `*`
// matches any run of characters, `?` any single character, everything
// else is literal.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	var expr strings.Builder
	expr.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '*':
			expr.WriteString(".*")
		case '?':
			expr.WriteString(".")
		default:
			expr.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	expr.WriteString("$")
	return regexp.Compile(expr.String())
}
