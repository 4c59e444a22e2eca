package toolpolicy

import "testing"

func TestDenyTakesPrecedenceOverAllow(t *testing.T) {
	config := AgentConfig{
		BlockedToolPatterns: []string{"admin_*"},
		AllowedToolPatterns: []string{"safe_*"},
	}

	if IsAllowed("admin_delete", config) {
		t.Fatalf("expected admin_delete to be blocked")
	}
	if !IsAllowed("safe_read", config) {
		t.Fatalf("expected safe_read to be allowed")
	}
	if IsAllowed("other_tool", config) {
		t.Fatalf("expected other_tool to be denied by the non-empty allow list")
	}
}

func TestBlockBeatsOverlappingAllow(t *testing.T) {
	config := AgentConfig{
		BlockedToolPatterns: []string{"*_delete"},
		AllowedToolPatterns: []string{"safe_*"},
	}

	if IsAllowed("safe_delete", config) {
		t.Fatalf("expected block pattern to beat allow pattern on the same name")
	}
}

func TestEmptyConfigAllowsEverything(t *testing.T) {
	config := AgentConfig{}

	for _, name := range []string{"anything", "admin_delete", "", "weird?name*"} {
		if !IsAllowed(name, config) {
			t.Fatalf("expected %q to be allowed with no restrictions configured", name)
		}
	}
}

func TestQuestionMarkMatchesExactlyOneCharacter(t *testing.T) {
	config := AgentConfig{AllowedToolPatterns: []string{"tool_?"}}

	if !IsAllowed("tool_a", config) {
		t.Fatalf("expected tool_a to match tool_?")
	}
	if IsAllowed("tool_ab", config) {
		t.Fatalf("expected tool_ab not to match tool_?")
	}
	if IsAllowed("tool_", config) {
		t.Fatalf("expected tool_ not to match tool_?")
	}
}

func TestPatternsMatchFullStringOnly(t *testing.T) {
	config := AgentConfig{BlockedToolPatterns: []string{"read"}}

	if IsAllowed("read", config) {
		t.Fatalf("expected exact literal match to block")
	}
	if !IsAllowed("read_file", config) {
		t.Fatalf("expected partial match not to block")
	}
	if !IsAllowed("proofread", config) {
		t.Fatalf("expected suffix match not to block")
	}
}

func TestRegexMetacharactersAreLiteral(t *testing.T) {
	config := AgentConfig{BlockedToolPatterns: []string{"a.b"}}

	if IsAllowed("a.b", config) {
		t.Fatalf("expected literal dot to match itself")
	}
	if !IsAllowed("axb", config) {
		t.Fatalf("expected dot to stay literal, not become a wildcard")
	}
}

func TestCompilePattern(t *testing.T) {
	for _, tc := range []struct {
		pattern string
		name    string
		match   bool
	}{
		{pattern: "*", name: "anything_at_all", match: true},
		{pattern: "*", name: "", match: true},
		{pattern: "get_*_status", name: "get_server_status", match: true},
		{pattern: "get_*_status", name: "get_status", match: false},
		{pattern: "??", name: "ab", match: true},
		{pattern: "??", name: "abc", match: false},
	} {
		compiled, err := compilePattern(tc.pattern)
		if err != nil {
			t.Fatalf("pattern %q failed to compile: %v", tc.pattern, err)
		}
		if got := compiled.MatchString(tc.name); got != tc.match {
			t.Fatalf("pattern %q against %q: expected %v, got %v", tc.pattern, tc.name, tc.match, got)
		}
	}
}
