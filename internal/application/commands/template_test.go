package commands

import (
	"strings"
	"testing"
)

func TestCompileReplacer_LiteralRoundTrip(t *testing.T) {
	r := CompileReplacer("plain text")

	// A spec without placeholders returns itself regardless of the match.
	matches := []Match{
		{},
		{Text: "abc", Groups: []string{"a", "b"}, Index: 3, Input: "xyzabc"},
	}
	for _, m := range matches {
		if got := r(m); got != "plain text" {
			t.Errorf("got %q, want literal spec", got)
		}
	}
}

func TestCompileReplacer_Precedence(t *testing.T) {
	m := Match{
		Text:   "abc",
		Groups: []string{"a", "b", "c"},
		Index:  4,
		Input:  "pre-abc-post",
	}

	tests := []struct {
		name string
		spec string
		want string
	}{
		{name: "full match wins over everything", spec: `$& $' $+ $1 ${x}`, want: "abc"},
		{name: "following text beats last group", spec: `$' $+ $1`, want: "-post"},
		{name: "last group beats numbered", spec: `$+ $1`, want: "c"},
		{name: "numbered substitution", spec: `[$1-$2]`, want: "[a-b]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompileReplacer(tt.spec)(m); got != tt.want {
				t.Errorf("CompileReplacer(%q) = %q, want %q", tt.spec, got, tt.want)
			}
		})
	}
}

func TestCompileReplacer_LastGroupFallsBackToFullMatch(t *testing.T) {
	r := CompileReplacer("$+")
	if got := r(Match{Text: "whole"}); got != "whole" {
		t.Errorf("got %q, want full match when no groups are defined", got)
	}
}

func TestCompileReplacer_UndefinedNumberedStaysLiteral(t *testing.T) {
	r := CompileReplacer("$1/$2/$3")
	m := Match{Text: "ab", Groups: []string{"a", "b"}}
	// $3 has no capture group behind it: the placeholder text survives
	// instead of silently erasing.
	if got := r(m); got != "a/b/$3" {
		t.Errorf("got %q, want %q", got, "a/b/$3")
	}
}

func TestCompileReplacer_NamedPlaceholdersBindSecondGroup(t *testing.T) {
	m := Match{Text: "John Smith", Groups: []string{"John", "Smith"}}

	// Every ${name} resolves to the second group, whatever the name.
	r := CompileReplacer("${last}, ${anything}")
	if got := r(m); got != "Smith, Smith" {
		t.Errorf("got %q, want %q", got, "Smith, Smith")
	}

	// Without a second group the placeholder stays literal.
	r = CompileReplacer("${last}")
	if got := r(Match{Text: "x", Groups: []string{"x"}}); got != "${last}" {
		t.Errorf("got %q, want literal placeholder", got)
	}
}

func TestCompileReplacer_FollowingTextAtEnd(t *testing.T) {
	r := CompileReplacer("$'")
	m := Match{Text: "tail", Index: 4, Input: "pre-tail"}
	if got := r(m); got != "" {
		t.Errorf("got %q, want empty following text", got)
	}
}

func TestReplacerFunctionIdentity(t *testing.T) {
	// A caller-supplied function is used as the replacer directly.
	custom := func(m Match) string { return strings.ToLower(m.Text) }
	opts := ReplaceOptions{ReplaceFunc: custom, ReplaceWith: "ignored"}

	got := opts.replacer()(Match{Text: "VAN"})
	if got != "van" {
		t.Errorf("got %q, want custom function output", got)
	}
}
