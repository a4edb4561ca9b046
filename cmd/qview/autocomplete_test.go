package main

import (
	"testing"

	"dabbertorres.dev/qview"
)

type fakeSuggester struct {
	suggestions []qview.Suggestion

	// captured from the last call
	sql    string
	cursor qview.Cursor
}

func (f *fakeSuggester) Suggest(sql string, cursor qview.Cursor) ([]qview.Suggestion, error) {
	f.sql = sql
	f.cursor = cursor
	return f.suggestions, nil
}

func Test_completer_complete(t *testing.T) {
	tests := []struct {
		name        string
		suggestions []qview.Suggestion
		line        string
		pos         int
		key         rune
		expectLine  string
		expectPos   int
		expectOK    bool
	}{
		{
			name:        "non-tab key is ignored",
			suggestions: []qview.Suggestion{qview.ColumnSuggestion("email", qview.TypeText)},
			line:        "SELECT em FROM users",
			pos:         9,
			key:         'x',
			expectOK:    false,
		},
		{
			name:        "single match completes the word",
			suggestions: []qview.Suggestion{qview.ColumnSuggestion("email", qview.TypeText)},
			line:        "SELECT em FROM users",
			pos:         9,
			key:         '\t',
			expectLine:  "SELECT email FROM users",
			expectPos:   12,
			expectOK:    true,
		},
		{
			name: "multiple matches complete to the common prefix",
			suggestions: []qview.Suggestion{
				qview.ColumnSuggestion("user_id", qview.TypeUUID),
				qview.ColumnSuggestion("user_name", qview.TypeText),
			},
			line:       "SELECT us FROM t",
			pos:        9,
			key:        '\t',
			expectLine: "SELECT user_ FROM t",
			expectPos:  12,
			expectOK:   true,
		},
		{
			name:       "keywords complete without catalog matches",
			line:       "SEL",
			pos:        3,
			key:        '\t',
			expectLine: "SELECT",
			expectPos:  6,
			expectOK:   true,
		},
		{
			name:     "no candidates",
			line:     "SELECT zzz",
			pos:      10,
			key:      '\t',
			expectOK: false,
		},
		{
			name:        "word already complete",
			suggestions: []qview.Suggestion{qview.ColumnSuggestion("email", qview.TypeText)},
			line:        "SELECT email",
			pos:         12,
			key:         '\t',
			expectOK:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeSuggester{suggestions: tt.suggestions}
			c := newCompleter(fake)

			newLine, newPos, ok := c.complete(tt.line, tt.pos, tt.key)
			if ok != tt.expectOK {
				t.Fatalf("expected ok=%t, got ok=%t", tt.expectOK, ok)
			}
			if !tt.expectOK {
				return
			}

			if newLine != tt.expectLine {
				t.Errorf("expected line '%s', got '%s'", tt.expectLine, newLine)
			}
			if newPos != tt.expectPos {
				t.Errorf("expected position %d, got %d", tt.expectPos, newPos)
			}

			if fake.cursor.Start != tt.pos {
				t.Errorf("expected the cursor to be at %d, got %d", tt.pos, fake.cursor.Start)
			}
		})
	}
}

func Test_commonPrefix(t *testing.T) {
	tests := []struct {
		names  []string
		expect string
	}{
		{[]string{"email"}, "email"},
		{[]string{"user_id", "user_name"}, "user_"},
		{[]string{"abc", "xyz"}, ""},
	}

	for _, tt := range tests {
		if actual := commonPrefix(tt.names); actual != tt.expect {
			t.Errorf("commonPrefix(%v): expected '%s', got '%s'", tt.names, tt.expect, actual)
		}
	}
}
