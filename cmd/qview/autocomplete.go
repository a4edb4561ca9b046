package main

import (
	"strings"

	"dabbertorres.dev/qview"
)

// suggester is the part of qview.QView the completer needs.
type suggester interface {
	Suggest(sql string, cursor qview.Cursor) ([]qview.Suggestion, error)
}

var sqlKeywords = []string{
	"SELECT", "FROM", "JOIN", "ON", "AS", "WHERE",
	"GROUP", "ORDER", "LIMIT", "OFFSET",
	"UNION", "EXCEPT", "INTERSECT",
}

type completer struct {
	db suggester
}

func newCompleter(db suggester) *completer {
	return &completer{db: db}
}

// complete is a term.Terminal AutoCompleteCallback. On tab, the word at the
// cursor is extended to the longest common prefix of the catalog suggestions
// valid at that position, plus matching SQL keywords.
func (c *completer) complete(line string, pos int, key rune) (string, int, bool) {
	if key != '\t' {
		return "", 0, false
	}

	start := pos
	for start > 0 && isWordChar(line[start-1]) {
		start--
	}
	word := line[start:pos]

	var names []string

	suggestions, err := c.db.Suggest(line, qview.CursorAt(pos))
	if err == nil {
		for _, s := range suggestions {
			if strings.HasPrefix(s.Name, word) {
				names = append(names, s.Name)
			}
		}
	}

	if word != "" {
		upper := strings.ToUpper(word)
		for _, kw := range sqlKeywords {
			if strings.HasPrefix(kw, upper) {
				names = append(names, kw)
			}
		}
	}

	if len(names) == 0 {
		return "", 0, false
	}

	completed := commonPrefix(names)
	if len(completed) <= len(word) {
		return "", 0, false
	}

	newLine := line[:start] + completed + line[pos:]
	return newLine, start + len(completed), true
}

func commonPrefix(names []string) string {
	prefix := names[0]
	for _, name := range names[1:] {
		for !strings.HasPrefix(name, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}

func isWordChar(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}
