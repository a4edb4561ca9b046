package main

import (
	"bytes"
	"errors"
	"strings"

	"dabbertorres.dev/qview"
	"github.com/neovim/go-client/nvim"
	"github.com/neovim/go-client/nvim/plugin"
)

var sqlKeywords = []string{
	"SELECT", "FROM", "JOIN", "ON", "AS", "WHERE",
	"GROUP", "ORDER", "LIMIT", "OFFSET",
	"UNION", "EXCEPT", "INTERSECT",
}

// complete implements the two-phase completefunc/omnifunc protocol: called
// first with (1, "") to report where the word being completed starts, then
// with (0, base) to report the matches for base.
//
// Wire it up with e.g. `set omnifunc=QVComplete`.
func complete(state *pluginState) (*plugin.FunctionOptions, func(*nvim.Nvim, []interface{}) (interface{}, error)) {
	opts := &plugin.FunctionOptions{
		Name: "QVComplete",
	}
	return opts, func(api *nvim.Nvim, args []interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, errors.New("QVComplete expects (findstart, base)")
		}

		if asInt(args[0]) != 0 {
			line, err := api.CurrentLine()
			if err != nil {
				return nil, err
			}

			win, err := api.CurrentWindow()
			if err != nil {
				return nil, err
			}
			pos, err := api.WindowCursor(win)
			if err != nil {
				return nil, err
			}

			return findStart(line, pos[1]), nil
		}

		base, _ := args[1].(string)
		return state.completeAt(api, base)
	}
}

// completeAt resolves suggestions for the cursor position in the current
// buffer. The whole buffer is handed to the engine, so multi-line statements
// and multiple statements per buffer behave the same as in a single line.
func (s *pluginState) completeAt(api *nvim.Nvim, base string) ([]map[string]interface{}, error) {
	buf, err := api.CurrentBuffer()
	if err != nil {
		return nil, err
	}

	lines, err := api.BufferLines(buf, 0, -1, false)
	if err != nil {
		return nil, err
	}

	win, err := api.CurrentWindow()
	if err != nil {
		return nil, err
	}
	pos, err := api.WindowCursor(win)
	if err != nil {
		return nil, err
	}

	sql := string(bytes.Join(lines, []byte{'\n'}))
	suggestions, err := s.db.Suggest(sql, qview.CursorAt(byteOffset(lines, pos[0], pos[1])))
	if err != nil {
		return nil, err
	}

	return completionItems(suggestions, base), nil
}

// completionItems builds complete-item dictionaries for everything matching
// base: engine suggestions first, then SQL keywords.
func completionItems(suggestions []qview.Suggestion, base string) []map[string]interface{} {
	items := make([]map[string]interface{}, 0, len(suggestions))

	for _, s := range suggestions {
		if base != "" && !strings.HasPrefix(s.Name, base) {
			continue
		}
		items = append(items, completionItem(s))
	}

	if base != "" {
		upper := strings.ToUpper(base)
		for _, kw := range sqlKeywords {
			if strings.HasPrefix(kw, upper) {
				items = append(items, completionItem(qview.KeywordSuggestion(kw)))
			}
		}
	}

	return items
}

func completionItem(s qview.Suggestion) map[string]interface{} {
	item := map[string]interface{}{
		"word": s.Name,
	}

	switch s.Kind {
	case qview.SuggestColumn:
		item["kind"] = "m"
		item["menu"] = s.DataType.String()

	case qview.SuggestTable:
		item["kind"] = "t"
		item["menu"] = s.Schema

	case qview.SuggestKeyword:
		item["kind"] = "k"
	}

	return item
}

// findStart returns the byte column where the word under the cursor begins.
func findStart(line []byte, col int) int {
	if col > len(line) {
		col = len(line)
	}

	start := col
	for start > 0 && isWordChar(line[start-1]) {
		start--
	}
	return start
}

// byteOffset converts a (1-based row, 0-based byte column) cursor position to
// a byte offset in the buffer's lines joined with newlines.
func byteOffset(lines [][]byte, row, col int) int {
	offset := 0
	for i := 0; i < row-1 && i < len(lines); i++ {
		offset += len(lines[i]) + 1 // +1 for the joining newline
	}
	return offset + col
}

// asInt unwraps the numeric types msgpack decodes into.
func asInt(v interface{}) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case uint64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func isWordChar(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}
