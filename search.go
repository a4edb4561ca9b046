package qview

import "strings"

// Cursor is a position (byte offset) in a SQL buffer, optionally with a
// selection end. Only Start drives suggestion resolution; End is carried for
// selection-aware callers. End is -1 when there is no selection.
type Cursor struct {
	Start int
	End   int
}

// CursorAt returns a Cursor at the given byte offset with no selection.
func CursorAt(start int) Cursor {
	return Cursor{Start: start, End: -1}
}

// Search finds the column suggestions valid at the cursor in a SQL buffer.
//
// Strategy:
//  1. Tokenize the SQL.
//  2. Find the last SELECT token starting before the cursor, tracking
//     parenthesis depth.
//  3. From that SELECT, find the matching FROM at the same depth.
//  4. Extract the table names and aliases that follow.
//  5. If the cursor sits after a qualified prefix ("alias."), gather columns
//     for that single table; otherwise gather columns for every table in
//     scope.
//
// Depth is the only scope mechanism: tokens count as "in scope" exactly when
// the running parenthesis depth equals the depth recorded at the anchoring
// SELECT, which keeps nested subqueries isolated without building a tree.
//
// Search is total: malformed or incomplete SQL, or any missing anchor,
// yields nil, never an error. Responsiveness while the user is mid-keystroke
// matters more than diagnosing the input; full validation is the validator's
// job, not this path's.
func Search(sql string, cursor Cursor, db *Database) []Suggestion {
	tokens := Tokenize(sql)

	selectIdx, selectDepth, ok := locateSelect(tokens, cursor.Start)
	if !ok {
		return nil
	}

	fromIdx, ok := locateFrom(tokens, selectIdx, selectDepth)
	if !ok {
		return nil
	}

	tables, aliases := extractTables(tokens, fromIdx, selectDepth)

	if prefix, ok := qualifiedPrefix(sql, tokens[selectIdx].End, cursor.Start); ok {
		base, ok := aliases[prefix]
		if !ok {
			// not an alias; treat the prefix as a literal table name
			base = prefix
		}
		return gatherColumns(db, base, nil)
	}

	var out []Suggestion
	for _, tbl := range tables {
		out = gatherColumns(db, tbl, out)
	}
	return out
}

// locateSelect finds the index and parenthesis depth of the last SELECT token
// that starts before the cursor.
func locateSelect(tokens []Token, cursorPos int) (idx, depth int, ok bool) {
	d := 0
	for i, t := range tokens {
		if t.Start >= cursorPos {
			break
		}
		switch t.Kind {
		case TokenParenOpen:
			d++
		case TokenParenClose:
			d--
		}
		if t.IsKeyword(KeywordSelect) {
			idx, depth, ok = i, d, true
		}
	}
	return idx, depth, ok
}

// locateFrom scans forward from a SELECT token for the first FROM at the same
// parenthesis depth, skipping the FROM clauses of deeper nested subqueries.
func locateFrom(tokens []Token, selectIdx, selectDepth int) (int, bool) {
	depth := selectDepth
	for i := selectIdx + 1; i < len(tokens); i++ {
		t := tokens[i]
		switch t.Kind {
		case TokenParenOpen:
			depth++
		case TokenParenClose:
			depth--
		}
		if depth == selectDepth && t.IsKeyword(KeywordFrom) {
			return i, true
		}
	}
	return 0, false
}

// extractTables collects table names and alias mappings from the FROM list
// that begins just after fromIdx.
//
// Rules:
//   - Parentheses adjust depth; dropping below the SELECT depth closes the
//     FROM list. Tokens at any other depth are skipped entirely, so nested
//     subquery content never leaks into this scope.
//   - A terminator keyword at the SELECT depth ends extraction. ON is a
//     terminator, so a chain like "a JOIN b ON ... JOIN c" stops at the first
//     ON and never sees c.
//   - JOIN is transparent: skipped, scanning continues.
//   - Each new identifier is appended once; first occurrence fixes position.
//   - "table AS alias" and "table alias" (bare identifier that is not a
//     keyword) both record alias -> table. A later mapping overwrites an
//     earlier one, so an alias always outranks a real table of the same name.
func extractTables(tokens []Token, fromIdx, selectDepth int) (tables []string, aliases map[string]string) {
	aliases = make(map[string]string)
	depth := selectDepth
	seen := make(map[string]bool)

	for i := fromIdx + 1; i < len(tokens); {
		t := tokens[i]

		switch t.Kind {
		case TokenParenOpen:
			depth++
			i++
			continue
		case TokenParenClose:
			depth--
			if depth < selectDepth {
				return tables, aliases
			}
			i++
			continue
		}

		if depth != selectDepth {
			i++
			continue
		}

		if t.Kind == TokenKeyword {
			if terminators[t.Keyword] {
				return tables, aliases
			}
			if t.Keyword == KeywordJoin {
				i++
				continue
			}
		}

		if name, ok := t.Ident(); ok {
			if !seen[name] {
				seen[name] = true
				tables = append(tables, name)
			}

			// "table AS alias"
			if i+2 < len(tokens) && tokens[i+1].IsKeyword(KeywordAs) {
				if alias, ok := tokens[i+2].Ident(); ok {
					aliases[alias] = name
					i += 3
					continue
				}
			}

			// "table alias" - the next token must be a bare identifier, not
			// a keyword, or it belongs to the surrounding clause
			if i+1 < len(tokens) {
				if alias, ok := tokens[i+1].Ident(); ok {
					aliases[alias] = name
					i += 2
					continue
				}
			}
		}

		i++
	}

	return tables, aliases
}

// qualifiedPrefix inspects the raw text between the end of the SELECT token
// and the cursor for a trailing qualified reference like "alias.". It returns
// the identifier before the last dot, if any.
//
// A cursor at or before the SELECT's end can't denote a qualified reference;
// guarding on that also keeps numeric literals such as "1.0" appearing before
// the SELECT from being misread as a prefix.
func qualifiedPrefix(sql string, selectEnd, cursorPos int) (string, bool) {
	if cursorPos <= selectEnd || cursorPos > len(sql) {
		return "", false
	}

	region := sql[selectEnd:cursorPos]
	dot := strings.LastIndexByte(region, '.')
	if dot < 0 {
		return "", false
	}

	before := strings.TrimRight(region[:dot], " \t\n\v\f\r")
	end := len(before)
	start := end
	for start > 0 && isWordByte(before[start-1]) {
		start--
	}
	if start == end {
		return "", false
	}
	return before[start:end], true
}

// gatherColumns appends column suggestions for every table with the given
// name, across all schemas in stored order. Identically-named tables in
// multiple schemas all contribute - ambiguity is surfaced, not hidden. A name
// absent everywhere contributes nothing.
func gatherColumns(db *Database, table string, out []Suggestion) []Suggestion {
	for _, schema := range db.Schemas() {
		t, ok := schema.Table(table)
		if !ok {
			continue
		}
		for _, col := range t.Columns() {
			out = append(out, ColumnSuggestion(col.Name, col.Type))
		}
	}
	return out
}
