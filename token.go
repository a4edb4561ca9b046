package qview

import "strings"

// TokenKind classifies a lexical atom produced by the lenient tokenizer.
// Not a full SQL lexeme set; anything unrecognized becomes TokenOther.
type TokenKind int

const (
	// TokenIdent is a table / alias / column / generic identifier.
	TokenIdent TokenKind = iota
	// TokenKeyword is a recognized SQL keyword (see keyword.go).
	TokenKeyword
	// TokenComma separates table items in FROM, list items, etc.
	TokenComma
	// TokenDot qualifies names like table.column.
	TokenDot
	// TokenParenOpen is '('.
	TokenParenOpen
	// TokenParenClose is ')'.
	TokenParenClose
	// TokenOther is any other single character we do not classify.
	TokenOther
)

// Token is a lexical token with inclusive start and exclusive end byte
// offsets into the original SQL string. Offsets always refer to the input
// supplied to Tokenize, so callers can slice the query or perform cursor
// range checks without a reconstructed string.
//
// Identifiers keep their original casing in Text; keyword classification
// happens on a lowercased copy.
type Token struct {
	Kind    TokenKind
	Keyword Keyword // set when Kind == TokenKeyword
	Text    string  // original source text of the token
	Start   int
	End     int
}

// IsKeyword reports whether the token is the given keyword.
func (t Token) IsKeyword(k Keyword) bool {
	return t.Kind == TokenKeyword && t.Keyword == k
}

// Ident returns the identifier text, if this token is an identifier.
func (t Token) Ident() (string, bool) {
	if t.Kind != TokenIdent {
		return "", false
	}
	return t.Text, true
}

// Contains reports whether the byte offset lies within the token's span.
// End is exclusive, so Contains(t.End) is false.
func (t Token) Contains(cursor int) bool {
	return cursor >= t.Start && cursor < t.End
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '_'
}

func isSpaceByte(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// Tokenize scans sql left-to-right into a flat token stream. It is built for
// cursor-aware completion: incomplete or syntactically invalid SQL (e.g.
// "SELECT  FROM", "JOIN , x") still tokenizes, and it never returns an error.
//
// ASCII whitespace is skipped. A maximal [A-Za-z0-9_] run becomes a keyword
// (if its lowercased form is recognized) or an identifier with original
// casing. Comma, dot, and parentheses get their own kinds; any other byte is
// emitted as TokenOther and ignored downstream. O(n) time, no backtracking.
func Tokenize(sql string) []Token {
	var out []Token

	for i := 0; i < len(sql); {
		c := sql[i]

		if isSpaceByte(c) {
			i++
			continue
		}

		start := i

		if isWordByte(c) {
			for i < len(sql) && isWordByte(sql[i]) {
				i++
			}
			text := sql[start:i]
			if kw, ok := keywordFromLower(strings.ToLower(text)); ok {
				out = append(out, Token{Kind: TokenKeyword, Keyword: kw, Text: text, Start: start, End: i})
			} else {
				out = append(out, Token{Kind: TokenIdent, Text: text, Start: start, End: i})
			}
			continue
		}

		i++
		kind := TokenOther
		switch c {
		case ',':
			kind = TokenComma
		case '.':
			kind = TokenDot
		case '(':
			kind = TokenParenOpen
		case ')':
			kind = TokenParenClose
		}
		out = append(out, Token{Kind: kind, Text: sql[start:i], Start: start, End: i})
	}

	return out
}
