package qview

import "fmt"

// SuggestionKind tags the variant of a Suggestion.
type SuggestionKind int

const (
	SuggestKeyword SuggestionKind = iota
	SuggestColumn
	SuggestTable
)

// Suggestion is a single autocomplete candidate. The kinds represent the
// different things that can be offered while typing a query: raw keywords,
// columns with their data type, and schema-qualified tables.
//
// How a suggestion renders is a presentation concern; String gives the
// default rendering (keywords plain, columns as name::type, tables as
// schema.name). The engine does no filtering or ranking - frontends filter by
// whatever the user has already typed.
type Suggestion struct {
	Kind     SuggestionKind
	Name     string
	DataType DataType // columns only
	Schema   string   // tables only
}

// KeywordSuggestion offers a raw keyword.
func KeywordSuggestion(text string) Suggestion {
	return Suggestion{Kind: SuggestKeyword, Name: text}
}

// ColumnSuggestion offers a column with its data type.
func ColumnSuggestion(name string, dataType DataType) Suggestion {
	return Suggestion{Kind: SuggestColumn, Name: name, DataType: dataType}
}

// TableSuggestion offers a schema-qualified table.
func TableSuggestion(schema, name string) Suggestion {
	return Suggestion{Kind: SuggestTable, Schema: schema, Name: name}
}

func (s Suggestion) String() string {
	switch s.Kind {
	case SuggestColumn:
		return fmt.Sprintf("%s::%s", s.Name, s.DataType)
	case SuggestTable:
		return s.Schema + "." + s.Name
	default:
		return s.Name
	}
}

// Less defines a total order over suggestions: variant tag first, then field
// values. Used for deterministic comparisons; the engine itself emits
// suggestions in scope/catalog order, not sorted order.
func (s Suggestion) Less(o Suggestion) bool {
	if s.Kind != o.Kind {
		return s.Kind < o.Kind
	}
	if s.Schema != o.Schema {
		return s.Schema < o.Schema
	}
	if s.Name != o.Name {
		return s.Name < o.Name
	}
	return s.DataType < o.DataType
}
