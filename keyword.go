package qview

// Keyword is one of the small set of SQL keywords the suggestion engine cares
// about. The set is intentionally minimal - parsing stays lenient, and new
// keywords are only added when a completion context needs them.
type Keyword string

const (
	KeywordSelect    Keyword = "select"
	KeywordFrom      Keyword = "from"
	KeywordJoin      Keyword = "join"
	KeywordOn        Keyword = "on"
	KeywordAs        Keyword = "as"
	KeywordWhere     Keyword = "where"
	KeywordGroup     Keyword = "group"
	KeywordOrder     Keyword = "order"
	KeywordLimit     Keyword = "limit"
	KeywordOffset    Keyword = "offset"
	KeywordUnion     Keyword = "union"
	KeywordExcept    Keyword = "except"
	KeywordIntersect Keyword = "intersect"
)

var keywords = map[string]Keyword{
	"select":    KeywordSelect,
	"from":      KeywordFrom,
	"join":      KeywordJoin,
	"on":        KeywordOn,
	"as":        KeywordAs,
	"where":     KeywordWhere,
	"group":     KeywordGroup,
	"order":     KeywordOrder,
	"limit":     KeywordLimit,
	"offset":    KeywordOffset,
	"union":     KeywordUnion,
	"except":    KeywordExcept,
	"intersect": KeywordIntersect,
}

// terminators are the keywords that end FROM-list extraction when found at
// the active SELECT's depth.
var terminators = map[Keyword]bool{
	KeywordWhere:     true,
	KeywordGroup:     true,
	KeywordOrder:     true,
	KeywordLimit:     true,
	KeywordOffset:    true,
	KeywordUnion:     true,
	KeywordExcept:    true,
	KeywordIntersect: true,
	KeywordOn:        true,
}

// keywordFromLower classifies a pre-lowercased word. The caller lowercases
// once per lexeme so repeated lookups stay allocation free.
func keywordFromLower(word string) (Keyword, bool) {
	kw, ok := keywords[word]
	return kw, ok
}

func (k Keyword) String() string {
	return string(k)
}
