package types

import (
	"strings"
	"unicode/utf8"
)

const contextLength = 10

// Entity is a labeled token span [Start, End) of a Document. StartChar and
// EndChar are rune offsets of Text inside Document.Text().
type Entity struct {
	Label     string
	Text      string
	Start     int
	End       int
	StartChar int
	EndChar   int
}

// Context returns the document text surrounding the entity, including up to
// contextLength characters on either side.
func (e Entity) Context(docText string) string {
	runes := []rune(docText)
	start := max(0, e.StartChar-contextLength)
	end := min(len(runes), e.EndChar+contextLength)
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}

func CreateEntity(label string, tokens []string, start, end int) Entity {
	if start < 0 {
		start = 0
	}
	if end > len(tokens) {
		end = len(tokens)
	}

	startChar := 0
	for _, tok := range tokens[:start] {
		startChar += utf8.RuneCountInString(tok) + utf8.RuneCountInString(TokenSeparator)
	}
	text := strings.Join(tokens[start:end], TokenSeparator)

	return Entity{
		Label:     label,
		Text:      text,
		Start:     start,
		End:       end,
		StartChar: startChar,
		EndChar:   startChar + utf8.RuneCountInString(text),
	}
}
