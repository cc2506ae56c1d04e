package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateEntity(t *testing.T) {
	tokens := []string{"Yesterday", "John", "Smith", "went", "home"}

	ent := CreateEntity("PER", tokens, 1, 3)
	assert.Equal(t, "John Smith", ent.Text)
	assert.Equal(t, 1, ent.Start)
	assert.Equal(t, 3, ent.End)

	doc := Document{Tokens: tokens, Entities: []Entity{ent}}
	text := doc.Text()
	assert.Equal(t, "John Smith", string([]rune(text)[ent.StartChar:ent.EndChar]))
	assert.Equal(t, "Yesterday John Smith went home", ent.Context(text))
}

func TestCreateEntity_ClampsBounds(t *testing.T) {
	tokens := []string{"a", "b"}
	ent := CreateEntity("X", tokens, -1, 5)
	assert.Equal(t, 0, ent.Start)
	assert.Equal(t, 2, ent.End)
	assert.Equal(t, "a b", ent.Text)
}

func TestEntityContext_Window(t *testing.T) {
	tokens := []string{"aaaaaaaaaaaaaaa", "X", "bbbbbbbbbbbbbbb"}
	ent := CreateEntity("L", tokens, 1, 2)
	doc := Document{Tokens: tokens}
	assert.Equal(t, "aaaaaaaaa X bbbbbbbbb", ent.Context(doc.Text()))
}

func TestEntityContext_MultibyteText(t *testing.T) {
	tokens := []string{"東京都港区六本木一丁目", "John", "東京都港区六本木一丁目"}
	ent := CreateEntity("PER", tokens, 1, 2)
	assert.Equal(t, 12, ent.StartChar)
	assert.Equal(t, 16, ent.EndChar)

	doc := Document{Tokens: tokens}
	text := doc.Text()
	assert.Equal(t, "John", string([]rune(text)[ent.StartChar:ent.EndChar]))
	assert.Equal(t, "都港区六本木一丁目 John 東京都港区六本木一", ent.Context(text))

	ent = CreateEntity("LOC", tokens, 0, 1)
	assert.Equal(t, "東京都港区六本木一丁目 John 東京都港", ent.Context(text))
}

func TestDocumentLabels(t *testing.T) {
	tokens := []string{"a", "b", "c"}
	doc := Document{
		Tokens: tokens,
		Entities: []Entity{
			CreateEntity("ORG", tokens, 0, 1),
			CreateEntity("PER", tokens, 1, 2),
			CreateEntity("ORG", tokens, 2, 3),
		},
	}
	assert.Equal(t, []string{"ORG", "PER"}, doc.Labels())
	assert.True(t, doc.HasLabel("PER"))
	assert.False(t, doc.HasLabel("LOC"))
}
