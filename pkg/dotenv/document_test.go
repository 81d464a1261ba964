package dotenv_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/stdkit/pkg/dotenv"
)

func TestDocumentIterationOrder(t *testing.T) {
	t.Parallel()

	doc := dotenv.NewDocument().Comment("a").Newline().Item("K", "v")

	var got []dotenv.Token
	for _, tok := range doc.All() {
		got = append(got, tok)
	}

	want := []dotenv.Token{comment("a"), newline, item("K", "v")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, want, doc.Tokens())
}

func TestDocumentAllStopsEarly(t *testing.T) {
	t.Parallel()

	doc := dotenv.NewDocument().Item("A", "1").Item("B", "2").Item("C", "3")

	var seen []string
	for _, tok := range doc.All() {
		seen = append(seen, tok.Key)
		if tok.Key == "B" {
			break
		}
	}
	assert.Equal(t, []string{"A", "B"}, seen)
}

func TestDocumentTokensIsCopy(t *testing.T) {
	t.Parallel()

	doc := dotenv.NewDocument().Item("A", "1")
	tokens := doc.Tokens()
	tokens[0].Value = "changed"

	value, _ := doc.Get("A")
	assert.Equal(t, "1", value)
}

func TestDocumentMap(t *testing.T) {
	t.Parallel()

	doc := dotenv.NewDocument().
		Item("A", "1").
		Comment("x").
		Item("B", "2").
		Item("A", "3")

	assert.Equal(t, map[string]string{"A": "3", "B": "2"}, doc.ToMap())
	assert.Equal(t, []string{"A", "B"}, doc.Keys())

	value, ok := doc.Get("A")
	assert.True(t, ok)
	assert.Equal(t, "3", value)

	_, ok = doc.Get("missing")
	assert.False(t, ok)
}

func TestDocumentSet(t *testing.T) {
	t.Parallel()

	doc := dotenv.NewDocument().Item("A", "1").Item("A", "2").Newline()

	doc.Set("A", "updated")
	doc.Set("NEW", "x")

	want := []dotenv.Token{item("A", "1"), item("A", "updated"), newline, item("NEW", "x")}
	assert.Equal(t, want, doc.Tokens())
}

func TestDocumentInsert(t *testing.T) {
	t.Parallel()

	doc := dotenv.NewDocument().Item("A", "1").Newline()
	doc.Insert(1, item("B", "2")).Insert(0, comment(" top"))
	doc.Insert(doc.Len(), item("Z", "9"))

	want := []dotenv.Token{comment(" top"), item("A", "1"), item("B", "2"), newline, item("Z", "9")}
	assert.Equal(t, want, doc.Tokens())
}

func TestDocumentDelete(t *testing.T) {
	t.Parallel()

	doc := dotenv.NewDocument().Item("A", "1").Comment("keep").Item("A", "2").Item("B", "3")

	assert.Equal(t, 2, doc.Delete("A"))
	assert.Equal(t, 0, doc.Delete("A"))
	assert.Equal(t, []dotenv.Token{comment("keep"), item("B", "3")}, doc.Tokens())
}

func TestZeroDocument(t *testing.T) {
	t.Parallel()

	var doc dotenv.Document
	doc.Item("A", "1")
	assert.Equal(t, 1, doc.Len())
	assert.Equal(t, dotenv.KindItem, doc.At(0).Kind)
}

func TestTokenKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "comment", dotenv.KindComment.String())
	assert.Equal(t, "newline", dotenv.KindNewline.String())
	assert.Equal(t, "item", dotenv.KindItem.String())
}
