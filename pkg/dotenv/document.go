package dotenv

import (
	"iter"
	"slices"
)

// Document is an ordered, mutable sequence of tokens. It never reorders
// tokens on its own. The zero value is an empty document ready to use.
type Document struct {
	tokens []Token
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{}
}

// Append adds tok to the end of the document.
func (d *Document) Append(tok Token) *Document {
	d.tokens = append(d.tokens, tok)
	return d
}

// Insert places tok at index i, shifting later tokens. i may equal Len.
func (d *Document) Insert(i int, tok Token) *Document {
	d.tokens = slices.Insert(d.tokens, i, tok)
	return d
}

// Comment appends a comment line. text excludes the leading '#'.
func (d *Document) Comment(text string) *Document {
	return d.Append(CommentToken(text))
}

// Newline appends a blank line.
func (d *Document) Newline() *Document {
	return d.Append(NewlineToken())
}

// Item appends a KEY=VALUE line. The key is not validated; use ValidateKey
// when it comes from user input.
func (d *Document) Item(key, value string) *Document {
	return d.Append(ItemToken(key, value))
}

// Len returns the number of tokens.
func (d *Document) Len() int {
	return len(d.tokens)
}

// At returns the token at index i.
func (d *Document) At(i int) Token {
	return d.tokens[i]
}

// All iterates over the tokens in document order.
func (d *Document) All() iter.Seq2[int, Token] {
	return func(yield func(int, Token) bool) {
		for i, tok := range d.tokens {
			if !yield(i, tok) {
				return
			}
		}
	}
}

// Tokens returns a copy of the token list.
func (d *Document) Tokens() []Token {
	return slices.Clone(d.tokens)
}

// ToMap flattens the items into a mapping. When a key appears more than once
// the last item wins.
func (d *Document) ToMap() map[string]string {
	out := make(map[string]string)
	for _, tok := range d.tokens {
		if tok.Kind == KindItem {
			out[tok.Key] = tok.Value
		}
	}
	return out
}

// Keys returns the distinct item keys in order of first appearance.
func (d *Document) Keys() []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, tok := range d.tokens {
		if tok.Kind != KindItem {
			continue
		}
		if _, ok := seen[tok.Key]; ok {
			continue
		}
		seen[tok.Key] = struct{}{}
		keys = append(keys, tok.Key)
	}
	return keys
}

// Get returns the value of the last item with key.
func (d *Document) Get(key string) (string, bool) {
	if i := d.lastIndex(key); i >= 0 {
		return d.tokens[i].Value, true
	}
	return "", false
}

// Set updates the last item with key in place, or appends a new item when
// the key is absent.
func (d *Document) Set(key, value string) {
	if i := d.lastIndex(key); i >= 0 {
		d.tokens[i].Value = value
		return
	}
	d.Item(key, value)
}

// Delete removes every item with key and returns how many were removed.
func (d *Document) Delete(key string) int {
	before := len(d.tokens)
	d.tokens = slices.DeleteFunc(d.tokens, func(tok Token) bool {
		return tok.Kind == KindItem && tok.Key == key
	})
	return before - len(d.tokens)
}

func (d *Document) lastIndex(key string) int {
	for i := len(d.tokens) - 1; i >= 0; i-- {
		if d.tokens[i].Kind == KindItem && d.tokens[i].Key == key {
			return i
		}
	}
	return -1
}
