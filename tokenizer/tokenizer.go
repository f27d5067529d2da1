// Package tokenizer turns a sentence into the fixed-length id and attention
// mask sequences the embedding model consumes.
package tokenizer

import (
	"strings"

	"github.com/gomithril/sentenceembed/vocab"
)

// Encoding is a model-ready pair of sequences. IDs and Mask always have the
// same length; Mask[i] is 1 for real positions (markers and content) and 0
// for the trailing padding, whatever id a content word maps to.
type Encoding struct {
	IDs  []int64
	Mask []int64
}

// Len returns the sequence length.
func (e Encoding) Len() int { return len(e.IDs) }

// Tokenizer encodes a single sentence.
type Tokenizer interface {
	Encode(sentence string) (Encoding, error)
}

// Specials are the marker ids placed around and after the content.
type Specials struct {
	Cls int64
	Sep int64
	Pad int64
}

// DefaultSpecials uses the ids of the built-in vocabulary.
var DefaultSpecials = Specials{Cls: vocab.ClsID, Sep: vocab.SepID, Pad: vocab.PadID}

// Frame lays out content as [Cls, content..., Sep, Pad...] in exactly maxLen
// positions. Content beyond maxLen-2 ids is dropped.
func Frame(content []int64, sp Specials, maxLen int) Encoding {
	enc := Encoding{
		IDs:  make([]int64, maxLen),
		Mask: make([]int64, maxLen),
	}
	if maxLen == 0 {
		return enc
	}

	i := 0
	enc.IDs[i] = sp.Cls
	enc.Mask[i] = 1
	i++

	for _, id := range content {
		if i >= maxLen-1 {
			break
		}
		enc.IDs[i] = id
		enc.Mask[i] = 1
		i++
	}

	if i < maxLen {
		enc.IDs[i] = sp.Sep
		enc.Mask[i] = 1
		i++
	}

	for ; i < maxLen; i++ {
		enc.IDs[i] = sp.Pad
		enc.Mask[i] = 0
	}
	return enc
}

// Split breaks sentence on the space character. Consecutive, leading and
// trailing spaces produce no empty words; tabs and punctuation are kept as
// part of the word.
func Split(sentence string) []string {
	return strings.FieldsFunc(sentence, func(r rune) bool { return r == ' ' })
}

// Whitespace maps space separated words through the fixed vocabulary.
type Whitespace struct {
	MaxLen int
}

// NewWhitespace returns a Whitespace tokenizer producing maxLen positions.
func NewWhitespace(maxLen int) *Whitespace {
	return &Whitespace{MaxLen: maxLen}
}

// Encode never fails; unknown words become vocab.UnkID.
func (w *Whitespace) Encode(sentence string) (Encoding, error) {
	words := Split(sentence)
	ids := make([]int64, len(words))
	for i, word := range words {
		ids[i] = vocab.Lookup(word)
	}
	return Frame(ids, DefaultSpecials, w.MaxLen), nil
}

// Backend names accepted by configuration.
const (
	KindVocab         = "vocab"
	KindSentencePiece = "sentencepiece"
	KindWordPiece     = "wordpiece"
)
