// Package sentenceembed encodes a sentence and runs it through a sentence
// embedding model with ONNX Runtime.
package sentenceembed

import (
	"fmt"

	"github.com/gomithril/sentenceembed/codec"
	"github.com/gomithril/sentenceembed/config"
	"github.com/gomithril/sentenceembed/embedding"
	"github.com/gomithril/sentenceembed/tokenizer"
	"github.com/rs/zerolog/log"
)

// Version of the library
const Version = "v0.1.0"

// Embedding is the model output for one sentence.
type Embedding []float32

// NewTokenizer builds the tokenizer backend named by cfg.Tokenizer.Kind.
func NewTokenizer(cfg *config.Config) (tokenizer.Tokenizer, error) {
	maxLen := cfg.Model.SeqLen
	switch cfg.Tokenizer.Kind {
	case tokenizer.KindVocab, "":
		return tokenizer.NewWhitespace(maxLen), nil
	case tokenizer.KindSentencePiece:
		return codec.NewSentencePiece(cfg.Tokenizer.Model, cfg.Specials(), maxLen)
	case tokenizer.KindWordPiece:
		return codec.NewWordPiece(cfg.Tokenizer.Model, maxLen)
	default:
		return nil, fmt.Errorf("unknown tokenizer kind %q", cfg.Tokenizer.Kind)
	}
}

// Embedder ties a tokenizer to a loaded model session.
type Embedder struct {
	tok tokenizer.Tokenizer
	svc *embedding.Service
}

// New loads the model, then the tokenizer.
func New(cfg *config.Config) (*Embedder, error) {
	svc, err := embedding.NewService(cfg.Embedding())
	if err != nil {
		return nil, err
	}
	tok, err := NewTokenizer(cfg)
	if err != nil {
		svc.Close()
		return nil, err
	}
	return &Embedder{tok: tok, svc: svc}, nil
}

// Embed tokenizes sentence and runs one forward pass.
func (e *Embedder) Embed(sentence string) (Embedding, error) {
	enc, err := e.tok.Encode(sentence)
	if err != nil {
		return nil, err
	}
	log.Debug().Ints64("input_ids", enc.IDs[:realTokens(enc)]).Msg("encoded")

	vec, err := e.svc.Embed(enc)
	if err != nil {
		return nil, err
	}
	return vec, nil
}

// Close releases the model session and runtime.
func (e *Embedder) Close() {
	e.svc.Close()
}

func realTokens(enc tokenizer.Encoding) int {
	n := 0
	for _, m := range enc.Mask {
		if m != 0 {
			n++
		}
	}
	return n
}
