// Package codec adapts third-party subword tokenizers to the fixed-length
// framing used by the embedding model.
package codec

import (
	"fmt"
	"os"

	"github.com/eliben/go-sentencepiece"
	"github.com/gomithril/sentenceembed/tokenizer"
)

func checkModelFile(modelPath string) error {
	if modelPath == "" {
		return fmt.Errorf("model path is empty")
	}
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		return fmt.Errorf("model file not found at %s", modelPath)
	}
	return nil
}

// NewProcessor loads a SentencePiece model proto from modelPath.
func NewProcessor(modelPath string) (*sentencepiece.Processor, error) {
	if err := checkModelFile(modelPath); err != nil {
		return nil, err
	}
	return sentencepiece.NewProcessorFromPath(modelPath)
}

// SentencePiece encodes with a SentencePiece model and frames the pieces
// with caller supplied marker ids.
type SentencePiece struct {
	processor *sentencepiece.Processor
	specials  tokenizer.Specials
	maxLen    int
}

// NewSentencePiece loads the model at modelPath.
func NewSentencePiece(modelPath string, sp tokenizer.Specials, maxLen int) (*SentencePiece, error) {
	proc, err := NewProcessor(modelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load SentencePiece processor: %w", err)
	}
	return &SentencePiece{processor: proc, specials: sp, maxLen: maxLen}, nil
}

// IDs returns the raw piece ids of text without markers or padding.
func (c *SentencePiece) IDs(text string) []int64 {
	tokens := c.processor.Encode(text)

	ids := make([]int64, len(tokens))
	for i, token := range tokens {
		ids[i] = int64(token.ID)
	}
	return ids
}

// Encode frames the SentencePiece ids of sentence with the configured markers.
func (c *SentencePiece) Encode(sentence string) (tokenizer.Encoding, error) {
	return tokenizer.Frame(c.IDs(sentence), c.specials, c.maxLen), nil
}
