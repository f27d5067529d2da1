package codec

import (
	"fmt"

	tk "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/model/wordpiece"
	"github.com/sugarme/tokenizer/normalizer"
	"github.com/sugarme/tokenizer/pretokenizer"

	"github.com/gomithril/sentenceembed/tokenizer"
)

// WordPiece is a BERT style tokenizer backed by sugarme/tokenizer. Marker ids
// come from the library's view of the vocabulary file.
type WordPiece struct {
	t        *tk.Tokenizer
	specials tokenizer.Specials
	maxLen   int
}

// NewWordPiece builds a BERT WordPiece tokenizer from a vocab.txt file.
func NewWordPiece(vocabPath string, maxLen int) (*WordPiece, error) {
	if err := checkModelFile(vocabPath); err != nil {
		return nil, err
	}
	wp, err := wordpiece.NewWordPieceFromFile(vocabPath, "[UNK]")
	if err != nil {
		return nil, fmt.Errorf("failed to load wordpiece vocab: %w", err)
	}

	t := tk.NewTokenizer(wp)
	t.WithNormalizer(normalizer.NewBertNormalizer(true, true, true, true))
	t.WithPreTokenizer(pretokenizer.NewBertPreTokenizer())

	sp, err := Specials(t)
	if err != nil {
		return nil, fmt.Errorf("vocab %s: %w", vocabPath, err)
	}
	return &WordPiece{t: t, specials: sp, maxLen: maxLen}, nil
}

// Specials looks up [CLS], [SEP] and [PAD] in the vocabulary t was built
// from, so marker ids share the library's numbering with content ids.
func Specials(t *tk.Tokenizer) (tokenizer.Specials, error) {
	var sp tokenizer.Specials
	for _, m := range []struct {
		token string
		dst   *int64
	}{
		{"[CLS]", &sp.Cls},
		{"[SEP]", &sp.Sep},
		{"[PAD]", &sp.Pad},
	} {
		id, ok := t.TokenToId(m.token)
		if !ok {
			return tokenizer.Specials{}, fmt.Errorf("vocab lacks %s", m.token)
		}
		*m.dst = int64(id)
	}
	return sp, nil
}

// Encode lowercases and splits sentence into WordPiece ids, then frames them.
func (w *WordPiece) Encode(sentence string) (tokenizer.Encoding, error) {
	enc, err := w.t.Encode(tk.NewSingleEncodeInput(tk.NewInputSequence(sentence)), false)
	if err != nil {
		return tokenizer.Encoding{}, fmt.Errorf("wordpiece encode: %w", err)
	}
	uids := enc.GetIds()
	ids := make([]int64, len(uids))
	for i, id := range uids {
		ids[i] = int64(id)
	}
	return tokenizer.Frame(ids, w.specials, w.maxLen), nil
}
