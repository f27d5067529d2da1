package sentenceembed

import (
	"path/filepath"
	"testing"

	"github.com/gomithril/sentenceembed/config"
	"github.com/gomithril/sentenceembed/tokenizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Model: config.ModelConfig{SeqLen: 128},
		Tokenizer: config.TokenizerConfig{
			Kind:  tokenizer.KindVocab,
			ClsID: 2, SepID: 3, PadID: 0,
		},
	}
}

func TestNewTokenizerVocab(t *testing.T) {
	tok, err := NewTokenizer(testConfig())
	require.NoError(t, err)

	enc, err := tok.Encode("python is a language")
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 5, 7, 8, 9, 3, 0}, enc.IDs[:7])
	assert.Equal(t, 6, realTokens(enc))
}

func TestNewTokenizerUnknownKind(t *testing.T) {
	cfg := testConfig()
	cfg.Tokenizer.Kind = "bpe"
	_, err := NewTokenizer(cfg)
	require.Error(t, err)
}

func TestNewTokenizerLibraryBackendsNeedModel(t *testing.T) {
	for _, kind := range []string{tokenizer.KindSentencePiece, tokenizer.KindWordPiece} {
		cfg := testConfig()
		cfg.Tokenizer.Kind = kind
		cfg.Tokenizer.Model = filepath.Join(t.TempDir(), "missing")
		_, err := NewTokenizer(cfg)
		assert.Error(t, err, kind)
	}
}
