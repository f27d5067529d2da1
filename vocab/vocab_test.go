package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupKnownWords(t *testing.T) {
	for i, w := range Words {
		assert.Equal(t, int64(i), Lookup(w), "word %q", w)
	}
}

func TestLookupUnknownWords(t *testing.T) {
	for _, w := range []string{"rust", "great", "Python", "IS", "", " ", "python ", "[unk]"} {
		assert.Equal(t, UnkID, Lookup(w), "word %q", w)
	}
}

func TestReservedIDs(t *testing.T) {
	assert.Equal(t, "[PAD]", Words[PadID])
	assert.Equal(t, "[UNK]", Words[UnkID])
	assert.Equal(t, "[CLS]", Words[ClsID])
	assert.Equal(t, "[SEP]", Words[SepID])
	assert.Equal(t, "[MASK]", Words[MaskID])
	assert.Equal(t, 10, Size())
}

func TestWord(t *testing.T) {
	w, ok := Word(5)
	assert.True(t, ok)
	assert.Equal(t, "python", w)

	_, ok = Word(-1)
	assert.False(t, ok)
	_, ok = Word(int64(Size()))
	assert.False(t, ok)
}
