// Package vocab holds the fixed vocabulary used by the whitespace tokenizer.
package vocab

// Reserved ids. Their positions in Words must not change.
const (
	PadID  int64 = 0
	UnkID  int64 = 1
	ClsID  int64 = 2
	SepID  int64 = 3
	MaskID int64 = 4
)

// Words is ordered by token id.
var Words = [...]string{
	"[PAD]", "[UNK]", "[CLS]", "[SEP]", "[MASK]",
	"python", "javascript", "is", "a", "language",
}

// Lookup returns the id of word, or UnkID when the word is not in the table.
// Matching is exact and case-sensitive.
func Lookup(word string) int64 {
	for i, w := range Words {
		if w == word {
			return int64(i)
		}
	}
	return UnkID
}

// Size returns the number of entries in the vocabulary.
func Size() int { return len(Words) }

// Word returns the string for id.
func Word(id int64) (string, bool) {
	if id < 0 || id >= int64(len(Words)) {
		return "", false
	}
	return Words[id], true
}
