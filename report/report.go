// Package report formats an embedding for the terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// DefaultDims is how many leading values Print shows.
const DefaultDims = 5

// Print writes the sentence and the first dims values of embedding:
//
//	Sentence: <text>
//	Embedding: [v0 v1 v2 v3 v4]...
//
// Fewer values are printed when the embedding is shorter than dims.
func Print(w io.Writer, sentence string, embedding []float32, dims int) error {
	n := min(dims, len(embedding))
	vals := make([]string, n)
	for i := 0; i < n; i++ {
		vals[i] = fmt.Sprintf("%f", embedding[i])
	}
	_, err := fmt.Fprintf(w, "Sentence: %s\nEmbedding: [%s]...\n", sentence, strings.Join(vals, " "))
	return err
}

// Stats describes an embedding as a whole.
type Stats struct {
	Dims int
	Norm float64
}

// Summary returns the dimension and L2 norm of embedding.
func Summary(embedding []float32) Stats {
	v := make([]float64, len(embedding))
	for i, x := range embedding {
		v[i] = float64(x)
	}
	st := Stats{Dims: len(v)}
	if len(v) > 0 {
		st.Norm = floats.Norm(v, 2)
	}
	return st
}
