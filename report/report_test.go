package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	emb := []float32{0.5, -0.25, 1, 0.125, -2, 9, 9}
	require.NoError(t, Print(&buf, "python is a language", emb, DefaultDims))
	assert.Equal(t,
		"Sentence: python is a language\nEmbedding: [0.500000 -0.250000 1.000000 0.125000 -2.000000]...\n",
		buf.String())
}

func TestPrintShortEmbedding(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Print(&buf, "x", []float32{1, 2}, DefaultDims))
	assert.Equal(t, "Sentence: x\nEmbedding: [1.000000 2.000000]...\n", buf.String())

	buf.Reset()
	require.NoError(t, Print(&buf, "", nil, DefaultDims))
	assert.Equal(t, "Sentence: \nEmbedding: []...\n", buf.String())
}

func TestSummary(t *testing.T) {
	st := Summary([]float32{3, 4})
	assert.Equal(t, 2, st.Dims)
	assert.InDelta(t, 5.0, st.Norm, 1e-9)

	assert.Equal(t, Stats{}, Summary(nil))
}
