package embedding

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gomithril/sentenceembed/tokenizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runtimeLibrary returns the shared library path or skips the test.
func runtimeLibrary(t *testing.T) string {
	t.Helper()
	lib := os.Getenv("ONNX_RUNTIME")
	if lib == "" {
		t.Skip("ONNX_RUNTIME not set; skipping runtime test")
	}
	if _, err := os.Stat(lib); err != nil {
		t.Skipf("onnx runtime library unavailable: %v", err)
	}
	return lib
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, int64(128), cfg.SeqLen)
	assert.Equal(t, []string{"input_ids", "attention_mask"}, cfg.InputNames)
	assert.Equal(t, "sentence_embedding", cfg.OutputName)
	assert.Equal(t, 1, cfg.Session.IntraOpThreads)
	assert.Equal(t, "basic", cfg.Session.Optimization)
}

func TestNewServiceRejectsInputNames(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InputNames = []string{"input_ids"}
	_, err := NewService(cfg)
	require.Error(t, err)
}

func TestPrepareTensorsRejectsLength(t *testing.T) {
	s := &Service{config: DefaultConfig()}
	_, err := s.prepareTensors(tokenizer.Frame(nil, tokenizer.DefaultSpecials, 16))
	require.ErrorIs(t, err, ErrSequenceLength)
}

func TestNewServiceMissingModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LibraryPath = runtimeLibrary(t)
	cfg.ModelPath = filepath.Join(t.TempDir(), "missing.onnx")

	_, err := NewService(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.onnx")
}

func TestNewServiceMalformedModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LibraryPath = runtimeLibrary(t)
	cfg.ModelPath = filepath.Join(t.TempDir(), "bad.onnx")
	require.NoError(t, os.WriteFile(cfg.ModelPath, []byte("not a model"), 0o644))

	_, err := NewService(cfg)
	require.Error(t, err)
}

func TestEmbed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LibraryPath = runtimeLibrary(t)
	if p := os.Getenv("SENTENCEEMBED_MODEL_PATH"); p != "" {
		cfg.ModelPath = p
	}
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		t.Skipf("model unavailable: %v", err)
	}

	svc, err := NewService(cfg)
	require.NoError(t, err)
	defer svc.Close()

	enc, err := tokenizer.NewWhitespace(int(cfg.SeqLen)).Encode("python is a language")
	require.NoError(t, err)

	vec, err := svc.Embed(enc)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(vec), 5)

	again, err := svc.Embed(enc)
	require.NoError(t, err)
	assert.Equal(t, vec, again)
}
