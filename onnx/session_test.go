package onnx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ort "github.com/yalue/onnxruntime_go"
)

func TestParseOptimization(t *testing.T) {
	tests := map[string]ort.GraphOptimizationLevel{
		"disable":  ort.GraphOptimizationLevelDisableAll,
		"none":     ort.GraphOptimizationLevelDisableAll,
		"basic":    ort.GraphOptimizationLevelEnableBasic,
		"":         ort.GraphOptimizationLevelEnableBasic,
		" Basic ":  ort.GraphOptimizationLevelEnableBasic,
		"extended": ort.GraphOptimizationLevelEnableExtended,
		"ALL":      ort.GraphOptimizationLevelEnableAll,
	}
	for name, want := range tests {
		got, err := ParseOptimization(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}

func TestParseOptimizationUnknown(t *testing.T) {
	_, err := ParseOptimization("turbo")
	require.ErrorIs(t, err, ErrUnknownOptimization)
}

func TestNewSessionOptionsRejectsBadLevel(t *testing.T) {
	_, err := NewSessionOptions(SessionConfig{IntraOpThreads: 1, Optimization: "turbo"})
	require.ErrorIs(t, err, ErrUnknownOptimization)
}

func TestDefaultSessionConfig(t *testing.T) {
	cfg := DefaultSessionConfig()
	assert.Equal(t, 1, cfg.IntraOpThreads)
	assert.Equal(t, "basic", cfg.Optimization)
}

func TestModelIODestroyEmpty(t *testing.T) {
	io := &ModelIO{}
	io.AddOutput(nil)
	assert.Len(t, io.OutputTensors, 1)
	io.Destroy()
	assert.Empty(t, io.OutputTensors)
}
