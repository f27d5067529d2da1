package onnx

import (
	"errors"
	"fmt"
	"strings"

	ort "github.com/yalue/onnxruntime_go"
)

// ErrUnknownOptimization is returned for an unrecognized graph optimization name.
var ErrUnknownOptimization = errors.New("unknown graph optimization level")

// SessionConfig controls threading and graph optimization of a session.
type SessionConfig struct {
	IntraOpThreads int
	Optimization   string
}

// DefaultSessionConfig is single threaded with basic graph optimization.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{IntraOpThreads: 1, Optimization: "basic"}
}

// ParseOptimization maps disable, basic, extended or all to a runtime level.
func ParseOptimization(name string) (ort.GraphOptimizationLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "disable", "none":
		return ort.GraphOptimizationLevelDisableAll, nil
	case "basic", "":
		return ort.GraphOptimizationLevelEnableBasic, nil
	case "extended":
		return ort.GraphOptimizationLevelEnableExtended, nil
	case "all":
		return ort.GraphOptimizationLevelEnableAll, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOptimization, name)
	}
}

// NewSessionOptions builds session options from cfg. The caller owns the
// result and must Destroy it after the session that uses it.
func NewSessionOptions(cfg SessionConfig) (*ort.SessionOptions, error) {
	level, err := ParseOptimization(cfg.Optimization)
	if err != nil {
		return nil, err
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("failed to create session options: %w", err)
	}
	if err := opts.SetIntraOpNumThreads(cfg.IntraOpThreads); err != nil {
		opts.Destroy()
		return nil, fmt.Errorf("failed to set intra-op threads: %w", err)
	}
	if err := opts.SetGraphOptimizationLevel(level); err != nil {
		opts.Destroy()
		return nil, fmt.Errorf("failed to set graph optimization level: %w", err)
	}
	return opts, nil
}

// NewSession loads modelPath into a session bound to the named inputs and
// outputs. Values are supplied per Run call.
func NewSession(
	modelPath string,
	inputs []string,
	outputs []string,
	opts *ort.SessionOptions,
) (*ort.DynamicAdvancedSession, error) {
	return ort.NewDynamicAdvancedSession(
		modelPath,
		inputs,
		outputs,
		opts,
	)
}
