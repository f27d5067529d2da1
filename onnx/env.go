// Package onnx wraps the onnxruntime_go environment, session and value
// lifecycles used by the embedding service.
package onnx

import (
	"fmt"

	"github.com/rs/zerolog/log"
	ort "github.com/yalue/onnxruntime_go"
)

// InitEnvironment points the bindings at libraryPath, when set, and
// initializes the process wide runtime environment if it is not already up.
func InitEnvironment(libraryPath string) error {
	if ort.IsInitialized() {
		return nil
	}
	if libraryPath != "" {
		ort.SetSharedLibraryPath(libraryPath)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return fmt.Errorf("failed to init ONNX env: %w", err)
	}
	log.Debug().Str("library", libraryPath).Msg("onnx runtime initialized")
	return nil
}

// DestroyEnvironment tears down the runtime environment.
func DestroyEnvironment() error {
	if !ort.IsInitialized() {
		return nil
	}
	return ort.DestroyEnvironment()
}
