package embedding

import (
	"errors"
	"fmt"
	"time"

	"github.com/gomithril/sentenceembed/onnx"
	"github.com/gomithril/sentenceembed/tokenizer"
	"github.com/rs/zerolog/log"
	ort "github.com/yalue/onnxruntime_go"
)

// ErrSequenceLength is returned when an encoding does not match the
// configured sequence length.
var ErrSequenceLength = errors.New("encoding length does not match sequence length")

// Config holds embedding service configuration
type Config struct {
	ModelPath   string
	LibraryPath string
	SeqLen      int64
	InputNames  []string
	OutputName  string
	Session     onnx.SessionConfig
}

// DefaultConfig returns default embedding configuration
func DefaultConfig() *Config {
	return &Config{
		ModelPath:  "models/sentence_transformer.onnx",
		SeqLen:     128,
		InputNames: []string{"input_ids", "attention_mask"},
		OutputName: "sentence_embedding",
		Session:    onnx.DefaultSessionConfig(),
	}
}

// Service owns the runtime environment, session options and session for
// the lifetime of the process.
type Service struct {
	config  *Config
	options *ort.SessionOptions
	session *ort.DynamicAdvancedSession
}

// NewService initializes the runtime and loads the model. On failure every
// resource created so far is released before returning.
func NewService(config *Config) (svc *Service, err error) {
	if config == nil {
		config = DefaultConfig()
	}
	if len(config.InputNames) != 2 {
		return nil, fmt.Errorf("expected 2 input names, got %d", len(config.InputNames))
	}

	if err := onnx.InitEnvironment(config.LibraryPath); err != nil {
		return nil, err
	}
	s := &Service{config: config}
	defer func() {
		if err != nil {
			s.Close()
		}
	}()

	s.options, err = onnx.NewSessionOptions(config.Session)
	if err != nil {
		return nil, err
	}

	s.session, err = onnx.NewSession(
		config.ModelPath,
		config.InputNames,
		[]string{config.OutputName},
		s.options,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load model %s: %w", config.ModelPath, err)
	}
	log.Debug().
		Str("model", config.ModelPath).
		Int("threads", config.Session.IntraOpThreads).
		Str("optimization", config.Session.Optimization).
		Msg("model loaded")
	return s, nil
}

// Close releases the session, then its options, then the environment.
func (s *Service) Close() {
	if s.session != nil {
		s.session.Destroy()
		s.session = nil
	}
	if s.options != nil {
		s.options.Destroy()
		s.options = nil
	}
	if err := onnx.DestroyEnvironment(); err != nil {
		log.Warn().Err(err).Msg("failed to destroy ONNX env")
	}
}

// prepareTensors wraps the encoding as two [1, SeqLen] int64 inputs and
// leaves the output slot for the runtime to allocate.
func (s *Service) prepareTensors(enc tokenizer.Encoding) (*onnx.ModelIO, error) {
	seqLen := s.config.SeqLen
	if int64(enc.Len()) != seqLen || len(enc.Mask) != enc.Len() {
		return nil, fmt.Errorf("%w: ids=%d mask=%d want=%d", ErrSequenceLength, enc.Len(), len(enc.Mask), seqLen)
	}
	shape := ort.NewShape(1, seqLen)

	io := &onnx.ModelIO{}
	inputIdsTensor, err := ort.NewTensor(shape, enc.IDs)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s tensor: %w", s.config.InputNames[0], err)
	}
	io.AddInput(inputIdsTensor)

	attMaskTensor, err := ort.NewTensor(shape, enc.Mask)
	if err != nil {
		io.Destroy()
		return nil, fmt.Errorf("failed to create %s tensor: %w", s.config.InputNames[1], err)
	}
	io.AddInput(attMaskTensor)
	io.AddOutput(nil)

	return io, nil
}

// Embed runs one forward pass and returns a copy of the output buffer.
func (s *Service) Embed(enc tokenizer.Encoding) ([]float32, error) {
	io, err := s.prepareTensors(enc)
	if err != nil {
		return nil, err
	}
	defer io.Destroy()

	start := time.Now()
	if err := s.session.Run(io.InputTensors, io.OutputTensors); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}
	log.Debug().Dur("elapsed", time.Since(start)).Msg("inference complete")

	sentenceEmbedTensor, ok := io.OutputTensors[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("failed to type assert %s to *ort.Tensor[float32]", s.config.OutputName)
	}
	data := sentenceEmbedTensor.GetData()

	out := make([]float32, len(data))
	copy(out, data)
	return out, nil
}
