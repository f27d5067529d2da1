package onnx

import (
	ort "github.com/yalue/onnxruntime_go"
)

// ModelIO owns the input and output values of one inference call.
// A nil output slot asks the runtime to allocate that output.
type ModelIO struct {
	InputTensors  []ort.Value
	OutputTensors []ort.Value
}

// AddInput appends an input value.
func (io *ModelIO) AddInput(tensor ort.Value) {
	io.InputTensors = append(io.InputTensors, tensor)
}

// AddOutput appends an output value; nil lets the runtime allocate it.
func (io *ModelIO) AddOutput(tensor ort.Value) {
	io.OutputTensors = append(io.OutputTensors, tensor)
}

// Destroy releases outputs first, then inputs in reverse creation order.
func (io *ModelIO) Destroy() {
	for i := len(io.OutputTensors) - 1; i >= 0; i-- {
		if io.OutputTensors[i] != nil {
			io.OutputTensors[i].Destroy()
		}
	}
	for i := len(io.InputTensors) - 1; i >= 0; i-- {
		if io.InputTensors[i] != nil {
			io.InputTensors[i].Destroy()
		}
	}
	io.InputTensors = nil
	io.OutputTensors = nil
}
