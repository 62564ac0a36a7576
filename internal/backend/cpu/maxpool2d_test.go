package cpu

import (
	"testing"

	"github.com/regionet-ml/regionet/internal/tensor"
)

// TestMaxPool2D_BasicForward tests basic max pooling correctness.
func TestMaxPool2D_BasicForward(t *testing.T) {
	backend := New()

	// Input: [1, 1, 4, 4] with sequential values 1-16
	input, _ := tensor.NewRaw(tensor.Shape{1, 1, 4, 4}, tensor.Float32, tensor.CPU)
	inputData := input.AsFloat32()
	for i := 0; i < 16; i++ {
		inputData[i] = float32(i + 1)
	}

	output := backend.MaxPool2D(input, 2, 2)

	expectedShape := tensor.Shape{1, 1, 2, 2}
	if !output.Shape().Equal(expectedShape) {
		t.Errorf("Output shape: expected %v, got %v", expectedShape, output.Shape())
	}

	// Max in each non-overlapping 2x2 window.
	expected := []float32{6, 8, 14, 16}
	outputData := output.AsFloat32()
	for i, exp := range expected {
		if outputData[i] != exp {
			t.Errorf("Output[%d]: expected %.1f, got %.1f", i, exp, outputData[i])
		}
	}
}

// TestMaxPool2D_OverlappingWindows tests stride smaller than the kernel.
func TestMaxPool2D_OverlappingWindows(t *testing.T) {
	backend := New()

	input, _ := tensor.NewRaw(tensor.Shape{1, 1, 5, 5}, tensor.Float32, tensor.CPU)
	inputData := input.AsFloat32()
	for i := 0; i < 25; i++ {
		inputData[i] = float32(i + 1)
	}

	// 3x3 kernel, stride 1: out = (5-3)/1 + 1 = 3
	output := backend.MaxPool2D(input, 3, 1)

	expectedShape := tensor.Shape{1, 1, 3, 3}
	if !output.Shape().Equal(expectedShape) {
		t.Errorf("Output shape: expected %v, got %v", expectedShape, output.Shape())
	}

	// Top-left 3x3 window peaks at 13.
	if got := output.AsFloat32()[0]; got != 13 {
		t.Errorf("First output: expected 13, got %.1f", got)
	}
}

// TestMaxPool2D_BatchChannels tests that batch and channel planes pool
// independently.
func TestMaxPool2D_BatchChannels(t *testing.T) {
	backend := New()

	input, _ := tensor.NewRaw(tensor.Shape{2, 2, 4, 4}, tensor.Float32, tensor.CPU)
	inputData := input.AsFloat32()
	for plane := 0; plane < 4; plane++ {
		for i := 0; i < 16; i++ {
			inputData[plane*16+i] = float32(plane*100 + i + 1)
		}
	}

	output := backend.MaxPool2D(input, 2, 2)

	if !output.Shape().Equal(tensor.Shape{2, 2, 2, 2}) {
		t.Fatalf("Output shape: got %v", output.Shape())
	}

	outputData := output.AsFloat32()
	for plane := 0; plane < 4; plane++ {
		base := float32(plane * 100)
		expected := []float32{base + 6, base + 8, base + 14, base + 16}
		for i, exp := range expected {
			if outputData[plane*4+i] != exp {
				t.Errorf("Plane %d, output[%d]: expected %.1f, got %.1f",
					plane, i, exp, outputData[plane*4+i])
			}
		}
	}
}

// TestMaxPool2D_Float64 tests float64 support.
func TestMaxPool2D_Float64(t *testing.T) {
	backend := New()

	input, _ := tensor.NewRaw(tensor.Shape{1, 1, 4, 4}, tensor.Float64, tensor.CPU)
	inputData := input.AsFloat64()
	for i := 0; i < 16; i++ {
		inputData[i] = float64(i + 1)
	}

	output := backend.MaxPool2D(input, 2, 2)

	expected := []float64{6, 8, 14, 16}
	outputData := output.AsFloat64()
	for i, exp := range expected {
		if outputData[i] != exp {
			t.Errorf("Output[%d]: expected %.1f, got %.1f", i, exp, outputData[i])
		}
	}
}

// TestMaxPool2D_InvalidKernel tests the argument assertions.
func TestMaxPool2D_InvalidKernel(t *testing.T) {
	backend := New()
	input, _ := tensor.NewRaw(tensor.Shape{1, 1, 4, 4}, tensor.Float32, tensor.CPU)

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for kernel larger than input")
		}
	}()
	backend.MaxPool2D(input, 5, 1)
}
