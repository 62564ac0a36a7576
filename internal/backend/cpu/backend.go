// Package cpu implements the pure Go CPU backend for pooling operations.
package cpu

import (
	"github.com/regionet-ml/regionet/internal/parallel"
	"github.com/regionet-ml/regionet/internal/tensor"
)

// CPUBackend implements pooling operations on CPU. Kernels fan out over
// (roi, channel) pairs; each pair writes a disjoint output region.
type CPUBackend struct {
	device tensor.Device
	par    parallel.Config
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		par:    parallel.DefaultConfig(),
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}
