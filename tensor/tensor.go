// Copyright 2026 RegioNet. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for tensor types in RegioNet.
//
// The package defines the core types the pooling operators work on:
//   - RawTensor: contiguous row-major storage with shape metadata
//   - Backend: interface for device-specific compute implementations
//   - ROI, ROIPoolParams, HalfPart: pooling vocabulary
//   - Shape, DataType, Device: core type definitions
//
// Example:
//
//	backend := cpu.New()
//	features, err := tensor.NewRaw(tensor.Shape{1, 256, 38, 50}, tensor.Float32, tensor.CPU)
package tensor

import (
	"github.com/regionet-ml/regionet/internal/tensor"
)

// Type aliases for public API

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
)

// Device represents the compute device for tensor operations.
type Device = tensor.Device

// Device constants.
const (
	CPU Device = tensor.CPU
)

// Shape represents the dimensions of a tensor.
type Shape = tensor.Shape

// RawTensor is the low-level tensor representation.
type RawTensor = tensor.RawTensor

// NewRaw creates a new RawTensor with the given shape and type.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// Backend defines the interface compute backends must implement.
type Backend = tensor.Backend

// ROI is one region of interest in image coordinates.
type ROI = tensor.ROI

// HalfPart selects which half of the rescaled ROI is kept for pooling.
type HalfPart = tensor.HalfPart

// Half-part modes.
const (
	HalfNone   HalfPart = tensor.HalfNone
	HalfLeft   HalfPart = tensor.HalfLeft
	HalfRight  HalfPart = tensor.HalfRight
	HalfTop    HalfPart = tensor.HalfTop
	HalfBottom HalfPart = tensor.HalfBottom
)

// ROIPoolParams configures ROI mask pooling.
type ROIPoolParams = tensor.ROIPoolParams
