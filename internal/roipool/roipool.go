// Package roipool implements region-of-interest max pooling with optional
// sub-rectangle masking, the feature extraction step of two-stage object
// detectors: each ROI of a dense feature map is reduced to a fixed-size
// grid of channel-wise maxima, together with the argmax indices that
// produced them.
package roipool

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/regionet-ml/regionet/internal/tensor"
)

// Sentinel errors. Returned errors wrap these with call context; match with
// errors.Is.
var (
	// ErrInvalidPooledSize rejects a non-positive pooled grid dimension at
	// construction.
	ErrInvalidPooledSize = errors.New("roipool: pooled size must be positive")

	// ErrBatchIndex reports an ROI whose batch index falls outside the
	// input batch. The whole forward call fails; no partial output is
	// produced.
	ErrBatchIndex = errors.New("roipool: roi batch index out of range")

	// ErrBackwardUnsupported is returned by every Backward call. Gradient
	// routing through the argmax indices is not implemented for this
	// operator.
	ErrBackwardUnsupported = errors.New("roipool: backward pass is not supported")
)

// ROIMaskPool pools a fixed-size feature grid out of each region of
// interest. The layer is immutable after construction and keeps no per-call
// state; forward calls on the same inputs are deterministic.
//
// Example:
//
//	backend := cpu.New()
//	pool, err := roipool.New(tensor.ROIPoolParams{
//	    PooledHeight: 7,
//	    PooledWidth:  7,
//	    SpatialScale: 1.0 / 16,
//	    ROIScale:     1,
//	}, backend)
//	if err != nil {
//	    return err
//	}
//	output, argmax, err := pool.Forward(features, rois)
type ROIMaskPool[B tensor.Backend] struct {
	params  tensor.ROIPoolParams
	backend B
}

// New creates an ROI mask pooling layer. It returns an error wrapping
// ErrInvalidPooledSize when PooledHeight or PooledWidth is not positive.
// The remaining parameters are accepted as-is; callers are responsible for
// sane scale and shift values.
func New[B tensor.Backend](params tensor.ROIPoolParams, backend B) (*ROIMaskPool[B], error) {
	if params.PooledHeight <= 0 {
		return nil, errors.Wrapf(ErrInvalidPooledSize, "pooled height %d", params.PooledHeight)
	}
	if params.PooledWidth <= 0 {
		return nil, errors.Wrapf(ErrInvalidPooledSize, "pooled width %d", params.PooledWidth)
	}

	return &ROIMaskPool[B]{
		params:  params,
		backend: backend,
	}, nil
}

// Forward pools every ROI of the input feature map.
//
// Input: [batch, channels, height, width], Float32 or Float64; an ordered
// ROI slice whose order determines output order.
// Output: pooled values and Int32 argmax indices, both shaped
// [len(rois), channels, PooledHeight, PooledWidth]. An empty ROI slice
// yields correctly shaped empty tensors.
//
// Every ROI's batch index is validated before any pooling happens; a
// violation returns an error wrapping ErrBatchIndex and no output. The
// input and ROI slice are never mutated or retained.
func (m *ROIMaskPool[B]) Forward(input *tensor.RawTensor, rois []tensor.ROI) (*tensor.RawTensor, *tensor.RawTensor, error) {
	shape := input.Shape()
	if len(shape) != 4 {
		return nil, nil, errors.Errorf("roipool: expected 4D input [N,C,H,W], got %dD", len(shape))
	}

	batch := shape[0]
	for i, r := range rois {
		if r.BatchIndex < 0 || r.BatchIndex >= batch {
			return nil, nil, errors.Wrapf(ErrBatchIndex, "roi %d: batch index %d with batch size %d", i, r.BatchIndex, batch)
		}
	}

	output, argmax := m.backend.ROIMaskPool(input, rois, m.params)
	return output, argmax, nil
}

// Backward always fails with an error wrapping ErrBackwardUnsupported and
// touches nothing.
func (m *ROIMaskPool[B]) Backward(_ *tensor.RawTensor) (*tensor.RawTensor, error) {
	return nil, errors.WithStack(ErrBackwardUnsupported)
}

// OutputShape declares the forward output shape from the channel count and
// ROI count alone, before any data exists. Graph executors use this for
// ahead-of-time shape bookkeeping.
func (m *ROIMaskPool[B]) OutputShape(channels, numROIs int) tensor.Shape {
	return tensor.Shape{numROIs, channels, m.params.PooledHeight, m.params.PooledWidth}
}

// Params returns the pooling configuration.
func (m *ROIMaskPool[B]) Params() tensor.ROIPoolParams {
	return m.params
}

// String returns a string representation of the layer.
func (m *ROIMaskPool[B]) String() string {
	return fmt.Sprintf("ROIMaskPool(pooled=%dx%d, spatial_scale=%g, spatial_shift=%g, half_part=%s, roi_scale=%g, mask_scale=%g)",
		m.params.PooledHeight, m.params.PooledWidth,
		m.params.SpatialScale, m.params.SpatialShift,
		m.params.HalfPart, m.params.ROIScale, m.params.MaskScale)
}
