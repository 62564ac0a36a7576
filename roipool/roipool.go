// Copyright 2026 RegioNet. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package roipool provides region-of-interest max pooling with optional
// sub-rectangle masking, the feature extraction step of two-stage object
// detectors.
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
//	    log.Fatal(err)
//	}
//	output, argmax, err := pool.Forward(features, rois)
package roipool

import (
	"github.com/regionet-ml/regionet/internal/roipool"
	"github.com/regionet-ml/regionet/tensor"
)

// Sentinel errors; match with errors.Is.
var (
	// ErrInvalidPooledSize rejects a non-positive pooled grid dimension.
	ErrInvalidPooledSize = roipool.ErrInvalidPooledSize

	// ErrBatchIndex reports an ROI whose batch index falls outside the batch.
	ErrBatchIndex = roipool.ErrBatchIndex

	// ErrBackwardUnsupported is returned by every Backward call.
	ErrBackwardUnsupported = roipool.ErrBackwardUnsupported
)

// ROIMaskPool pools a fixed-size feature grid out of each region of interest.
type ROIMaskPool[B tensor.Backend] = roipool.ROIMaskPool[B]

// New creates an ROI mask pooling layer for the given backend.
func New[B tensor.Backend](params tensor.ROIPoolParams, backend B) (*ROIMaskPool[B], error) {
	return roipool.New(params, backend)
}
