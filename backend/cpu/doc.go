// Copyright 2026 RegioNet. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for the pooling operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Float32 and Float64 support
//   - Goroutine fan-out over independent (roi, channel) pairs
//
// # Basic Usage
//
//	import (
//	    "github.com/regionet-ml/regionet/backend/cpu"
//	    "github.com/regionet-ml/regionet/roipool"
//	    "github.com/regionet-ml/regionet/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    pool, err := roipool.New(tensor.ROIPoolParams{
//	        PooledHeight: 7,
//	        PooledWidth:  7,
//	        SpatialScale: 1.0 / 16,
//	        ROIScale:     1,
//	    }, backend)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    output, argmax, err := pool.Forward(features, rois)
//	}
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each forward call allocates
// its own outputs and shares no mutable state with other calls.
package cpu
