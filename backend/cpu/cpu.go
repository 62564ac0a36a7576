// Copyright 2026 RegioNet. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/regionet-ml/regionet/internal/backend/cpu"
	"github.com/regionet-ml/regionet/tensor"
)

// Backend represents the CPU backend implementation.
//
// CPU backend provides pure Go implementations of the pooling operations
// with goroutine fan-out over independent (roi, channel) pairs.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/regionet-ml/regionet/backend/cpu"
//	    "github.com/regionet-ml/regionet/roipool"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    pool, err := roipool.New(params, backend)
//	    ...
//	}
func New() *Backend {
	return internalcpu.New()
}
