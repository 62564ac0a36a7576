package parallel

import (
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()

	var counter int64
	n := 1000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestForPairs(t *testing.T) {
	cfg := DefaultConfig()

	rois, channels := 5, 7
	results := make([][]bool, rois)
	for n := range results {
		results[n] = make([]bool, channels)
	}

	ForPairs(rois, channels, func(n, c int) {
		results[n][c] = true
	}, cfg)

	for n := 0; n < rois; n++ {
		for c := 0; c < channels; c++ {
			if !results[n][c] {
				t.Errorf("Missing result at [%d][%d]", n, c)
			}
		}
	}
}

func TestFor_Sequential(t *testing.T) {
	cfg := Config{Enabled: false}

	var counter int64
	For(100, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != 100 {
		t.Errorf("Expected 100, got %d", counter)
	}
}

func TestFor_SmallChunk(t *testing.T) {
	// Small work units fall back to sequential.
	cfg := DefaultConfig()

	var counter int64
	n := cfg.MinChunkSize - 1

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestForPairs_Zero(t *testing.T) {
	cfg := DefaultConfig()

	called := false
	ForPairs(0, 8, func(_, _ int) {
		called = true
	}, cfg)

	if called {
		t.Error("ForPairs with zero outer dimension must not invoke f")
	}
}
