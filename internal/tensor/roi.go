package tensor

import "fmt"

// ROI is one region of interest: a rectangle in image coordinates tied to
// one image of the input batch. X2 >= X1 and Y2 >= Y1 are expected but not
// enforced; a degenerate rectangle still pools at least one feature cell.
type ROI struct {
	BatchIndex int
	X1, Y1     float64
	X2, Y2     float64
}

// HalfPart selects which half of the rescaled ROI is kept for pooling.
// The kept half always touches the ROI center.
type HalfPart int

// Half-part modes.
const (
	HalfNone   HalfPart = iota // pool the whole rescaled ROI
	HalfLeft                   // keep the left half
	HalfRight                  // keep the right half
	HalfTop                    // keep the top half
	HalfBottom                 // keep the bottom half
)

// String returns a human-readable mode name.
func (hp HalfPart) String() string {
	switch hp {
	case HalfNone:
		return "none"
	case HalfLeft:
		return "left"
	case HalfRight:
		return "right"
	case HalfTop:
		return "top"
	case HalfBottom:
		return "bottom"
	default:
		return fmt.Sprintf("halfpart(%d)", int(hp))
	}
}

// ROIPoolParams configures ROI mask pooling. The parameters are fixed for
// the lifetime of a pooling layer.
//
// Image coordinates map to feature-map coordinates as
// round(v*SpatialScale + SpatialShift). ROIScale rescales each ROI about
// its own center before the mapping. MaskScale, when positive, defines a
// second center-rescaled rectangle whose feature values are treated as 0
// during the max search; MaskScale <= 0 disables masking.
type ROIPoolParams struct {
	PooledHeight int
	PooledWidth  int
	SpatialScale float64
	SpatialShift float64
	HalfPart     HalfPart
	ROIScale     float64
	MaskScale    float64
}
