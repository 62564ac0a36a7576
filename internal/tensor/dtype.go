// Package tensor provides the core tensor types for the RegioNet library.
package tensor

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types. Feature maps and pooled outputs are Float32 or
// Float64; argmax index maps are Int32.
const (
	Float32 DataType = iota
	Float64
	Int32
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64:
		return 8
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	default:
		return "unknown"
	}
}
