package tensor

// Backend defines the interface compute backends must implement.
// Backends handle the actual computation for pooling operations.
//
// Implementations:
//   - CPU: pure Go kernels with goroutine fan-out over (roi, channel) pairs
//
// A backend must not retain references to its inputs beyond the call and
// must return freshly allocated outputs exclusively owned by the caller.
type Backend interface {
	// ROIMaskPool max-pools a PooledHeight x PooledWidth grid out of each
	// region of interest of a [batch, channels, height, width] feature map.
	// It returns the pooled output and a parallel Int32 argmax tensor, both
	// shaped [len(rois), channels, PooledHeight, PooledWidth]. Backends
	// treat malformed inputs (wrong rank, bad batch index, unsupported
	// dtype) as programmer error and panic; layers validate first.
	ROIMaskPool(input *RawTensor, rois []ROI, p ROIPoolParams) (*RawTensor, *RawTensor)

	// MaxPool2D performs plain 2D max pooling over the full feature map
	// with a square kernel.
	MaxPool2D(input *RawTensor, kernelSize, stride int) *RawTensor

	// Name returns the backend name.
	Name() string

	// Device returns the compute device.
	Device() Device
}
