package cpu

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"

	"github.com/regionet-ml/regionet/internal/parallel"
	"github.com/regionet-ml/regionet/internal/tensor"
)

// ROIMaskPool max-pools a fixed-size grid out of each region of interest.
//
// Input shape:  [batch, channels, height, width]
// Output shape: [numROIs, channels, pooledH, pooledW], plus an Int32 argmax
// tensor of the same shape holding, per cell, the flat row*width+col index
// into the ROI's (batch, channel) feature slice, or -1 for an empty bin.
//
// Per ROI:
//  1. Rescale the rectangle about its center by ROIScale, optionally
//     collapse it to one half (HalfPart), and map each bound to feature
//     coordinates with round(v*SpatialScale + SpatialShift).
//  2. Split the mapped extent (at least one cell per axis) into a
//     pooledH x pooledW grid of real-valued bins.
//  3. For every bin and channel, scan the clamped feature window in
//     row-major order and keep the maximum and its flat index. Cells inside
//     the mask rectangle (MaskScale > 0, rescaled about the same center)
//     contribute 0 to the comparison; the stored feature data is untouched.
//
// The first maximal cell in scan order wins ties. A bin whose clamped
// window is empty, or whose -Inf sentinel is never beaten, yields value 0
// and argmax -1. ROIs and channels are independent; the kernel parallelizes
// over (roi, channel) pairs.
func (cpu *CPUBackend) ROIMaskPool(input *tensor.RawTensor, rois []tensor.ROI, p tensor.ROIPoolParams) (*tensor.RawTensor, *tensor.RawTensor) {
	inputShape := input.Shape()
	if len(inputShape) != 4 {
		panic(fmt.Sprintf("roimaskpool: expected 4D input [N,C,H,W], got %dD", len(inputShape)))
	}
	if p.PooledHeight <= 0 || p.PooledWidth <= 0 {
		panic(fmt.Sprintf("roimaskpool: invalid pooled size %dx%d", p.PooledHeight, p.PooledWidth))
	}

	batch := inputShape[0]
	for i, r := range rois {
		if r.BatchIndex < 0 || r.BatchIndex >= batch {
			panic(fmt.Sprintf("roimaskpool: roi %d batch index %d outside [0, %d)", i, r.BatchIndex, batch))
		}
	}

	outShape := tensor.Shape{len(rois), inputShape[1], p.PooledHeight, p.PooledWidth}
	output, err := tensor.NewRaw(outShape, input.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("roimaskpool: failed to create output: %v", err))
	}
	argmax, err := tensor.NewRaw(outShape, tensor.Int32, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("roimaskpool: failed to create argmax: %v", err))
	}

	switch input.DType() {
	case tensor.Float32:
		roiMaskPoolFloat32(output, argmax, input, rois, p, cpu.par)
	case tensor.Float64:
		roiMaskPoolFloat64(output, argmax, input, rois, p, cpu.par)
	default:
		panic(fmt.Sprintf("roimaskpool: unsupported dtype %v", input.DType()))
	}

	return output, argmax
}

// roiGeomF32 is the feature-space geometry of one ROI, computed once and
// shared by every channel.
type roiGeomF32 struct {
	startW, startH int
	binW, binH     float32
	hasMask        bool
	maskStartW     int
	maskEndW       int
	maskStartH     int
	maskEndH       int
}

func roiGeometryFloat32(r tensor.ROI, p tensor.ROIPoolParams) roiGeomF32 {
	scale := float32(p.SpatialScale)
	shift := float32(p.SpatialShift)

	x1, y1 := float32(r.X1), float32(r.Y1)
	x2, y2 := float32(r.X2), float32(r.Y2)
	xc := (x1 + x2) / 2
	yc := (y1 + y2) / 2
	w := x2 - x1
	h := y2 - y1

	// Rescale about the center, then keep one half if requested.
	roiScale := float32(p.ROIScale)
	xx1 := xc - w*roiScale/2
	xx2 := xc + w*roiScale/2
	yy1 := yc - h*roiScale/2
	yy2 := yc + h*roiScale/2
	switch p.HalfPart {
	case tensor.HalfLeft:
		xx2 = xc
	case tensor.HalfRight:
		xx1 = xc
	case tensor.HalfTop:
		yy2 = yc
	case tensor.HalfBottom:
		yy1 = yc
	}

	startW := int(math32.Round(xx1*scale + shift))
	startH := int(math32.Round(yy1*scale + shift))
	endW := int(math32.Round(xx2*scale + shift))
	endH := int(math32.Round(yy2*scale + shift))

	g := roiGeomF32{
		startW: startW,
		startH: startH,
		// Mapped extent covers at least one cell per axis.
		binW: float32(max(endW-startW+1, 1)) / float32(p.PooledWidth),
		binH: float32(max(endH-startH+1, 1)) / float32(p.PooledHeight),
	}

	// The mask rectangle rescales the original rectangle, not the
	// half-part-adjusted one.
	maskScale := float32(p.MaskScale)
	if maskScale > 0 {
		g.hasMask = true
		g.maskStartW = int(math32.Round((xc-w*maskScale/2)*scale + shift))
		g.maskEndW = int(math32.Round((xc+w*maskScale/2)*scale + shift))
		g.maskStartH = int(math32.Round((yc-h*maskScale/2)*scale + shift))
		g.maskEndH = int(math32.Round((yc+h*maskScale/2)*scale + shift))
	}
	return g
}

func roiMaskPoolFloat32(output, argmax, input *tensor.RawTensor, rois []tensor.ROI, p tensor.ROIPoolParams, par parallel.Config) {
	inputData := input.AsFloat32()
	outData := output.AsFloat32()
	argData := argmax.AsInt32()

	shape := input.Shape()
	C, H, W := shape[1], shape[2], shape[3]
	pooledH, pooledW := p.PooledHeight, p.PooledWidth

	geoms := make([]roiGeomF32, len(rois))
	for i, r := range rois {
		geoms[i] = roiGeometryFloat32(r, p)
	}

	parallel.ForPairs(len(rois), C, func(n, c int) {
		g := geoms[n]

		// Pre-slice channel plane: eliminates (b*C+c)*H*W bounds check
		channelOffset := (rois[n].BatchIndex*C + c) * H * W
		channelData := inputData[channelOffset : channelOffset+H*W]
		outOffset := (n*C + c) * pooledH * pooledW

		for ph := 0; ph < pooledH; ph++ {
			hstart := min(max(int(math32.Floor(float32(ph)*g.binH))+g.startH, 0), H)
			hend := min(max(int(math32.Ceil(float32(ph+1)*g.binH))+g.startH, 0), H)

			for pw := 0; pw < pooledW; pw++ {
				wstart := min(max(int(math32.Floor(float32(pw)*g.binW))+g.startW, 0), W)
				wend := min(max(int(math32.Ceil(float32(pw+1)*g.binW))+g.startW, 0), W)

				maxVal := math32.Inf(-1)
				maxIdx := int32(-1)

				for h := hstart; h < hend; h++ {
					rowStart := h * W
					rowData := channelData[rowStart : rowStart+W]

					for w := wstart; w < wend; w++ {
						val := rowData[w]
						if g.hasMask && w >= g.maskStartW && w <= g.maskEndW &&
							h >= g.maskStartH && h <= g.maskEndH {
							// Masked cells compete with value 0; the stored
							// feature data is untouched.
							val = 0
						}
						if val > maxVal {
							maxVal = val
							maxIdx = int32(rowStart + w)
						}
					}
				}

				outIdx := outOffset + ph*pooledW + pw
				if maxIdx < 0 {
					// Empty window, or the sentinel was never beaten.
					outData[outIdx] = 0
					argData[outIdx] = -1
				} else {
					outData[outIdx] = maxVal
					argData[outIdx] = maxIdx
				}
			}
		}
	}, par)
}

// roiGeomF64 mirrors roiGeomF32 for float64 feature maps, with the
// geometry computed in float64 precision.
type roiGeomF64 struct {
	startW, startH int
	binW, binH     float64
	hasMask        bool
	maskStartW     int
	maskEndW       int
	maskStartH     int
	maskEndH       int
}

func roiGeometryFloat64(r tensor.ROI, p tensor.ROIPoolParams) roiGeomF64 {
	xc := (r.X1 + r.X2) / 2
	yc := (r.Y1 + r.Y2) / 2
	w := r.X2 - r.X1
	h := r.Y2 - r.Y1

	xx1 := xc - w*p.ROIScale/2
	xx2 := xc + w*p.ROIScale/2
	yy1 := yc - h*p.ROIScale/2
	yy2 := yc + h*p.ROIScale/2
	switch p.HalfPart {
	case tensor.HalfLeft:
		xx2 = xc
	case tensor.HalfRight:
		xx1 = xc
	case tensor.HalfTop:
		yy2 = yc
	case tensor.HalfBottom:
		yy1 = yc
	}

	startW := int(math.Round(xx1*p.SpatialScale + p.SpatialShift))
	startH := int(math.Round(yy1*p.SpatialScale + p.SpatialShift))
	endW := int(math.Round(xx2*p.SpatialScale + p.SpatialShift))
	endH := int(math.Round(yy2*p.SpatialScale + p.SpatialShift))

	g := roiGeomF64{
		startW: startW,
		startH: startH,
		binW:   float64(max(endW-startW+1, 1)) / float64(p.PooledWidth),
		binH:   float64(max(endH-startH+1, 1)) / float64(p.PooledHeight),
	}

	if p.MaskScale > 0 {
		g.hasMask = true
		g.maskStartW = int(math.Round((xc-w*p.MaskScale/2)*p.SpatialScale + p.SpatialShift))
		g.maskEndW = int(math.Round((xc+w*p.MaskScale/2)*p.SpatialScale + p.SpatialShift))
		g.maskStartH = int(math.Round((yc-h*p.MaskScale/2)*p.SpatialScale + p.SpatialShift))
		g.maskEndH = int(math.Round((yc+h*p.MaskScale/2)*p.SpatialScale + p.SpatialShift))
	}
	return g
}

func roiMaskPoolFloat64(output, argmax, input *tensor.RawTensor, rois []tensor.ROI, p tensor.ROIPoolParams, par parallel.Config) {
	inputData := input.AsFloat64()
	outData := output.AsFloat64()
	argData := argmax.AsInt32()

	shape := input.Shape()
	C, H, W := shape[1], shape[2], shape[3]
	pooledH, pooledW := p.PooledHeight, p.PooledWidth

	geoms := make([]roiGeomF64, len(rois))
	for i, r := range rois {
		geoms[i] = roiGeometryFloat64(r, p)
	}

	parallel.ForPairs(len(rois), C, func(n, c int) {
		g := geoms[n]

		channelOffset := (rois[n].BatchIndex*C + c) * H * W
		channelData := inputData[channelOffset : channelOffset+H*W]
		outOffset := (n*C + c) * pooledH * pooledW

		for ph := 0; ph < pooledH; ph++ {
			hstart := min(max(int(math.Floor(float64(ph)*g.binH))+g.startH, 0), H)
			hend := min(max(int(math.Ceil(float64(ph+1)*g.binH))+g.startH, 0), H)

			for pw := 0; pw < pooledW; pw++ {
				wstart := min(max(int(math.Floor(float64(pw)*g.binW))+g.startW, 0), W)
				wend := min(max(int(math.Ceil(float64(pw+1)*g.binW))+g.startW, 0), W)

				maxVal := math.Inf(-1)
				maxIdx := int32(-1)

				for h := hstart; h < hend; h++ {
					rowStart := h * W
					rowData := channelData[rowStart : rowStart+W]

					for w := wstart; w < wend; w++ {
						val := rowData[w]
						if g.hasMask && w >= g.maskStartW && w <= g.maskEndW &&
							h >= g.maskStartH && h <= g.maskEndH {
							val = 0
						}
						if val > maxVal {
							maxVal = val
							maxIdx = int32(rowStart + w)
						}
					}
				}

				outIdx := outOffset + ph*pooledW + pw
				if maxIdx < 0 {
					outData[outIdx] = 0
					argData[outIdx] = -1
				} else {
					outData[outIdx] = maxVal
					argData[outIdx] = maxIdx
				}
			}
		}
	}, par)
}
