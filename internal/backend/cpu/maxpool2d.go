package cpu

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"

	"github.com/regionet-ml/regionet/internal/parallel"
	"github.com/regionet-ml/regionet/internal/tensor"
)

// MaxPool2D performs plain 2D max pooling over the full feature map with a
// square kernel.
//
// Input shape:  [batch, channels, height, width]
// Output shape: [batch, channels, out_height, out_width]
//
// Where:
//
//	out_height = (height - kernelSize) / stride + 1
//	out_width = (width - kernelSize) / stride + 1
//
// An ROI covering the whole feature map with unit scale and no rescaling
// reduces ROIMaskPool to this operation.
func (cpu *CPUBackend) MaxPool2D(input *tensor.RawTensor, kernelSize, stride int) *tensor.RawTensor {
	inputShape := input.Shape()
	if len(inputShape) != 4 {
		panic(fmt.Sprintf("maxpool2d: expected 4D input [N,C,H,W], got %dD", len(inputShape)))
	}
	if kernelSize <= 0 {
		panic(fmt.Sprintf("maxpool2d: invalid kernel size %d", kernelSize))
	}
	if stride <= 0 {
		panic(fmt.Sprintf("maxpool2d: invalid stride %d", stride))
	}

	N, C, H, W := inputShape[0], inputShape[1], inputShape[2], inputShape[3]
	if kernelSize > H || kernelSize > W {
		panic(fmt.Sprintf("maxpool2d: kernel size %d too large for input %dx%d", kernelSize, H, W))
	}

	HOut := (H-kernelSize)/stride + 1
	WOut := (W-kernelSize)/stride + 1

	output, err := tensor.NewRaw(tensor.Shape{N, C, HOut, WOut}, input.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("maxpool2d: failed to create output: %v", err))
	}

	switch input.DType() {
	case tensor.Float32:
		maxPool2DFloat32(output, input, N, C, H, W, HOut, WOut, kernelSize, stride, cpu.par)
	case tensor.Float64:
		maxPool2DFloat64(output, input, N, C, H, W, HOut, WOut, kernelSize, stride, cpu.par)
	default:
		panic(fmt.Sprintf("maxpool2d: unsupported dtype %v", input.DType()))
	}

	return output
}

func maxPool2DFloat32(output, input *tensor.RawTensor, N, C, H, W, HOut, WOut, kernelSize, stride int, par parallel.Config) {
	inputData := input.AsFloat32()
	outputData := output.AsFloat32()

	parallel.ForPairs(N, C, func(n, c int) {
		channelOffset := (n*C + c) * H * W
		channelData := inputData[channelOffset : channelOffset+H*W]
		outOffset := (n*C + c) * HOut * WOut

		for outH := 0; outH < HOut; outH++ {
			hStart := outH * stride

			for outW := 0; outW < WOut; outW++ {
				wStart := outW * stride

				maxVal := math32.Inf(-1)
				for kh := 0; kh < kernelSize; kh++ {
					rowStart := (hStart + kh) * W
					rowData := channelData[rowStart : rowStart+W]

					for kw := 0; kw < kernelSize; kw++ {
						if val := rowData[wStart+kw]; val > maxVal {
							maxVal = val
						}
					}
				}

				outputData[outOffset+outH*WOut+outW] = maxVal
			}
		}
	}, par)
}

func maxPool2DFloat64(output, input *tensor.RawTensor, N, C, H, W, HOut, WOut, kernelSize, stride int, par parallel.Config) {
	inputData := input.AsFloat64()
	outputData := output.AsFloat64()

	parallel.ForPairs(N, C, func(n, c int) {
		channelOffset := (n*C + c) * H * W
		channelData := inputData[channelOffset : channelOffset+H*W]
		outOffset := (n*C + c) * HOut * WOut

		for outH := 0; outH < HOut; outH++ {
			hStart := outH * stride

			for outW := 0; outW < WOut; outW++ {
				wStart := outW * stride

				maxVal := math.Inf(-1)
				for kh := 0; kh < kernelSize; kh++ {
					rowStart := (hStart + kh) * W
					rowData := channelData[rowStart : rowStart+W]

					for kw := 0; kw < kernelSize; kw++ {
						if val := rowData[wStart+kw]; val > maxVal {
							maxVal = val
						}
					}
				}

				outputData[outOffset+outH*WOut+outW] = maxVal
			}
		}
	}, par)
}
