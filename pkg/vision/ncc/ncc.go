// Package ncc 提供纯 Go 的归一化互相关置信度计算，不依赖 OpenCV
package ncc

import (
	"image"
	"math"

	"gonum.org/v1/gonum/stat"
)

// SizeMismatch 尺寸不一致时的置信度
const SizeMismatch = -1.0

// Scorer 基于 gonum 的皮尔逊相关系数，与 TM_CCOEFF_NORMED 在同尺寸图像上等价
type Scorer struct{}

// Score 计算两张同尺寸灰度图的置信度，范围 [-1, 1]
// 任一图像方差为 0 时返回 0
func (Scorer) Score(crop, template *image.Gray) float64 {
	if crop.Bounds().Size() != template.Bounds().Size() {
		return SizeMismatch
	}
	if crop.Bounds().Empty() {
		return 0
	}

	r := stat.Correlation(pixels(crop), pixels(template), nil)
	switch {
	case math.IsNaN(r), math.IsInf(r, 0):
		return 0
	case r > 1:
		return 1
	case r < -1:
		return -1
	}
	return r
}

// pixels 按行展开像素
func pixels(img *image.Gray) []float64 {
	b := img.Bounds()
	out := make([]float64, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for _, v := range row {
			out = append(out, float64(v))
		}
	}
	return out
}
