package cv

import (
	"image"

	"gocv.io/x/gocv"
)

// SizeMismatch 尺寸不一致时的置信度
const SizeMismatch = -1.0

// CcoeffScorer 使用 gocv 计算灰度图置信度
type CcoeffScorer struct{}

// Score 计算两张同尺寸灰度图的置信度，范围 [-1, 1]
func (CcoeffScorer) Score(crop, template *image.Gray) float64 {
	if crop.Bounds().Size() != template.Bounds().Size() {
		return SizeMismatch
	}

	src, err := gocv.ImageGrayToMatGray(crop)
	if err != nil {
		return SizeMismatch
	}
	defer src.Close()

	search, err := gocv.ImageGrayToMatGray(template)
	if err != nil {
		return SizeMismatch
	}
	defer search.Close()

	return CalCcoeffConfidence(src, search)
}

// CalCcoeffConfidence 使用 TM_CCOEFF_NORMED 计算置信度
func CalCcoeffConfidence(imgSource, imgSearch gocv.Mat) float64 {
	if imgSource.Rows() != imgSearch.Rows() || imgSource.Cols() != imgSearch.Cols() {
		return SizeMismatch
	}

	// 转为灰度图
	srcGray := ToGray(imgSource)
	searchGray := ToGray(imgSearch)
	defer srcGray.Close()
	defer searchGray.Close()

	result := gocv.NewMat()
	defer result.Close()
	mask := gocv.NewMat()
	defer mask.Close()

	gocv.MatchTemplate(srcGray, searchGray, &result, gocv.TmCcoeffNormed, mask)

	// 同尺寸时结果矩阵只有一个元素
	_, maxVal, _, _ := gocv.MinMaxLoc(result)
	return float64(maxVal)
}

// ToGray 转换为灰度图
func ToGray(src gocv.Mat) gocv.Mat {
	if src.Channels() == 1 {
		return src.Clone()
	}
	dst := gocv.NewMat()
	gocv.CvtColor(src, &dst, gocv.ColorBGRToGray)
	return dst
}
