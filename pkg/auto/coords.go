package auto

import "math"

// 坐标空间：
//   1. 截图像素 (physical) 截图与模板匹配在此空间
//   2. robotgo 输入坐标 (input) robotgo.Move 需要的坐标
//
// Windows 开启 DPI 缩放时 robotgo.GetScreenSize() 可能返回逻辑尺寸，
// 而 robotgo.CaptureImg() 始终返回物理像素。通过对比两者检测比例：
//
//	coordScale = 截图尺寸 / GetScreenSize 尺寸
//	输入坐标   = 截图坐标 / coordScale

// DetectCoordScale 由截图尺寸和 robotgo 报告的屏幕尺寸计算坐标比例
func DetectCoordScale(captureW, captureH, reportedW, reportedH int) (float64, float64) {
	if captureW <= 0 || captureH <= 0 || reportedW <= 0 || reportedH <= 0 {
		return 1.0, 1.0
	}
	return normalizeScale(float64(captureW) / float64(reportedW)),
		normalizeScale(float64(captureH) / float64(reportedH))
}

// normalizeScale 过滤异常值，接近 1 时视为 1
func normalizeScale(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 1.0
	}
	if v < 0.5 || v > 4.0 {
		return 1.0
	}
	if math.Abs(v-1.0) < 0.05 {
		return 1.0
	}
	return v
}

// ToInput 截图坐标转换为输入坐标
func ToInput(p Point, scaleX, scaleY float64) Point {
	if scaleX <= 0 {
		scaleX = 1.0
	}
	if scaleY <= 0 {
		scaleY = 1.0
	}
	return Point{X: ScaleInt(p.X, 1.0/scaleX), Y: ScaleInt(p.Y, 1.0/scaleY)}
}
