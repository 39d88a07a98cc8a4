// Package auto 提供 UI 自动化功能的共享类型和工具函数。
// 具体功能分布在子包中：screen, input, window。
package auto

import (
	"context"
	"image"
	"math"
	"time"
)

// 参考分辨率：区域与按钮坐标均按 1920x1080 编写
const (
	ReferenceWidth  = 1920
	ReferenceHeight = 1080
)

// Point 表示二维坐标点
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Rect 表示矩形区域 (x1, y1) - (x2, y2)，右下角不包含
type Rect struct {
	X1 int `json:"x1" yaml:"x1"`
	Y1 int `json:"y1" yaml:"y1"`
	X2 int `json:"x2" yaml:"x2"`
	Y2 int `json:"y2" yaml:"y2"`
}

// R 便捷构造
func R(x1, y1, x2, y2 int) Rect {
	return Rect{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Width 宽度
func (r Rect) Width() int { return r.X2 - r.X1 }

// Height 高度
func (r Rect) Height() int { return r.Y2 - r.Y1 }

// Valid 是否满足 x1<x2 且 y1<y2
func (r Rect) Valid() bool { return r.X1 < r.X2 && r.Y1 < r.Y2 }

// Center 中心点（向下取整）
func (r Rect) Center() Point {
	return Point{X: (r.X1 + r.X2) / 2, Y: (r.Y1 + r.Y2) / 2}
}

// Image 转为 image.Rectangle
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// Scaler 参考分辨率到当前屏幕的缩放系数，启动时计算一次后只读
type Scaler struct {
	X float64
	Y float64
}

// Identity 不缩放
var Identity = Scaler{X: 1, Y: 1}

// NewScaler 根据当前分辨率计算缩放系数
func NewScaler(width, height int) Scaler {
	if width <= 0 || height <= 0 {
		return Identity
	}
	return Scaler{
		X: float64(width) / ReferenceWidth,
		Y: float64(height) / ReferenceHeight,
	}
}

// Point 缩放点坐标，四舍五入
func (s Scaler) Point(p Point) Point {
	return Point{
		X: ScaleInt(p.X, s.X),
		Y: ScaleInt(p.Y, s.Y),
	}
}

// Rect 缩放矩形：左上角按系数缩放，宽高独立缩放后再加到左上角上，
// 保证结果尺寸与缩放后的模板尺寸一致
func (s Scaler) Rect(r Rect) Rect {
	tl := s.Point(Point{X: r.X1, Y: r.Y1})
	w := ScaleInt(r.Width(), s.X)
	h := ScaleInt(r.Height(), s.Y)
	return Rect{X1: tl.X, Y1: tl.Y, X2: tl.X + w, Y2: tl.Y + h}
}

// ScaleInt 缩放整数值
func ScaleInt(value int, factor float64) int {
	return int(math.Round(float64(value) * factor))
}

// Sleep 等待指定时长，ctx 取消时提前返回 ctx.Err()
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
