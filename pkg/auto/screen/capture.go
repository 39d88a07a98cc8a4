// Package screen 提供屏幕截图功能
package screen

import (
	"fmt"
	"image"

	"github.com/go-vgo/robotgo"
	"github.com/kbinani/screenshot"
)

// Capturer 截图器
type Capturer interface {
	// Capture 截取一帧完整屏幕
	Capture() (image.Image, error)
	// Size 截图的像素尺寸
	Size() (width, height int)
	// Origin 截图左上角在虚拟桌面上的位置（截图像素）
	Origin() image.Point
}

// RobotgoCapturer 使用 robotgo 截取主屏幕
type RobotgoCapturer struct{}

// Capture 截取全屏
func (RobotgoCapturer) Capture() (image.Image, error) {
	img, err := robotgo.CaptureImg()
	if err != nil {
		return nil, fmt.Errorf("截屏失败: %w", err)
	}
	return img, nil
}

// Size 物理屏幕尺寸，与截图一致
func (RobotgoCapturer) Size() (int, int) {
	return GetPhysicalScreenSize()
}

// Origin 主屏幕位于虚拟桌面原点
func (RobotgoCapturer) Origin() image.Point {
	return image.Point{}
}

// DisplayCapturer 使用 kbinani/screenshot 截取指定显示器
type DisplayCapturer struct {
	Display int
}

// Capture 截取显示器，返回图像坐标从 (0,0) 开始
func (c DisplayCapturer) Capture() (image.Image, error) {
	if n := screenshot.NumActiveDisplays(); c.Display >= n {
		return nil, fmt.Errorf("显示器 %d 不存在 (共 %d 个)", c.Display, n)
	}
	img, err := screenshot.CaptureDisplay(c.Display)
	if err != nil {
		return nil, fmt.Errorf("截取显示器 %d 失败: %w", c.Display, err)
	}
	return img, nil
}

// Size 显示器分辨率
func (c DisplayCapturer) Size() (int, int) {
	b := screenshot.GetDisplayBounds(c.Display)
	return b.Dx(), b.Dy()
}

// Origin 显示器在虚拟桌面上的左上角
func (c DisplayCapturer) Origin() image.Point {
	return screenshot.GetDisplayBounds(c.Display).Min
}

// New 按后端名称创建截图器
func New(backend string, display int) (Capturer, error) {
	switch backend {
	case "", "robotgo":
		return RobotgoCapturer{}, nil
	case "screenshot":
		return DisplayCapturer{Display: display}, nil
	default:
		return nil, fmt.Errorf("不支持的截图后端: %s", backend)
	}
}

// GetDisplayCount 获取显示器数量
func GetDisplayCount() int {
	return screenshot.NumActiveDisplays()
}
