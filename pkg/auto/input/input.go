// Package input 提供鼠标和键盘操作
//
// 每次按下都保证在返回前释放，包括等待期间被取消的情况。
package input

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/go-vgo/robotgo"
	"github.com/zoeyai/diffroll/pkg/auto/screen"
)

// DefaultHoldTime 默认按住时长
const DefaultHoldTime = 50 * time.Millisecond

// Driver 底层输入原语
type Driver interface {
	Move(x, y int)
	MouseDown() error
	MouseUp() error
	KeyDown(key string) error
	KeyUp(key string) error
}

// robotgoDriver 基于 robotgo 的输入实现
type robotgoDriver struct{}

func (robotgoDriver) Move(x, y int) { robotgo.Move(x, y) }

func (robotgoDriver) MouseDown() error { return robotgo.Toggle("left") }

func (robotgoDriver) MouseUp() error { return robotgo.Toggle("left", "up") }

func (robotgoDriver) KeyDown(key string) error { return robotgo.KeyToggle(key, "down") }

func (robotgoDriver) KeyUp(key string) error { return robotgo.KeyToggle(key, "up") }

// Device 鼠标键盘设备
//
// Click 接收截图坐标：先加上截图原点得到虚拟桌面坐标，再转换为驱动的输入坐标。
type Device struct {
	driver  Driver
	hold    time.Duration
	origin  image.Point
	toInput func(x, y int) (int, int)
}

// Option 设备选项
type Option func(*Device)

// WithOrigin 截图左上角在虚拟桌面上的位置
func WithOrigin(p image.Point) Option {
	return func(d *Device) { d.origin = p }
}

// WithInputMapping 虚拟桌面截图坐标到驱动输入坐标的转换
func WithInputMapping(f func(x, y int) (int, int)) Option {
	return func(d *Device) { d.toInput = f }
}

// NewDevice 创建 robotgo 输入设备，坐标按 DPI 转换为 robotgo 输入坐标
func NewDevice(hold time.Duration, opts ...Option) *Device {
	opts = append([]Option{WithInputMapping(screen.NormalizePointForInput)}, opts...)
	return NewDeviceWithDriver(robotgoDriver{}, hold, opts...)
}

// NewDeviceWithDriver 使用指定驱动创建输入设备，默认不转换坐标
func NewDeviceWithDriver(d Driver, hold time.Duration, opts ...Option) *Device {
	if hold <= 0 {
		hold = DefaultHoldTime
	}
	dev := &Device{
		driver:  d,
		hold:    hold,
		toInput: func(x, y int) (int, int) { return x, y },
	}
	for _, opt := range opts {
		opt(dev)
	}
	return dev
}

// Click 移动到截图坐标 (x, y) 并左键单击：按下 -> 保持 -> 释放
func (d *Device) Click(ctx context.Context, x, y int) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.driver.Move(d.toInput(x+d.origin.X, y+d.origin.Y))
	if err := d.driver.MouseDown(); err != nil {
		return fmt.Errorf("鼠标按下失败: %w", err)
	}
	defer func() {
		if upErr := d.driver.MouseUp(); upErr != nil && err == nil {
			err = fmt.Errorf("鼠标释放失败: %w", upErr)
		}
	}()

	return d.holdFor(ctx)
}

// KeyPress 按键：按下 -> 保持 -> 释放
func (d *Device) KeyPress(ctx context.Context, key string) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := d.driver.KeyDown(key); err != nil {
		return fmt.Errorf("按键 %s 按下失败: %w", key, err)
	}
	defer func() {
		if upErr := d.driver.KeyUp(key); upErr != nil && err == nil {
			err = fmt.Errorf("按键 %s 释放失败: %w", key, upErr)
		}
	}()

	return d.holdFor(ctx)
}

func (d *Device) holdFor(ctx context.Context) error {
	timer := time.NewTimer(d.hold)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
