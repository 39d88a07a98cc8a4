//go:build !windows

package screen

import "github.com/go-vgo/robotgo"

// GetDPIScale 非 Windows 平台返回 1.0
func GetDPIScale() float64 {
	return 1.0
}

// GetPhysicalScreenSize 非 Windows 平台等同于 robotgo.GetScreenSize()
func GetPhysicalScreenSize() (int, int) {
	return robotgo.GetScreenSize()
}

// NormalizePointForInput 非 Windows 平台无需转换
func NormalizePointForInput(x, y int) (int, int) {
	return x, y
}
