//go:build windows

package screen

import (
	"sync"
	"syscall"

	"github.com/go-vgo/robotgo"
	"github.com/zoeyai/diffroll/internal/logger"
	"github.com/zoeyai/diffroll/pkg/auto"
)

var (
	coordMu       sync.Mutex
	coordScaleX   float64
	coordScaleY   float64
	coordDetected bool
)

// DPI 相关
var (
	user32DPI              = syscall.NewLazyDLL("user32.dll")
	gdi32DPI               = syscall.NewLazyDLL("gdi32.dll")
	procGetDpiForWindowDPI = user32DPI.NewProc("GetDpiForWindow")
	procGetDeviceCapsDPI   = gdi32DPI.NewProc("GetDeviceCaps")
	procGetDCDPI           = user32DPI.NewProc("GetDC")
	procReleaseDCDPI       = user32DPI.NewProc("ReleaseDC")
	procGetForegroundDPI   = user32DPI.NewProc("GetForegroundWindow")
)

const logpixelsX = 88

// GetDPIScale 获取 Windows DPI 缩放比例，1.0 = 100%
func GetDPIScale() float64 {
	var dpi int

	if procGetDpiForWindowDPI.Find() == nil {
		if hwnd, _, _ := procGetForegroundDPI.Call(); hwnd != 0 {
			if d, _, _ := procGetDpiForWindowDPI.Call(hwnd); d > 0 {
				dpi = int(d)
			}
		}
	}

	if dpi == 0 && procGetDCDPI.Find() == nil && procGetDeviceCapsDPI.Find() == nil {
		if dc, _, _ := procGetDCDPI.Call(0); dc != 0 {
			if d, _, _ := procGetDeviceCapsDPI.Call(dc, uintptr(logpixelsX)); d > 0 {
				dpi = int(d)
			}
			procReleaseDCDPI.Call(0, dc)
		}
	}

	if dpi <= 0 {
		return 1.0
	}
	scale := float64(dpi) / 96.0
	if scale < 0.5 || scale > 4.0 {
		return 1.0
	}
	return scale
}

// coordScale 截图像素与 robotgo 输入坐标的比例，首次调用时检测
func coordScale() (float64, float64) {
	coordMu.Lock()
	defer coordMu.Unlock()

	if coordDetected {
		return coordScaleX, coordScaleY
	}

	rw, rh := robotgo.GetScreenSize()
	img, err := robotgo.CaptureImg()
	if err != nil || img == nil {
		// 截图失败，用 DPI 兜底
		s := GetDPIScale()
		coordScaleX, coordScaleY = s, s
	} else {
		coordScaleX, coordScaleY = auto.DetectCoordScale(img.Bounds().Dx(), img.Bounds().Dy(), rw, rh)
	}
	coordDetected = true

	logger.Named("coords").Debug("DPI=%.0f%% robotgo_screen=%dx%d coordScale=(%.3f, %.3f)",
		GetDPIScale()*100, rw, rh, coordScaleX, coordScaleY)
	return coordScaleX, coordScaleY
}

// GetPhysicalScreenSize 物理屏幕尺寸（与截图分辨率一致）
func GetPhysicalScreenSize() (int, int) {
	w, h := robotgo.GetScreenSize()
	sx, sy := coordScale()
	return auto.ScaleInt(w, sx), auto.ScaleInt(h, sy)
}

// NormalizePointForInput 截图坐标转换为 robotgo 输入坐标
func NormalizePointForInput(x, y int) (int, int) {
	sx, sy := coordScale()
	p := auto.ToInput(auto.Point{X: x, Y: y}, sx, sy)
	return p.X, p.Y
}
