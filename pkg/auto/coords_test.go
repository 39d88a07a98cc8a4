package auto

import "testing"

func TestDetectCoordScale(t *testing.T) {
	tests := []struct {
		name           string
		cw, ch, rw, rh int
		wantX, wantY   float64
	}{
		{"150% 缩放", 2880, 1620, 1920, 1080, 1.5, 1.5},
		{"125% 缩放", 2400, 1350, 1920, 1080, 1.25, 1.25},
		{"无缩放", 1920, 1080, 1920, 1080, 1, 1},
		{"接近 1 视为 1", 1930, 1085, 1920, 1080, 1, 1},
		{"报告尺寸无效", 1920, 1080, 0, 0, 1, 1},
		{"比例异常", 19200, 10800, 1920, 1080, 1, 1},
	}
	for _, tt := range tests {
		x, y := DetectCoordScale(tt.cw, tt.ch, tt.rw, tt.rh)
		if x != tt.wantX || y != tt.wantY {
			t.Errorf("%s: 期望 (%.2f, %.2f), 实际 (%.2f, %.2f)", tt.name, tt.wantX, tt.wantY, x, y)
		}
	}
}

func TestToInput(t *testing.T) {
	if got := ToInput(Point{X: 1500, Y: 900}, 1.5, 1.5); got != (Point{X: 1000, Y: 600}) {
		t.Errorf("150%% 缩放转换错误: %v", got)
	}
	if got := ToInput(Point{X: 7, Y: 9}, 0, 1); got != (Point{X: 7, Y: 9}) {
		t.Errorf("无效比例应按 1 处理: %v", got)
	}
}
