package annotate

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
	"testing"
)

func grayFrame(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 100
	}
	return img
}

func TestAnnotateDrawsBorder(t *testing.T) {
	frame := grayFrame(100, 80)
	out := Annotate(frame, []Mark{
		{Rect: image.Rect(10, 10, 40, 30), Label: "in_game", Hit: true},
		{Rect: image.Rect(50, 10, 90, 30)},
	})

	if out.Bounds() != frame.Bounds() {
		t.Fatalf("尺寸应保持不变: %v", out.Bounds())
	}
	if got := out.RGBAAt(10, 10); got != hitColor {
		t.Errorf("命中区域边框应为绿色, 实际 %v", got)
	}
	if got := out.RGBAAt(50, 10); got != missColor {
		t.Errorf("未命中区域边框应为红色, 实际 %v", got)
	}
	if got := out.RGBAAt(25, 20); got != (color.RGBA{100, 100, 100, 255}) {
		t.Errorf("区域内部不应被修改, 实际 %v", got)
	}
}

func TestAnnotateClipsOutside(t *testing.T) {
	out := Annotate(grayFrame(20, 20), []Mark{{Rect: image.Rect(100, 100, 200, 200)}})
	if out.Bounds().Dx() != 20 {
		t.Errorf("越界区域不应影响输出尺寸")
	}
}

func TestDumperWritesPNG(t *testing.T) {
	dir := t.TempDir()
	d := NewDumper(dir)

	p1, err := d.Dump("unmatched", grayFrame(30, 30), nil)
	if err != nil {
		t.Fatalf("保存失败: %v", err)
	}
	p2, err := d.Dump("unmatched", grayFrame(30, 30), nil)
	if err != nil {
		t.Fatalf("保存失败: %v", err)
	}
	if p1 == p2 {
		t.Errorf("连续保存不应覆盖: %s", p1)
	}
	if !strings.HasPrefix(p1, dir) {
		t.Errorf("文件应保存在 %s 下: %s", dir, p1)
	}

	f, err := os.Open(p1)
	if err != nil {
		t.Fatalf("打开失败: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("应为有效 PNG: %v", err)
	}
	if img.Bounds().Dx() != 30 {
		t.Errorf("尺寸错误: %v", img.Bounds())
	}
}

func TestNilDumper(t *testing.T) {
	d := NewDumper("")
	if d != nil {
		t.Fatal("空目录应返回 nil")
	}
	path, err := d.Dump("x", grayFrame(1, 1), nil)
	if path != "" || err != nil {
		t.Errorf("nil Dumper 应为空操作: %q %v", path, err)
	}
}
