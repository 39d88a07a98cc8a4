package cv

import (
	"image"
	"image/color"
	"testing"
)

func gradient(w, h int, invert bool) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8((x*7 + y*13) % 256)
			if invert {
				v = 255 - v
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

func TestScoreIdentical(t *testing.T) {
	a := gradient(40, 20, false)
	got := CcoeffScorer{}.Score(a, a)
	if got < 0.999 {
		t.Errorf("相同图像置信度应接近 1, 实际 %.4f", got)
	}
}

func TestScoreInverted(t *testing.T) {
	got := CcoeffScorer{}.Score(gradient(40, 20, false), gradient(40, 20, true))
	if got > -0.999 {
		t.Errorf("反相图像置信度应接近 -1, 实际 %.4f", got)
	}
}

// TestScoreSizeMismatch 尺寸不一致时返回 -1，与内容无关
func TestScoreSizeMismatch(t *testing.T) {
	a := gradient(40, 20, false)
	for _, b := range []*image.Gray{gradient(41, 20, false), gradient(40, 19, false), gradient(20, 40, false)} {
		if got := (CcoeffScorer{}).Score(a, b); got != SizeMismatch {
			t.Errorf("尺寸 %v vs %v 应返回 -1, 实际 %.4f", a.Bounds().Size(), b.Bounds().Size(), got)
		}
	}
}
