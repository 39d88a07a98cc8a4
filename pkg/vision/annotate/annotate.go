// Package annotate 在截图上标注识别区域并保存，用于排查未识别的界面
package annotate

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Mark 一个待标注的区域
type Mark struct {
	Rect  image.Rectangle
	Label string
	Hit   bool
}

var (
	hitColor  = color.RGBA{0, 255, 0, 255}
	missColor = color.RGBA{255, 0, 0, 255}
)

const fontSize = 14

var (
	fontOnce   sync.Once
	parsedFont *truetype.Font
)

func loadFont() *truetype.Font {
	fontOnce.Do(func() {
		f, err := freetype.ParseFont(goregular.TTF)
		if err == nil {
			parsedFont = f
		}
	})
	return parsedFont
}

// Annotate 复制截图并绘制区域边框与标签
func Annotate(frame image.Image, marks []Mark) *image.RGBA {
	b := frame.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), frame, b.Min, draw.Src)

	for _, m := range marks {
		col := missColor
		if m.Hit {
			col = hitColor
		}
		r := m.Rect.Sub(b.Min).Intersect(out.Bounds())
		if r.Empty() {
			continue
		}
		drawBox(out, r, col)
		if m.Label != "" {
			drawText(out, r.Min.X, r.Max.Y+2, m.Label, col)
		}
	}
	return out
}

func drawBox(img *image.RGBA, r image.Rectangle, col color.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, col)
		img.Set(x, r.Max.Y-1, col)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, col)
		img.Set(r.Max.X-1, y, col)
	}
}

func drawText(img *image.RGBA, x, y int, text string, col color.Color) {
	f := loadFont()
	if f == nil {
		return
	}

	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(f)
	c.SetFontSize(fontSize)
	c.SetClip(img.Bounds())
	c.SetDst(img)
	c.SetSrc(image.NewUniform(col))
	c.SetHinting(font.HintingFull)

	pt := freetype.Pt(x, y+int(c.PointToFixed(fontSize)>>6))
	_, _ = c.DrawString(text, pt)
}

// Dumper 将标注后的截图写入目录，文件名带序号保证不覆盖
type Dumper struct {
	dir string

	mu  sync.Mutex
	seq int
}

// NewDumper 创建 Dumper，dir 为空时返回 nil
func NewDumper(dir string) *Dumper {
	if dir == "" {
		return nil
	}
	return &Dumper{dir: dir}
}

// Dump 标注并保存为 PNG，返回文件路径
func (d *Dumper) Dump(prefix string, frame image.Image, marks []Mark) (string, error) {
	if d == nil {
		return "", nil
	}
	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return "", fmt.Errorf("创建调试目录失败: %w", err)
	}

	d.mu.Lock()
	d.seq++
	seq := d.seq
	d.mu.Unlock()

	name := fmt.Sprintf("%s_%s_%03d.png", prefix, time.Now().Format("150405"), seq)
	path := filepath.Join(d.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("创建调试截图失败: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, Annotate(frame, marks)); err != nil {
		return "", fmt.Errorf("保存调试截图失败: %w", err)
	}
	return path, nil
}
