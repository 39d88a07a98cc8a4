package recognize

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/zoeyai/diffroll/internal/logger"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// TemplateNotFoundError 模板目录不存在、模板缺失或无法解码
type TemplateNotFoundError struct {
	// Paths 缺失的目录、模板名或无法解码的文件路径
	Paths []string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("模板未找到: %s", strings.Join(e.Paths, ", "))
}

// IsTemplateNotFound 判断是否为模板缺失错误
func IsTemplateNotFound(err error) bool {
	var target *TemplateNotFoundError
	return errors.As(err, &target)
}

// Store 模板库，按文件基本名（不含扩展名）索引灰度模板
type Store struct {
	dir string
	log *logger.Logger

	mu        sync.RWMutex
	templates map[string]*image.Gray
}

// NewStore 创建模板库
func NewStore(dir string) *Store {
	return &Store{
		dir:       dir,
		log:       logger.Named("template"),
		templates: make(map[string]*image.Gray),
	}
}

// Load 加载 required 中列出的模板，目录中的其他文件忽略
// 已加载过全部所需模板时直接返回
func (s *Store) Load(required []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasAll(required) {
		return nil
	}

	info, err := os.Stat(s.dir)
	if err != nil || !info.IsDir() {
		return &TemplateNotFoundError{Paths: []string{s.dir}}
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("读取模板目录失败: %w", err)
	}

	want := make(map[string]bool, len(required))
	for _, name := range required {
		want[name] = true
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if !want[name] {
			continue
		}
		if _, ok := s.templates[name]; ok {
			continue
		}

		path := filepath.Join(s.dir, e.Name())
		s.log.Debug("加载模板 [%s]...", name)
		img, err := LoadGray(path)
		if err != nil {
			s.log.Debug("模板解码失败 %s: %v", path, err)
			return &TemplateNotFoundError{Paths: []string{path}}
		}
		s.templates[name] = img
	}

	var missing []string
	for name := range want {
		if _, ok := s.templates[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &TemplateNotFoundError{Paths: missing}
	}

	s.log.Info("成功加载 %d 个模板", len(s.templates))
	return nil
}

func (s *Store) hasAll(required []string) bool {
	if len(s.templates) == 0 {
		return false
	}
	for _, name := range required {
		if _, ok := s.templates[name]; !ok {
			return false
		}
	}
	return true
}

// Get 获取模板
func (s *Store) Get(name string) (*image.Gray, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	img, ok := s.templates[name]
	return img, ok
}

// Len 已加载模板数量
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.templates)
}

// LoadGray 读取图片文件并转为灰度
func LoadGray(path string) (*image.Gray, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return ToGray(img), nil
}

// ToGray 转为从 (0,0) 开始的灰度图
func ToGray(img image.Image) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return gray
}

// CropGray 截取 rect 区域并转为灰度，rect 使用图像自身坐标
// 超出图像的部分被裁掉，结果尺寸可能小于 rect
func CropGray(img image.Image, rect image.Rectangle) *image.Gray {
	r := rect.Intersect(img.Bounds())
	gray := image.NewGray(image.Rect(0, 0, r.Dx(), r.Dy()))
	if !r.Empty() {
		draw.Draw(gray, gray.Bounds(), img, r.Min, draw.Src)
	}
	return gray
}
