// Package recognize 截取屏幕并与模板比较，识别当前界面或选项
//
// 区域按列表顺序依次比较，第一个置信度严格大于阈值的区域胜出，
// 即使后面的区域置信度更高。区域坐标按截图实际尺寸缩放，
// 截图是物理像素，与系统报告的逻辑分辨率无关。
package recognize

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/zoeyai/diffroll/internal/logger"
	"github.com/zoeyai/diffroll/pkg/auto"
)

// Unmatched 没有任何区域超过阈值
const Unmatched = "unmatched"

// DefaultThreshold 默认置信度阈值
const DefaultThreshold = 0.9

// Region 特征区域：参考分辨率下的矩形及其对应的模板名
type Region struct {
	ID       string
	Rect     auto.Rect
	Template string
}

// Scorer 计算截图与模板的相似度，尺寸不一致时返回 -1
type Scorer interface {
	Score(crop, template *image.Gray) float64
}

// Capturer 截图来源
type Capturer interface {
	Capture() (image.Image, error)
}

// Score 单个区域的置信度
type Score struct {
	ID         string
	Rect       auto.Rect
	Confidence float64
}

// Result 识别结果
type Result struct {
	// ID 匹配的区域 ID，未匹配时为 Unmatched
	ID string
	// Confidence 匹配区域的置信度，未匹配时为最高置信度
	Confidence float64
	// Scores 已比较区域的置信度，按比较顺序
	Scores []Score
	// Frame 本次使用的截图
	Frame image.Image
}

// Matched 是否匹配成功
func (r Result) Matched() bool { return r.ID != Unmatched }

// Recognizer 区域识别器
type Recognizer struct {
	regions   []Region
	store     *Store
	capturer  Capturer
	scorer    Scorer
	threshold float64
	log       *logger.Logger
}

// Option 识别器选项
type Option func(*Recognizer)

// WithThreshold 设置置信度阈值
func WithThreshold(t float64) Option {
	return func(r *Recognizer) { r.threshold = t }
}

// WithLogger 设置日志
func WithLogger(l *logger.Logger) Option {
	return func(r *Recognizer) { r.log = l }
}

// New 创建识别器并加载所有区域需要的模板
func New(store *Store, regions []Region, capturer Capturer, scorer Scorer, opts ...Option) (*Recognizer, error) {
	r := &Recognizer{
		regions:   append([]Region(nil), regions...),
		store:     store,
		capturer:  capturer,
		scorer:    scorer,
		threshold: DefaultThreshold,
		log:       logger.Named("recognize"),
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, reg := range r.regions {
		if !reg.Rect.Valid() {
			return nil, fmt.Errorf("区域 [%s] 坐标无效: %+v", reg.ID, reg.Rect)
		}
	}

	if err := store.Load(r.Templates()); err != nil {
		return nil, err
	}
	return r, nil
}

// Templates 所有区域引用的模板名（去重，保持顺序）
func (r *Recognizer) Templates() []string {
	seen := make(map[string]bool)
	var names []string
	for _, reg := range r.regions {
		if !seen[reg.Template] {
			seen[reg.Template] = true
			names = append(names, reg.Template)
		}
	}
	return names
}

// Match 截取一帧并按顺序比较全部区域
func (r *Recognizer) Match(ctx context.Context) (Result, error) {
	return r.match(ctx, r.regions)
}

// MatchPrefix 只比较 ID 以 prefix 开头的区域
func (r *Recognizer) MatchPrefix(ctx context.Context, prefix string) (Result, error) {
	var scoped []Region
	for _, reg := range r.regions {
		if strings.HasPrefix(reg.ID, prefix) {
			scoped = append(scoped, reg)
		}
	}
	return r.match(ctx, scoped)
}

func (r *Recognizer) match(ctx context.Context, regions []Region) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{ID: Unmatched}, err
	}

	res := Result{ID: Unmatched, Confidence: -1}
	if len(regions) == 0 {
		return res, nil
	}

	frame, err := r.capturer.Capture()
	if err != nil {
		return res, fmt.Errorf("截图失败: %w", err)
	}
	res.Frame = frame
	bounds := frame.Bounds()
	scaler := auto.NewScaler(bounds.Dx(), bounds.Dy())

	for _, reg := range regions {
		rect := scaler.Rect(reg.Rect)
		confidence := SizeMismatch

		if templ, ok := r.store.Get(reg.Template); ok {
			crop := CropGray(frame, rect.Image().Add(bounds.Min))
			confidence = r.scorer.Score(crop, templ)
		}
		r.log.Debug("区域 [%s] 置信度: %.4f", reg.ID, confidence)
		res.Scores = append(res.Scores, Score{ID: reg.ID, Rect: rect, Confidence: confidence})

		if confidence > r.threshold {
			res.ID = reg.ID
			res.Confidence = confidence
			return res, nil
		}
		if confidence > res.Confidence {
			res.Confidence = confidence
		}
	}
	return res, nil
}

// SizeMismatch 尺寸不一致或模板缺失时的置信度
const SizeMismatch = -1.0
