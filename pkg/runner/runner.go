// Package runner 主循环：识别界面 -> 执行操作 -> 等待，直到达成目标或超过尝试次数
package runner

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/zoeyai/diffroll/internal/logger"
	"github.com/zoeyai/diffroll/pkg/auto"
	"github.com/zoeyai/diffroll/pkg/game"
	"github.com/zoeyai/diffroll/pkg/operate"
	"github.com/zoeyai/diffroll/pkg/recognize"
	"github.com/zoeyai/diffroll/pkg/vision/annotate"
)

// Classifier 识别当前界面
type Classifier interface {
	Match(ctx context.Context) (recognize.Result, error)
}

// Dispatcher 执行界面对应的操作
type Dispatcher interface {
	Operate(ctx context.Context, id game.InterfaceID) (operate.Status, error)
}

// Config 循环参数
type Config struct {
	MaxAttempts int
	Interval    time.Duration
}

// Summary 运行统计
type Summary struct {
	Attempts   int
	Iterations int
	// Seen 每个界面被识别到的次数
	Seen map[game.InterfaceID]int
}

func (s Summary) String() string {
	ids := make([]game.InterfaceID, 0, len(s.Seen))
	for id := range s.Seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%s=%d", id, s.Seen[id]))
	}
	return fmt.Sprintf("尝试 %d 次, 循环 %d 次, 界面统计 [%s]", s.Attempts, s.Iterations, strings.Join(parts, " "))
}

// Runner 主循环
type Runner struct {
	classifier Classifier
	dispatcher Dispatcher
	cfg        Config
	dumper     *annotate.Dumper
	log        *logger.Logger

	sleep   func(ctx context.Context, d time.Duration) error
	summary Summary
}

// Option 选项
type Option func(*Runner)

// WithDumper 连续未识别时保存第一帧标注截图
func WithDumper(d *annotate.Dumper) Option {
	return func(r *Runner) { r.dumper = d }
}

// New 创建主循环
func New(classifier Classifier, dispatcher Dispatcher, cfg Config, opts ...Option) *Runner {
	r := &Runner{
		classifier: classifier,
		dispatcher: dispatcher,
		cfg:        cfg,
		log:        logger.Named("runner"),
		sleep:      auto.Sleep,
		summary:    Summary{Seen: make(map[game.InterfaceID]int)},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Summary 运行统计
func (r *Runner) Summary() Summary { return r.summary }

// Run 运行直到达成目标（返回 nil）、超过最大尝试次数（*MaxAttemptsError）、
// ctx 取消或出现其他错误
//
// 每次进入 start_game 界面计为一次尝试，超过上限时在点击前停止。
func (r *Runner) Run(ctx context.Context) (err error) {
	defer func() {
		r.log.Info("运行结束: %s", r.summary)
	}()

	r.log.Info("开始监控, 按 Ctrl+C 中断")
	unmatchedStreak := 0

	for {
		res, err := r.classifier.Match(ctx)
		if err != nil {
			return err
		}
		r.summary.Iterations++

		id, ok := game.ParseInterfaceID(res.ID)
		if !ok {
			r.log.Warn("未知界面 ID: %s", res.ID)
		}
		r.summary.Seen[id]++

		if id == game.Unmatched {
			unmatchedStreak++
			r.log.Info("未识别界面 (最高置信度 %.4f)", res.Confidence)
			if unmatchedStreak == 1 {
				r.dump(res)
			}
		} else {
			unmatchedStreak = 0
			if id == game.StartGame {
				r.summary.Attempts++
				if r.summary.Attempts > r.cfg.MaxAttempts {
					r.summary.Attempts--
					return &MaxAttemptsError{Max: r.cfg.MaxAttempts}
				}
				r.log.Info("开始第 %d 次尝试\n%s", r.summary.Attempts, strings.Repeat("-", 100))
			}
			r.log.Info("当前界面: [%s] (置信度 %.4f)", id, res.Confidence)
		}

		status, err := r.dispatcher.Operate(ctx, id)
		if err != nil {
			return fmt.Errorf("界面 [%s] 操作失败: %w", id, err)
		}
		if status == operate.StatusAchieved {
			return nil
		}

		if err := r.sleep(ctx, r.cfg.Interval); err != nil {
			return err
		}
	}
}

func (r *Runner) dump(res recognize.Result) {
	if r.dumper == nil || res.Frame == nil {
		return
	}

	path, err := r.dumper.Dump("unmatched", res.Frame, marks(res))
	if err != nil {
		r.log.Warn("保存调试截图失败: %v", err)
		return
	}
	r.log.Debug("已保存调试截图: %s", path)
}

// marks 标注全部已比较区域，置信度最高的一个高亮
func marks(res recognize.Result) []annotate.Mark {
	origin := res.Frame.Bounds().Min
	out := make([]annotate.Mark, 0, len(res.Scores))
	best := -1
	for i, s := range res.Scores {
		out = append(out, annotate.Mark{
			Rect:  s.Rect.Image().Add(origin),
			Label: fmt.Sprintf("%s %.2f", s.ID, s.Confidence),
		})
		if s.Confidence > recognize.SizeMismatch && (best < 0 || s.Confidence > res.Scores[best].Confidence) {
			best = i
		}
	}
	if best >= 0 {
		out[best].Hit = true
	}
	return out
}
