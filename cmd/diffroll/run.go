package main

import (
	"context"
	"fmt"
	"io"

	"github.com/zoeyai/diffroll/internal/logger"
	"github.com/zoeyai/diffroll/pkg/auto"
	"github.com/zoeyai/diffroll/pkg/auto/input"
	"github.com/zoeyai/diffroll/pkg/auto/screen"
	"github.com/zoeyai/diffroll/pkg/auto/window"
	"github.com/zoeyai/diffroll/pkg/config"
	"github.com/zoeyai/diffroll/pkg/game"
	"github.com/zoeyai/diffroll/pkg/operate"
	"github.com/zoeyai/diffroll/pkg/recognize"
	"github.com/zoeyai/diffroll/pkg/runner"
	"github.com/zoeyai/diffroll/pkg/vision/annotate"
	"github.com/zoeyai/diffroll/pkg/vision/cv"
	"github.com/zoeyai/diffroll/pkg/vision/ncc"
)

// setupLogger 控制台按配置级别输出，文件记录全部 DEBUG 日志
func setupLogger(cfg *config.Config) {
	l := logger.Default()
	l.SetLevel(logger.ParseLevel(cfg.LogLevel))
	l.SetFileLevel(logger.DEBUG)
	if err := l.SetFile(cfg.LogFile); err != nil {
		l.Warn("%v", err)
	}
}

func newScorer(name string) recognize.Scorer {
	if name == config.ScorerGonum {
		return ncc.Scorer{}
	}
	return cv.CcoeffScorer{}
}

// run 查找窗口 -> 设置目标 -> 加载模板 -> 激活窗口 -> 主循环
func run(ctx context.Context, cfg *config.Config, opts *options, in io.Reader, out io.Writer) error {
	setupLogger(cfg)
	defer logger.Default().Sync()
	log := logger.Named("main")

	win, err := window.Find(cfg.WindowTitle, cfg.ProcessName)
	if err != nil {
		return err
	}
	log.Debug("找到窗口: %s (pid %d, %s)", win.Title, win.PID, win.ProcessName)

	targets, err := readTargets(ctx, in, out, opts.boon, opts.equation, cfg.Homophones)
	if err != nil {
		return err
	}
	if err := targets.Validate(); err != nil {
		return err
	}
	log.Info("目标组合: %s", targets)

	capturer, err := screen.New(cfg.Capture, cfg.Display)
	if err != nil {
		return err
	}
	// 点击坐标与识别区域一样按截图的物理像素缩放，由输入设备再转换为输入坐标
	frame, err := capturer.Capture()
	if err != nil {
		return fmt.Errorf("截图失败: %w", err)
	}
	bounds := frame.Bounds()
	scaler := auto.NewScaler(bounds.Dx(), bounds.Dy())
	w, h := capturer.Size()
	log.Debug("截图 %dx%d (屏幕 %dx%d, 原点 %v), 缩放系数 (%.4f, %.4f)",
		bounds.Dx(), bounds.Dy(), w, h, capturer.Origin(), scaler.X, scaler.Y)
	scorer := newScorer(cfg.Scorer)

	interfaces, err := recognize.New(
		recognize.NewStore(cfg.InterfaceTemplateDir),
		game.RecognizeRegions(), capturer, scorer,
		recognize.WithThreshold(cfg.InterfaceThreshold),
		recognize.WithLogger(logger.Named("interface")),
	)
	if err != nil {
		return err
	}
	optionMatcher, err := recognize.New(
		recognize.NewStore(cfg.OptionTemplateDir),
		game.OptionRecognizeRegions(targets), capturer, scorer,
		recognize.WithThreshold(cfg.OptionThreshold),
		recognize.WithLogger(logger.Named("option")),
	)
	if err != nil {
		return err
	}

	if err := window.Activate(win.PID); err != nil {
		log.Warn("%v", err)
	}
	if err := auto.Sleep(ctx, cfg.ActivateWait); err != nil {
		return err
	}

	op := operate.New(input.NewDevice(cfg.HoldTime, input.WithOrigin(capturer.Origin())), optionMatcher, operate.Config{
		Targets:         targets,
		Scaler:          scaler,
		DismissKey:      cfg.DismissKey,
		BoonAnimation:   cfg.BoonAnimation,
		SelectToConfirm: cfg.SelectToConfirmWait,
		RollAnimation:   cfg.RollAnimation,
	})

	r := runner.New(interfaces, op, runner.Config{
		MaxAttempts: cfg.MaxAttempts,
		Interval:    cfg.MonitorInterval,
	}, runner.WithDumper(annotate.NewDumper(cfg.DebugDir)))

	err = r.Run(ctx)
	log.Info("目标完成记录: %s", formatSelection(targets, op.Tracker().Selection()))
	return err
}

func formatSelection(targets game.Targets, sel [len(game.Goals)]bool) string {
	s := ""
	for i, g := range game.Goals {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s=%v", targets[g], sel[i])
	}
	return s
}
