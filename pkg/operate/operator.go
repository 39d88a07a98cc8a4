// Package operate 根据识别到的界面执行点击、按键或选项选择
package operate

import (
	"context"
	"fmt"
	"time"

	"github.com/zoeyai/diffroll/internal/logger"
	"github.com/zoeyai/diffroll/pkg/auto"
	"github.com/zoeyai/diffroll/pkg/game"
	"github.com/zoeyai/diffroll/pkg/recognize"
)

// DefaultOption 未找到目标时选择默认选项的返回值
const DefaultOption = "opt_default"

// MaxRolls 金血祝颂界面每次最多重投次数
const MaxRolls = 1

// Input 鼠标键盘
type Input interface {
	Click(ctx context.Context, x, y int) error
	KeyPress(ctx context.Context, key string) error
}

// OptionMatcher 在当前选择界面中查找目标选项
type OptionMatcher interface {
	MatchPrefix(ctx context.Context, prefix string) (recognize.Result, error)
}

// Config 操作参数
type Config struct {
	Targets    game.Targets
	Scaler     auto.Scaler
	DismissKey string

	BoonAnimation   time.Duration
	SelectToConfirm time.Duration
	RollAnimation   time.Duration
}

// Operator 按界面分派操作
type Operator struct {
	input   Input
	options OptionMatcher
	tracker *Tracker
	cfg     Config
	log     *logger.Logger

	sleep func(ctx context.Context, d time.Duration) error
}

// New 创建操作器
func New(input Input, options OptionMatcher, cfg Config) *Operator {
	if cfg.DismissKey == "" {
		cfg.DismissKey = "esc"
	}
	if cfg.Scaler == (auto.Scaler{}) {
		cfg.Scaler = auto.Identity
	}
	return &Operator{
		input:   input,
		options: options,
		tracker: NewTracker(),
		cfg:     cfg,
		log:     logger.Named("operate"),
		sleep:   auto.Sleep,
	}
}

// Tracker 目标完成记录
func (o *Operator) Tracker() *Tracker { return o.tracker }

type action int

const (
	actionNone action = iota
	actionClick
	actionSelect
	actionDismiss
	actionReset
)

func actionFor(id game.InterfaceID) action {
	switch id {
	case game.StartGame, game.SelectConv, game.ConvCalculus, game.RunCalculus,
		game.RestartGame, game.Hint, game.Exit:
		return actionClick
	case game.SelectGoldenBloodsBoon, game.SelectEquation, game.SelectOddity,
		game.SelectBlessing, game.SelectWeightedCurio:
		return actionSelect
	case game.ConfirmEquation, game.ConfirmBlessing:
		return actionDismiss
	case game.InGame:
		return actionReset
	}
	return actionNone
}

// Operate 执行界面对应的操作，返回执行后的目标完成状态
func (o *Operator) Operate(ctx context.Context, id game.InterfaceID) (Status, error) {
	switch actionFor(id) {
	case actionClick:
		rect, _ := game.InterfaceRect(id)
		p, err := o.clickRect(ctx, rect)
		if err != nil {
			return StatusPending, err
		}
		o.log.Info("点击位置: (%d, %d)", p.X, p.Y)
		return StatusPending, nil

	case actionSelect:
		o.log.Info("选择中...")
		_, status, err := o.Select(ctx, id)
		return status, err

	case actionDismiss:
		return StatusPending, o.dismiss(ctx)

	case actionReset:
		status := o.tracker.Update(game.InGame)
		return status, o.dismiss(ctx)
	}

	if id == game.Unmatched {
		o.log.Info("未识别界面, 不操作")
	} else {
		o.log.Warn("异常界面 ID: %s", id)
	}
	return StatusPending, nil
}

// Select 在选择界面中查找目标选项
//
// 找到目标时点击并确认，更新目标记录；金血祝颂界面找不到时重投一次再找；
// 仍找不到或没有目标的界面选择默认选项，不计入目标。
func (o *Operator) Select(ctx context.Context, id game.InterfaceID) (string, Status, error) {
	if o.cfg.Targets[id] != "" {
		if id == game.SelectGoldenBloodsBoon {
			if err := o.sleep(ctx, o.cfg.BoonAnimation); err != nil {
				return "", StatusPending, err
			}
		}

		for rolls := 0; ; rolls++ {
			res, err := o.options.MatchPrefix(ctx, game.OptionPrefix(id))
			if err != nil {
				return "", StatusPending, fmt.Errorf("匹配选项失败: %w", err)
			}
			if res.Matched() {
				return o.pick(ctx, id, res)
			}
			if id != game.SelectGoldenBloodsBoon || rolls >= MaxRolls {
				break
			}
			if err := o.roll(ctx); err != nil {
				return "", StatusPending, err
			}
		}
	}

	o.log.Info("选择默认选项并确认")
	if err := o.confirm(ctx, id, o.cfg.Scaler.Point(game.Default)); err != nil {
		return "", StatusPending, err
	}
	return DefaultOption, o.tracker.Status(), nil
}

func (o *Operator) pick(ctx context.Context, id game.InterfaceID, res recognize.Result) (string, Status, error) {
	rect, ok := game.OptionRect(res.ID)
	if !ok {
		return "", StatusPending, fmt.Errorf("未知选项: %s", res.ID)
	}
	o.log.Info("选择目标选项 [%s] (置信度 %.4f) 并确认", res.ID, res.Confidence)

	center := o.cfg.Scaler.Rect(rect).Center()
	if err := o.confirm(ctx, id, center); err != nil {
		return "", StatusPending, err
	}
	status := o.tracker.Update(id)
	if status == StatusAchieved {
		o.log.Info("目标 %s 已达成", o.cfg.Targets)
	}
	return res.ID, status, nil
}

// confirm 点击 p（已缩放），等待后点击该界面的确认按钮
func (o *Operator) confirm(ctx context.Context, id game.InterfaceID, p auto.Point) error {
	if err := o.input.Click(ctx, p.X, p.Y); err != nil {
		return err
	}
	if err := o.sleep(ctx, o.cfg.SelectToConfirm); err != nil {
		return err
	}
	btn, ok := game.Confirm[id]
	if !ok {
		return fmt.Errorf("界面 %s 没有确认按钮", id)
	}
	_, err := o.clickPoint(ctx, btn)
	return err
}

func (o *Operator) roll(ctx context.Context) error {
	o.log.Info("重投金血祝颂")
	if _, err := o.clickPoint(ctx, game.Roll); err != nil {
		return err
	}
	o.log.Info("等待 %s 重投动画", o.cfg.RollAnimation)
	return o.sleep(ctx, o.cfg.RollAnimation)
}

func (o *Operator) dismiss(ctx context.Context) error {
	if err := o.input.KeyPress(ctx, o.cfg.DismissKey); err != nil {
		return err
	}
	o.log.Info("按键: %s", o.cfg.DismissKey)
	return nil
}

// clickRect 点击参考区域缩放后的中心
func (o *Operator) clickRect(ctx context.Context, r auto.Rect) (auto.Point, error) {
	p := o.cfg.Scaler.Rect(r).Center()
	return p, o.input.Click(ctx, p.X, p.Y)
}

// clickPoint 点击参考坐标缩放后的位置
func (o *Operator) clickPoint(ctx context.Context, ref auto.Point) (auto.Point, error) {
	p := o.cfg.Scaler.Point(ref)
	return p, o.input.Click(ctx, p.X, p.Y)
}
