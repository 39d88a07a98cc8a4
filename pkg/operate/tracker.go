package operate

import (
	"github.com/zoeyai/diffroll/internal/logger"
	"github.com/zoeyai/diffroll/pkg/game"
)

// Status 目标完成状态
type Status int

const (
	// StatusPending 目标尚未全部达成
	StatusPending Status = iota
	// StatusAchieved 两个目标均已达成
	StatusAchieved
)

func (s Status) String() string {
	if s == StatusAchieved {
		return "achieved"
	}
	return "pending"
}

// Tracker 记录两个目标的完成情况
type Tracker struct {
	slots [len(game.Goals)]bool
	log   *logger.Logger
}

// NewTracker 创建目标记录，两个槽位初始均未完成
func NewTracker() *Tracker {
	return &Tracker{log: logger.Named("tracker")}
}

// Update 根据事件更新记录并返回完成状态
//
// in_game 清空全部槽位；目标界面设置对应槽位；其他事件不改变记录。
func (t *Tracker) Update(id game.InterfaceID) Status {
	switch id {
	case game.InGame:
		t.slots = [len(game.Goals)]bool{}
		t.log.Info("未达成目标, 重置目标完成记录")
	default:
		for i, g := range game.Goals {
			if g == id {
				t.slots[i] = true
				t.log.Info("成功选择 [%s] 的目标", id)
			}
		}
	}
	return t.Status()
}

// Status 当前完成状态
func (t *Tracker) Status() Status {
	for _, done := range t.slots {
		if !done {
			return StatusPending
		}
	}
	return StatusAchieved
}

// Selection 各槽位的完成情况，按 game.Goals 顺序
func (t *Tracker) Selection() [len(game.Goals)]bool {
	return t.slots
}
