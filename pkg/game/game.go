// Package game 描述差分宇宙界面布局：界面 ID、特征区域、按钮坐标
//
// 所有坐标基于 1920x1080 参考分辨率，运行时由 auto.Scaler 缩放。
package game

import (
	"fmt"

	"github.com/zoeyai/diffroll/pkg/auto"
	"github.com/zoeyai/diffroll/pkg/recognize"
)

// InterfaceID 界面 ID
type InterfaceID int

const (
	Unmatched InterfaceID = iota
	StartGame
	SelectConv
	ConvCalculus
	RunCalculus
	SelectGoldenBloodsBoon
	SelectEquation
	SelectOddity
	SelectBlessing
	SelectWeightedCurio
	ConfirmEquation
	ConfirmBlessing
	InGame
	RestartGame
	Hint
	Exit

	numInterfaces
)

// 新增界面时需要同步更新 names、InterfaceRegions 以及 operate 中的分派
var (
	_ [numInterfaces - 16]struct{}
	_ [16 - numInterfaces]struct{}
)

var names = [numInterfaces]string{
	Unmatched:              recognize.Unmatched,
	StartGame:              "start_game",
	SelectConv:             "select_conv",
	ConvCalculus:           "conv_calculus",
	RunCalculus:            "run_calculus",
	SelectGoldenBloodsBoon: "select_golden_bloods_boon",
	SelectEquation:         "select_equation",
	SelectOddity:           "select_oddity",
	SelectBlessing:         "select_blessing",
	SelectWeightedCurio:    "select_weighted_curio",
	ConfirmEquation:        "confirm_equation",
	ConfirmBlessing:        "confirm_blessing",
	InGame:                 "in_game",
	RestartGame:            "restart_game",
	Hint:                   "hint",
	Exit:                   "exit",
}

func (id InterfaceID) String() string {
	if id < 0 || id >= numInterfaces {
		return fmt.Sprintf("InterfaceID(%d)", int(id))
	}
	return names[id]
}

// ParseInterfaceID 由名称解析界面 ID，未知名称返回 Unmatched
func ParseInterfaceID(name string) (InterfaceID, bool) {
	for id, n := range names {
		if n == name {
			return InterfaceID(id), true
		}
	}
	return Unmatched, false
}

// AllInterfaces 除 Unmatched 外的全部界面
func AllInterfaces() []InterfaceID {
	ids := make([]InterfaceID, 0, numInterfaces-1)
	for id := Unmatched + 1; id < numInterfaces; id++ {
		ids = append(ids, id)
	}
	return ids
}

// IsSelection 是否为选择界面
func (id InterfaceID) IsSelection() bool {
	switch id {
	case SelectGoldenBloodsBoon, SelectEquation, SelectOddity, SelectBlessing, SelectWeightedCurio:
		return true
	}
	return false
}

// Goals 参与目标判定的两个选择界面，顺序即目标槽位
var Goals = [2]InterfaceID{SelectGoldenBloodsBoon, SelectEquation}

// InterfaceRegion 界面特征区域
type InterfaceRegion struct {
	ID   InterfaceID
	Rect auto.Rect
}

// InterfaceRegions 界面特征区域，按优先级排列，第一个超过阈值的胜出
// 顺序影响识别结果，不要调整
var InterfaceRegions = []InterfaceRegion{
	{StartGame, auto.R(1520, 930, 1650, 980)},
	{SelectConv, auto.R(520, 300, 700, 350)},
	{ConvCalculus, auto.R(1600, 950, 1770, 990)},
	{RunCalculus, auto.R(930, 960, 1037, 1010)},
	{SelectGoldenBloodsBoon, auto.R(70, 50, 240, 100)},
	{SelectEquation, auto.R(30, 30, 220, 100)},
	{SelectOddity, auto.R(30, 30, 220, 100)},
	{SelectBlessing, auto.R(30, 30, 220, 100)},
	{SelectWeightedCurio, auto.R(30, 30, 220, 100)},
	{ConfirmEquation, auto.R(870, 980, 1060, 1040)},
	{ConfirmBlessing, auto.R(870, 980, 1060, 1040)},
	{InGame, auto.R(170, 50, 370, 110)},
	{RestartGame, auto.R(1310, 960, 1480, 1000)},
	{Hint, auto.R(1150, 650, 1220, 690)},
	{Exit, auto.R(900, 960, 1040, 1000)},
}

// InterfaceRect 界面特征区域
func InterfaceRect(id InterfaceID) (auto.Rect, bool) {
	for _, r := range InterfaceRegions {
		if r.ID == id {
			return r.Rect, true
		}
	}
	return auto.Rect{}, false
}

// RecognizeRegions 界面识别区域，模板名与界面 ID 相同
func RecognizeRegions() []recognize.Region {
	out := make([]recognize.Region, 0, len(InterfaceRegions))
	for _, r := range InterfaceRegions {
		out = append(out, recognize.Region{ID: r.ID.String(), Rect: r.Rect, Template: r.ID.String()})
	}
	return out
}

// OptionRegion 选项特征区域
type OptionRegion struct {
	Interface InterfaceID
	Index     int
	Rect      auto.Rect
}

// ID 选项 ID，形如 select_equation_2
func (o OptionRegion) ID() string {
	return fmt.Sprintf("%s_%d", o.Interface, o.Index)
}

// OptionRegions 选项特征区域，按优先级排列
var OptionRegions = []OptionRegion{
	{SelectGoldenBloodsBoon, 1, auto.R(289, 810, 647, 836)},
	{SelectGoldenBloodsBoon, 2, auto.R(781, 767, 1139, 793)},
	{SelectGoldenBloodsBoon, 3, auto.R(1273, 810, 1631, 836)},
	{SelectEquation, 1, auto.R(291, 490, 688, 530)},
	{SelectEquation, 2, auto.R(761, 490, 1158, 530)},
	{SelectEquation, 3, auto.R(1232, 490, 1629, 530)},
}

// OptionPrefix 某界面选项 ID 的公共前缀
func OptionPrefix(id InterfaceID) string {
	return id.String() + "_"
}

// OptionRect 由选项 ID 查找区域
func OptionRect(optionID string) (auto.Rect, bool) {
	for _, o := range OptionRegions {
		if o.ID() == optionID {
			return o.Rect, true
		}
	}
	return auto.Rect{}, false
}

// OptionRecognizeRegions 选项识别区域，每个选项的模板名为该界面的目标名称
// 没有目标的界面不生成区域
func OptionRecognizeRegions(targets Targets) []recognize.Region {
	var out []recognize.Region
	for _, o := range OptionRegions {
		name, ok := targets[o.Interface]
		if !ok || name == "" {
			continue
		}
		out = append(out, recognize.Region{ID: o.ID(), Rect: o.Rect, Template: name})
	}
	return out
}

// 按钮坐标
var (
	// Default 选择界面的默认点击位置（屏幕中心）
	Default = auto.Point{X: 960, Y: 540}
	// Roll 金血祝颂界面的重投按钮
	Roll = auto.Point{X: 712, Y: 966}
)

// Confirm 选择界面的确认按钮
var Confirm = map[InterfaceID]auto.Point{
	SelectGoldenBloodsBoon: {X: 1026, Y: 965},
	SelectEquation:         {X: 1709, Y: 973},
	SelectOddity:           {X: 1709, Y: 973},
	SelectBlessing:         {X: 1691, Y: 959},
	SelectWeightedCurio:    {X: 1709, Y: 973},
}
