package operate

import (
	"testing"

	"github.com/zoeyai/diffroll/pkg/game"
)

const (
	boon     = game.SelectGoldenBloodsBoon
	equation = game.SelectEquation
)

func TestTrackerSequences(t *testing.T) {
	tests := []struct {
		name   string
		events []game.InterfaceID
		want   []Status
	}{
		{
			name:   "两个目标依次达成",
			events: []game.InterfaceID{boon, equation},
			want:   []Status{StatusPending, StatusAchieved},
		},
		{
			name:   "顺序无关",
			events: []game.InterfaceID{equation, boon},
			want:   []Status{StatusPending, StatusAchieved},
		},
		{
			name:   "中途重置",
			events: []game.InterfaceID{boon, game.InGame, equation},
			want:   []Status{StatusPending, StatusPending, StatusPending},
		},
		{
			name:   "同一目标重复",
			events: []game.InterfaceID{boon, boon, boon},
			want:   []Status{StatusPending, StatusPending, StatusPending},
		},
		{
			name:   "无关事件",
			events: []game.InterfaceID{boon, game.SelectOddity, game.StartGame, game.Unmatched, equation},
			want:   []Status{StatusPending, StatusPending, StatusPending, StatusPending, StatusAchieved},
		},
		{
			name:   "重置后重新达成",
			events: []game.InterfaceID{equation, game.InGame, boon, equation},
			want:   []Status{StatusPending, StatusPending, StatusPending, StatusAchieved},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker()
			for i, ev := range tt.events {
				if got := tr.Update(ev); got != tt.want[i] {
					t.Errorf("第 %d 个事件 %s: 期望 %s, 实际 %s", i, ev, tt.want[i], got)
				}
			}
		})
	}
}

// TestTrackerResetWins 两个槽位都已设置时，重置仍会清空
func TestTrackerResetWins(t *testing.T) {
	tr := NewTracker()
	tr.slots = [2]bool{true, true}

	if got := tr.Update(game.InGame); got != StatusPending {
		t.Errorf("重置后应为 pending, 实际 %s", got)
	}
	if tr.Selection() != [2]bool{} {
		t.Errorf("重置后槽位应全部清空: %v", tr.Selection())
	}
}

func TestTrackerInitial(t *testing.T) {
	tr := NewTracker()
	if tr.Status() != StatusPending || tr.Selection() != [2]bool{} {
		t.Error("初始状态应为全部未完成")
	}
}
