package window

import (
	"errors"
	"testing"
)

func fakeFinder(titles map[int32]string, names map[int32]string) *Finder {
	return &Finder{
		pids: func() ([]int32, error) {
			// 固定顺序
			return []int32{1, 2, 3, 4}, nil
		},
		name: func(pid int32) (string, error) {
			if n, ok := names[pid]; ok {
				return n, nil
			}
			return "", errors.New("no such process")
		},
		title: func(pid int) string { return titles[int32(pid)] },
	}
}

func TestFindByTitle(t *testing.T) {
	f := fakeFinder(
		map[int32]string{2: "Terminal", 3: "崩坏：星穹铁道"},
		map[int32]string{2: "bash", 3: "StarRail.exe"},
	)

	w, err := f.Find("崩坏：星穹铁道", "")
	if err != nil {
		t.Fatalf("应找到窗口: %v", err)
	}
	if w.PID != 3 || w.ProcessName != "StarRail.exe" {
		t.Errorf("窗口信息错误: %+v", w)
	}
}

func TestFindByProcessName(t *testing.T) {
	f := fakeFinder(
		map[int32]string{4: "Honkai: Star Rail"},
		map[int32]string{4: "starrail.exe"},
	)

	w, err := f.Find("崩坏：星穹铁道", "StarRail.exe")
	if err != nil {
		t.Fatalf("应按进程名找到窗口: %v", err)
	}
	if w.PID != 4 {
		t.Errorf("PID 应为 4, 实际为 %d", w.PID)
	}
}

func TestFindSkipsWindowless(t *testing.T) {
	f := fakeFinder(
		map[int32]string{},
		map[int32]string{1: "StarRail.exe"},
	)

	_, err := f.Find("崩坏：星穹铁道", "StarRail.exe")
	if !errors.Is(err, ErrWindowNotFound) {
		t.Fatalf("无标题的进程不算窗口, 期望 ErrWindowNotFound, 实际 %v", err)
	}
}

func TestFindPidsError(t *testing.T) {
	f := &Finder{
		pids:  func() ([]int32, error) { return nil, errors.New("denied") },
		name:  func(int32) (string, error) { return "", nil },
		title: func(int) string { return "" },
	}
	_, err := f.Find("x", "")
	if err == nil || errors.Is(err, ErrWindowNotFound) {
		t.Errorf("进程列表失败应返回普通错误, 实际 %v", err)
	}
}
