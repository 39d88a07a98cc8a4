// Package window 提供游戏窗口的查找与激活
package window

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-vgo/robotgo"
	"github.com/shirou/gopsutil/v4/process"
)

// ErrWindowNotFound 未找到窗口
var ErrWindowNotFound = errors.New("window not found")

// WindowInfo 窗口信息
type WindowInfo struct {
	PID         int    `json:"pid"`
	Title       string `json:"title"`
	ProcessName string `json:"process_name"`
}

// Finder 按标题或进程名查找窗口
type Finder struct {
	pids  func() ([]int32, error)
	name  func(pid int32) (string, error)
	title func(pid int) string
}

// NewFinder 创建基于 gopsutil + robotgo 的查找器
func NewFinder() *Finder {
	return &Finder{
		pids: process.Pids,
		name: func(pid int32) (string, error) {
			proc, err := process.NewProcess(pid)
			if err != nil {
				return "", err
			}
			return proc.Name()
		},
		title: func(pid int) string { return robotgo.GetTitle(pid) },
	}
}

// Find 查找窗口：标题包含 title（不区分大小写），或进程名等于 processName
// 两者都未命中时返回 ErrWindowNotFound
func (f *Finder) Find(title, processName string) (*WindowInfo, error) {
	pids, err := f.pids()
	if err != nil {
		return nil, fmt.Errorf("获取进程列表失败: %w", err)
	}

	titleLower := strings.ToLower(title)
	for _, pid := range pids {
		winTitle := f.title(int(pid))
		if winTitle == "" {
			continue
		}

		name, _ := f.name(pid)
		titleHit := titleLower != "" && strings.Contains(strings.ToLower(winTitle), titleLower)
		nameHit := processName != "" && strings.EqualFold(name, processName)
		if !titleHit && !nameHit {
			continue
		}

		return &WindowInfo{
			PID:         int(pid),
			Title:       winTitle,
			ProcessName: name,
		}, nil
	}

	return nil, fmt.Errorf("%w: [%s]", ErrWindowNotFound, title)
}

// Find 使用默认查找器
func Find(title, processName string) (*WindowInfo, error) {
	return NewFinder().Find(title, processName)
}

// Activate 将窗口置于前台
func Activate(pid int) error {
	if err := robotgo.ActivePid(pid); err != nil {
		return fmt.Errorf("激活窗口失败: %w", err)
	}
	return nil
}
