package runner

import "fmt"

// MaxAttemptsError 尝试次数超过上限仍未达成目标
type MaxAttemptsError struct {
	Max int
}

func (e *MaxAttemptsError) Error() string {
	return fmt.Sprintf("已达到最大尝试次数 %d, 未达成目标", e.Max)
}
