package main

import (
	"context"
	"errors"

	"github.com/zoeyai/diffroll/internal/logger"
	"github.com/zoeyai/diffroll/pkg/auto/window"
	"github.com/zoeyai/diffroll/pkg/recognize"
	"github.com/zoeyai/diffroll/pkg/runner"
)

// 进程退出码
const (
	ExitOK               = 0
	ExitError            = 1
	ExitWindowNotFound   = 66
	ExitTemplateNotFound = 67
	ExitMaxAttempts      = 75
	ExitInterrupted      = 130
)

// ExitCode 错误对应的退出码，nil 表示目标达成
func ExitCode(err error) int {
	var maxErr *runner.MaxAttemptsError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, window.ErrWindowNotFound):
		return ExitWindowNotFound
	case recognize.IsTemplateNotFound(err):
		return ExitTemplateNotFound
	case errors.As(err, &maxErr):
		return ExitMaxAttempts
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	default:
		return ExitError
	}
}

// report 输出结束原因
func report(err error, code int) {
	log := logger.Named("main")
	switch code {
	case ExitOK:
		log.Info("目标已达成, 程序退出")
	case ExitInterrupted:
		log.Info("已中断")
	case ExitError:
		log.Error("运行出错: %v", err)
	default:
		log.Error("%v, 程序退出", err)
	}
	_ = logger.Default().Sync()
}
