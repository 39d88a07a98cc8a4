package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/zoeyai/diffroll/pkg/game"
)

// readTargets 补全未通过参数指定的目标，从 in 逐行读取，规范化后返回
//
// 等待输入时 ctx 取消 (Ctrl+C) 立即返回 ctx.Err()。
func readTargets(ctx context.Context, in io.Reader, out io.Writer, boon, equation string, homophones map[string]string) (game.Targets, error) {
	targets := game.NewTargets(boon, equation)

	var lines *lineReader
	for _, g := range game.Goals {
		name := game.NormalizeName(targets[g], homophones)
		for name == "" {
			if lines == nil {
				lines = newLineReader(ctx, in)
			}
			fmt.Fprintf(out, "\t输入 [%s] 的目标名称 (拼音): ", g)
			line, err := lines.next(ctx)
			if err == io.EOF {
				return nil, fmt.Errorf("未输入 [%s] 的目标", g)
			}
			if err != nil {
				return nil, err
			}
			name = game.NormalizeName(strings.TrimSpace(line), homophones)
		}
		targets[g] = name
	}
	return targets, nil
}

// lineReader 在后台读取输入，读取本身无法被取消
type lineReader struct {
	lines <-chan string
	errc  <-chan error
}

func newLineReader(ctx context.Context, in io.Reader) *lineReader {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- scanner.Err()
	}()

	return &lineReader{lines: lines, errc: errc}
}

// next 返回下一行，输入结束时返回 io.EOF
func (r *lineReader) next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-r.lines:
		if ok {
			return line, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	select {
	case err := <-r.errc:
		if err != nil {
			return "", fmt.Errorf("读取输入失败: %w", err)
		}
	default:
	}
	return "", io.EOF
}
