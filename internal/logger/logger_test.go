package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   DEBUG,
		"INFO":    INFO,
		"Warning": WARN,
		"error":   ERROR,
		"":        INFO,
		"verbose": INFO,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %s, 期望 %s", in, got, want)
		}
	}
}

func TestFileSinkWritesComponentAndLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diffroll.log")

	l := New()
	l.SetConsole(false)
	if err := l.SetFile(path); err != nil {
		t.Fatalf("设置日志文件失败: %v", err)
	}

	rec := l.Named("recognize")
	rec.Debug("Interface [%s] with confidence level: %.4f;", "start_game", 0.95)
	rec.Info("Success to load %d templates;", 15)

	if err := l.Close(); err != nil {
		t.Fatalf("关闭日志失败: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取日志文件失败: %v", err)
	}
	content := string(data)

	for _, want := range []string{"[recognize]", "DEBUG", "INFO", "start_game", "0.9500", "15 templates"} {
		if !strings.Contains(content, want) {
			t.Errorf("日志缺少 %q:\n%s", want, content)
		}
	}
}

func TestFileLevelFiltersLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diffroll.log")

	l := New()
	l.SetConsole(false)
	l.SetFileLevel(WARN)
	if err := l.SetFile(path); err != nil {
		t.Fatalf("设置日志文件失败: %v", err)
	}

	l.Info("should be dropped")
	l.Warn("kept")
	l.Close()

	data, _ := os.ReadFile(path)
	content := string(data)
	if strings.Contains(content, "should be dropped") {
		t.Errorf("WARN 级别下不应写入 INFO 日志:\n%s", content)
	}
	if !strings.Contains(content, "kept") {
		t.Errorf("WARN 日志应写入:\n%s", content)
	}
}

func TestSetFileTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diffroll.log")
	if err := os.WriteFile(path, []byte("old run\n"), 0644); err != nil {
		t.Fatal(err)
	}

	l := New()
	l.SetConsole(false)
	if err := l.SetFile(path); err != nil {
		t.Fatalf("设置日志文件失败: %v", err)
	}
	l.Info("new run")
	l.Close()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "old run") {
		t.Errorf("日志文件应在每次运行时清空:\n%s", data)
	}
}

func TestNamedNesting(t *testing.T) {
	l := New().Named("operate").Named("tracker")
	if l.name != "operate.tracker" {
		t.Errorf("组件名应为 operate.tracker, 实际为 %s", l.name)
	}
}
