package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.InterfaceThreshold != 0.9 {
		t.Errorf("默认 InterfaceThreshold 应为 0.9, 实际为 %v", cfg.InterfaceThreshold)
	}
	if cfg.OptionThreshold != 0.7 {
		t.Errorf("默认 OptionThreshold 应为 0.7, 实际为 %v", cfg.OptionThreshold)
	}
	if cfg.OptionThreshold >= cfg.InterfaceThreshold {
		t.Error("选项阈值应低于界面阈值")
	}
	if cfg.MaxAttempts != 50 {
		t.Errorf("默认 MaxAttempts 应为 50, 实际为 %d", cfg.MaxAttempts)
	}
	if cfg.MonitorInterval != 2*time.Second {
		t.Errorf("默认 MonitorInterval 应为 2s, 实际为 %s", cfg.MonitorInterval)
	}
	if cfg.HoldTime != 50*time.Millisecond {
		t.Errorf("默认 HoldTime 应为 50ms, 实际为 %s", cfg.HoldTime)
	}
	if cfg.Homophones["xunyouletuan"] != "xunyouyuetuan" {
		t.Error("默认同音纠正表缺少 xunyouletuan")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("默认配置应通过校验: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"threshold too high", func(c *Config) { c.InterfaceThreshold = 1 }},
		{"option threshold too low", func(c *Config) { c.OptionThreshold = -1 }},
		{"zero attempts", func(c *Config) { c.MaxAttempts = 0 }},
		{"empty template dir", func(c *Config) { c.OptionTemplateDir = "" }},
		{"unknown capture", func(c *Config) { c.Capture = "dxgi" }},
		{"unknown scorer", func(c *Config) { c.Scorer = "sift" }},
		{"negative display", func(c *Config) { c.Display = -1 }},
		{"negative delay", func(c *Config) { c.RollAnimation = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("应返回校验错误")
			}
		})
	}
}

func TestManagerSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	if manager.Exists() {
		t.Error("初始时配置文件不应存在")
	}

	cfg := DefaultConfig()
	cfg.MaxAttempts = 12
	cfg.RollAnimation = 4500 * time.Millisecond
	cfg.Scorer = ScorerGonum
	cfg.Homophones["foo"] = "bar"

	if err := manager.Save(cfg); err != nil {
		t.Fatalf("保存配置失败: %v", err)
	}
	if !manager.Exists() {
		t.Error("保存后配置文件应存在")
	}

	loaded, err := manager.Load()
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}

	if loaded.MaxAttempts != 12 {
		t.Errorf("MaxAttempts 不匹配: 期望 12, 实际 %d", loaded.MaxAttempts)
	}
	if loaded.RollAnimation != 4500*time.Millisecond {
		t.Errorf("RollAnimation 不匹配: 期望 4.5s, 实际 %s", loaded.RollAnimation)
	}
	if loaded.Scorer != ScorerGonum {
		t.Errorf("Scorer 不匹配: 期望 %s, 实际 %s", ScorerGonum, loaded.Scorer)
	}
	if loaded.Homophones["foo"] != "bar" {
		t.Error("Homophones 未正确保存")
	}
}

func TestManagerLoadPartialFile(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	content := "max_attempts: 3\nmonitor_interval: 750ms\n"
	if err := os.WriteFile(manager.GetConfigFile(), []byte(content), 0600); err != nil {
		t.Fatalf("创建测试文件失败: %v", err)
	}

	cfg, err := manager.Load()
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}
	if cfg.MaxAttempts != 3 {
		t.Errorf("MaxAttempts 应为 3, 实际为 %d", cfg.MaxAttempts)
	}
	if cfg.MonitorInterval != 750*time.Millisecond {
		t.Errorf("MonitorInterval 应为 750ms, 实际为 %s", cfg.MonitorInterval)
	}
	// 未出现的字段保持默认值
	if cfg.InterfaceThreshold != 0.9 {
		t.Errorf("InterfaceThreshold 应保持默认值 0.9, 实际为 %v", cfg.InterfaceThreshold)
	}
}

func TestManagerClear(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	if err := manager.Save(DefaultConfig()); err != nil {
		t.Fatalf("保存配置失败: %v", err)
	}
	if !manager.Exists() {
		t.Fatal("保存后配置文件应存在")
	}

	if err := manager.Clear(); err != nil {
		t.Fatalf("清除配置失败: %v", err)
	}
	if manager.Exists() {
		t.Error("清除后配置文件不应存在")
	}

	// 清除不存在的文件不应报错
	if err := manager.Clear(); err != nil {
		t.Errorf("清除不存在的配置不应报错: %v", err)
	}
}

func TestManagerLoadNonExistent(t *testing.T) {
	manager := NewManagerWithDir(t.TempDir())

	cfg, err := manager.Load()
	if err != nil {
		t.Fatalf("加载不存在的配置不应报错: %v", err)
	}
	if cfg.WindowTitle != DefaultConfig().WindowTitle {
		t.Errorf("应返回默认 WindowTitle")
	}
}

func TestManagerLoadCorruptedFile(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	if err := os.WriteFile(manager.GetConfigFile(), []byte("max_attempts: [not, a, number"), 0600); err != nil {
		t.Fatalf("创建测试文件失败: %v", err)
	}

	cfg, err := manager.Load()
	if err == nil {
		t.Error("加载损坏的配置应返回错误")
	}
	if cfg == nil || cfg.MaxAttempts != 50 {
		t.Error("即使出错也应返回默认配置")
	}
}

func TestManagerPaths(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	if manager.GetConfigDir() != tempDir {
		t.Errorf("GetConfigDir 应为 %s", tempDir)
	}
	expectedFile := filepath.Join(tempDir, "config.yaml")
	if manager.GetConfigFile() != expectedFile {
		t.Errorf("GetConfigFile 应为 %s", expectedFile)
	}

	custom := filepath.Join(tempDir, "nested", "roll.yaml")
	fm := NewManagerWithFile(custom)
	if fm.GetConfigFile() != custom || fm.GetConfigDir() != filepath.Join(tempDir, "nested") {
		t.Errorf("NewManagerWithFile 路径错误: %s, %s", fm.GetConfigDir(), fm.GetConfigFile())
	}
	if err := fm.Save(DefaultConfig()); err != nil {
		t.Fatalf("保存到嵌套目录失败: %v", err)
	}
}

func TestDefaultManager(t *testing.T) {
	manager := GetDefaultManager()
	if manager == nil {
		t.Fatal("GetDefaultManager 返回 nil")
	}
	if !strings.HasSuffix(manager.GetConfigDir(), ".diffroll") {
		t.Errorf("默认配置目录应以 .diffroll 结尾, 实际为 %s", manager.GetConfigDir())
	}
}

func TestConfigFilePermissions(t *testing.T) {
	manager := NewManagerWithDir(t.TempDir())

	if err := manager.Save(DefaultConfig()); err != nil {
		t.Fatalf("保存配置失败: %v", err)
	}

	info, err := os.Stat(manager.GetConfigFile())
	if err != nil {
		t.Fatalf("获取文件信息失败: %v", err)
	}
	if perm := info.Mode().Perm(); perm&0077 != 0 {
		t.Logf("警告: 配置文件权限为 %o", perm)
	}
}
