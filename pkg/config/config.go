package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// 截图后端
const (
	CaptureRobotgo    = "robotgo"
	CaptureScreenshot = "screenshot"
)

// 相似度计算后端
const (
	ScorerOpenCV = "opencv"
	ScorerGonum  = "gonum"
)

// Config 运行配置
type Config struct {
	// 窗口
	WindowTitle string `yaml:"window_title"`
	ProcessName string `yaml:"process_name"`

	// 模板目录
	InterfaceTemplateDir string `yaml:"interface_template_dir"`
	OptionTemplateDir    string `yaml:"option_template_dir"`

	// 匹配阈值
	InterfaceThreshold float64 `yaml:"interface_threshold"`
	OptionThreshold    float64 `yaml:"option_threshold"`

	// 循环
	MaxAttempts int `yaml:"max_attempts"`

	// 时间
	MonitorInterval     time.Duration `yaml:"monitor_interval"`
	ActivateWait        time.Duration `yaml:"activate_wait"`
	HoldTime            time.Duration `yaml:"hold_time"`
	BoonAnimation       time.Duration `yaml:"boon_animation"`
	SelectToConfirmWait time.Duration `yaml:"select_to_confirm_wait"`
	RollAnimation       time.Duration `yaml:"roll_animation"`

	// 输入
	DismissKey string `yaml:"dismiss_key"`

	// 截图与匹配
	Capture string `yaml:"capture"`
	Display int    `yaml:"display"`
	Scorer  string `yaml:"scorer"`

	// 日志
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
	DebugDir string `yaml:"debug_dir"`

	// Homophones 用户输入的常见拼写纠正
	Homophones map[string]string `yaml:"homophones"`
}

// DefaultConfig 默认配置
func DefaultConfig() *Config {
	return &Config{
		WindowTitle:          "崩坏：星穹铁道",
		ProcessName:          "StarRail.exe",
		InterfaceTemplateDir: "interface_templates",
		OptionTemplateDir:    "option_templates",
		InterfaceThreshold:   0.9,
		OptionThreshold:      0.7,
		MaxAttempts:          50,
		MonitorInterval:      2 * time.Second,
		ActivateWait:         500 * time.Millisecond,
		HoldTime:             50 * time.Millisecond,
		BoonAnimation:        2 * time.Second,
		SelectToConfirmWait:  500 * time.Millisecond,
		RollAnimation:        3 * time.Second,
		DismissKey:           "esc",
		Capture:              CaptureRobotgo,
		Display:              0,
		Scorer:               ScorerOpenCV,
		LogLevel:             "INFO",
		LogFile:              "diffroll.log",
		DebugDir:             "",
		Homophones: map[string]string{
			"xunyouletuan":   "xunyouyuetuan",
			"liemianjinzhao": "liemianjinzhua",
			"yiguwuyangyuan": "yigufuyangyuan",
		},
	}
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c.InterfaceThreshold <= -1 || c.InterfaceThreshold >= 1 {
		return fmt.Errorf("interface_threshold 超出范围 (-1, 1): %v", c.InterfaceThreshold)
	}
	if c.OptionThreshold <= -1 || c.OptionThreshold >= 1 {
		return fmt.Errorf("option_threshold 超出范围 (-1, 1): %v", c.OptionThreshold)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts 必须大于 0: %d", c.MaxAttempts)
	}
	if c.InterfaceTemplateDir == "" || c.OptionTemplateDir == "" {
		return fmt.Errorf("模板目录不能为空")
	}
	switch c.Capture {
	case CaptureRobotgo, CaptureScreenshot:
	default:
		return fmt.Errorf("不支持的截图后端: %q", c.Capture)
	}
	switch c.Scorer {
	case ScorerOpenCV, ScorerGonum:
	default:
		return fmt.Errorf("不支持的匹配后端: %q", c.Scorer)
	}
	if c.Display < 0 {
		return fmt.Errorf("display 不能为负数: %d", c.Display)
	}
	for name, d := range map[string]time.Duration{
		"monitor_interval":       c.MonitorInterval,
		"activate_wait":          c.ActivateWait,
		"hold_time":              c.HoldTime,
		"boon_animation":         c.BoonAnimation,
		"select_to_confirm_wait": c.SelectToConfirmWait,
		"roll_animation":         c.RollAnimation,
	} {
		if d < 0 {
			return fmt.Errorf("%s 不能为负数: %s", name, d)
		}
	}
	return nil
}

// Manager 配置管理器
type Manager struct {
	configDir  string
	configFile string
	mu         sync.RWMutex
}

// NewManager 创建配置管理器
func NewManager() *Manager {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return NewManagerWithDir(filepath.Join(homeDir, ".diffroll"))
}

// NewManagerWithDir 使用指定目录创建配置管理器
func NewManagerWithDir(configDir string) *Manager {
	return &Manager{
		configDir:  configDir,
		configFile: filepath.Join(configDir, "config.yaml"),
	}
}

// NewManagerWithFile 使用指定配置文件创建配置管理器
func NewManagerWithFile(path string) *Manager {
	return &Manager{
		configDir:  filepath.Dir(path),
		configFile: path,
	}
}

// ensureDir 确保配置目录存在
func (m *Manager) ensureDir() error {
	return os.MkdirAll(m.configDir, 0755)
}

// Load 加载配置，文件中缺省的字段保持默认值
func (m *Manager) Load() (*Config, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cfg := DefaultConfig()

	if _, err := os.Stat(m.configFile); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(m.configFile)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("读取配置文件失败: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("解析配置文件失败: %w", err)
	}

	return cfg, nil
}

// Save 保存配置
func (m *Manager) Save(cfg *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureDir(); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(m.configFile, data, 0600); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}

	return nil
}

// Clear 清除配置
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := os.Stat(m.configFile); os.IsNotExist(err) {
		return nil
	}

	return os.Remove(m.configFile)
}

// GetConfigDir 获取配置目录
func (m *Manager) GetConfigDir() string {
	return m.configDir
}

// GetConfigFile 获取配置文件路径
func (m *Manager) GetConfigFile() string {
	return m.configFile
}

// Exists 检查配置文件是否存在
func (m *Manager) Exists() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, err := os.Stat(m.configFile)
	return err == nil
}

// 全局配置管理器
var defaultManager = NewManager()

// GetDefaultManager 获取默认配置管理器
func GetDefaultManager() *Manager {
	return defaultManager
}
