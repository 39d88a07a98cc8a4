// Package logger 提供统一的日志工具
package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level 日志级别
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel 解析日志级别字符串
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case DEBUG:
		return zapcore.DebugLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// sink 日志输出目标：控制台与文件各自持有级别
type sink struct {
	mu           sync.Mutex
	consoleLevel zap.AtomicLevel
	fileLevel    zap.AtomicLevel
	console      bool
	fileOut      *os.File
	base         *zap.Logger
}

// Logger 日志记录器
// 同一 sink 派生出的 Logger 共享输出，仅组件名不同
type Logger struct {
	sink *sink
	name string
}

// 全局默认 logger
var defaultLogger = New()

// New 创建新的 Logger 实例（仅控制台，INFO 级别）
func New() *Logger {
	s := &sink{
		consoleLevel: zap.NewAtomicLevelAt(zapcore.InfoLevel),
		fileLevel:    zap.NewAtomicLevelAt(zapcore.DebugLevel),
		console:      true,
	}
	s.rebuild()
	return &Logger{sink: s}
}

// Default 获取默认 logger
func Default() *Logger {
	return defaultLogger
}

// encoderConfig 行格式: 15:04:05<TAB>LEVEL<TAB>[component]<TAB>message
func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "component",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeTime:       zapcore.TimeEncoderOfLayout("15:04:05"),
		EncodeDuration:   zapcore.StringDurationEncoder,
		EncodeName:       func(name string, enc zapcore.PrimitiveArrayEncoder) { enc.AppendString("[" + name + "]") },
		ConsoleSeparator: "\t",
	}
}

// rebuild 根据当前输出配置重建 zap core，调用方需持有锁或处于构造阶段
func (s *sink) rebuild() {
	var cores []zapcore.Core
	enc := encoderConfig()

	if s.console {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(enc),
			zapcore.Lock(os.Stdout),
			s.consoleLevel,
		))
	}
	if s.fileOut != nil {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(enc),
			zapcore.AddSync(s.fileOut),
			s.fileLevel,
		))
	}

	if len(cores) == 0 {
		s.base = zap.NewNop()
		return
	}
	s.base = zap.New(zapcore.NewTee(cores...))
}

func (l *Logger) sugar() *zap.SugaredLogger {
	l.sink.mu.Lock()
	base := l.sink.base
	l.sink.mu.Unlock()
	if l.name != "" {
		base = base.Named(l.name)
	}
	return base.Sugar()
}

// Named 派生带组件名的 logger
func (l *Logger) Named(component string) *Logger {
	name := component
	if l.name != "" {
		name = l.name + "." + component
	}
	return &Logger{sink: l.sink, name: name}
}

// SetLevel 设置控制台日志级别
func (l *Logger) SetLevel(level Level) {
	l.sink.consoleLevel.SetLevel(level.zapLevel())
}

// SetFileLevel 设置文件日志级别
func (l *Logger) SetFileLevel(level Level) {
	l.sink.fileLevel.SetLevel(level.zapLevel())
}

// SetConsole 设置是否输出到控制台
func (l *Logger) SetConsole(enabled bool) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.console = enabled
	l.sink.rebuild()
}

// SetFile 设置日志文件，每次运行覆盖旧内容；path 为空时关闭文件输出
func (l *Logger) SetFile(path string) error {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	// 关闭旧文件
	if l.sink.fileOut != nil {
		_ = l.sink.base.Sync()
		l.sink.fileOut.Close()
		l.sink.fileOut = nil
	}

	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			l.sink.rebuild()
			return fmt.Errorf("无法打开日志文件: %w", err)
		}
		l.sink.fileOut = f
	}

	l.sink.rebuild()
	return nil
}

// Debug 输出 DEBUG 级别日志
func (l *Logger) Debug(format string, args ...interface{}) {
	l.sugar().Debugf(format, args...)
}

// Info 输出 INFO 级别日志
func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar().Infof(format, args...)
}

// Warn 输出 WARN 级别日志
func (l *Logger) Warn(format string, args ...interface{}) {
	l.sugar().Warnf(format, args...)
}

// Error 输出 ERROR 级别日志
func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar().Errorf(format, args...)
}

// Sync 刷新缓冲
func (l *Logger) Sync() error {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	return l.sink.base.Sync()
}

// Close 关闭 logger，释放资源
func (l *Logger) Close() error {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	_ = l.sink.base.Sync()
	if l.sink.fileOut != nil {
		err := l.sink.fileOut.Close()
		l.sink.fileOut = nil
		l.sink.rebuild()
		return err
	}
	return nil
}

// 包级别便捷函数
func Debug(format string, args ...interface{}) { defaultLogger.Debug(format, args...) }
func Info(format string, args ...interface{})  { defaultLogger.Info(format, args...) }
func Warn(format string, args ...interface{})  { defaultLogger.Warn(format, args...) }
func Error(format string, args ...interface{}) { defaultLogger.Error(format, args...) }

// Named 从默认 logger 派生组件 logger
func Named(component string) *Logger { return defaultLogger.Named(component) }
