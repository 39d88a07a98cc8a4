package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/zoeyai/diffroll/internal/logger"
	"github.com/zoeyai/diffroll/pkg/config"
)

// 版本信息 (可通过 ldflags 注入)
var (
	Version   = "1.0.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// options 命令行参数
type options struct {
	configFile  string
	boon        string
	equation    string
	maxAttempts int
	logLevel    string
	capture     string
	scorer      string
	debugDir    string
	save        bool
}

func main() {
	os.Exit(execute(os.Args[1:]))
}

// execute 解析命令行并运行，返回进程退出码
func execute(args []string) int {
	code := ExitOK
	root := newRootCmd(func(c int) { code = c })
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		logger.Error("%v", err)
		return ExitError
	}
	return code
}

func newRootCmd(setCode func(int)) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "diffroll",
		Short: "崩坏：星穹铁道 差分宇宙开局自动刷取",
		Long: "反复开始差分宇宙，直到开局的金血祝颂与方程都是指定的目标。\n" +
			"目标名称为拼音，对应 option_templates 目录中的模板文件名。",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags(), opts)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err = run(ctx, cfg, opts, cmd.InOrStdin(), cmd.OutOrStdout())
			code := ExitCode(err)
			report(err, code)
			setCode(code)
			return nil
		},
	}

	bindFlags(root.Flags(), opts)
	root.AddCommand(newVersionCmd(), newConfigCmd())
	return root
}

// bindFlags 注册命令行参数
func bindFlags(f *pflag.FlagSet, opts *options) {
	f.StringVar(&opts.configFile, "config", "", "配置文件路径 (默认 ~/.diffroll/config.yaml)")
	f.StringVar(&opts.boon, "boon", "", "目标金血祝颂 (拼音)")
	f.StringVar(&opts.equation, "equation", "", "目标方程 (拼音)")
	f.IntVar(&opts.maxAttempts, "max-attempts", 0, "最大尝试次数")
	f.StringVar(&opts.logLevel, "log-level", "", "控制台日志级别 (DEBUG/INFO/WARN/ERROR)")
	f.StringVar(&opts.capture, "capture", "", "截图后端 (robotgo/screenshot)")
	f.StringVar(&opts.scorer, "scorer", "", "匹配后端 (opencv/gonum)")
	f.StringVar(&opts.debugDir, "debug-dir", "", "未识别界面的标注截图保存目录")
	f.BoolVar(&opts.save, "save", false, "保存配置到本地")
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "显示版本信息",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "diffroll v%s\n", Version)
			fmt.Fprintf(out, "Build Time: %s\n", BuildTime)
			fmt.Fprintf(out, "Git Commit: %s\n", GitCommit)
		},
	}
}

// loadConfig 加载配置文件，命令行参数优先级高于配置文件
func loadConfig(flags *pflag.FlagSet, opts *options) (*config.Config, error) {
	manager := config.GetDefaultManager()
	if opts.configFile != "" {
		manager = config.NewManagerWithFile(opts.configFile)
	}

	// 文件存在但无法解析时直接报错，避免 --save 用默认值覆盖它
	cfg, err := manager.Load()
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}

	if flags.Changed("max-attempts") {
		cfg.MaxAttempts = opts.maxAttempts
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("capture") {
		cfg.Capture = opts.capture
	}
	if flags.Changed("scorer") {
		cfg.Scorer = opts.scorer
	}
	if flags.Changed("debug-dir") {
		cfg.DebugDir = opts.debugDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("配置无效: %w", err)
	}

	if opts.save {
		if err := manager.Save(cfg); err != nil {
			logger.Warn("保存配置失败: %v", err)
		} else {
			logger.Info("配置已保存到 %s", manager.GetConfigFile())
		}
	}
	return cfg, nil
}
