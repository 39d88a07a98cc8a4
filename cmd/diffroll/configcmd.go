package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zoeyai/diffroll/pkg/config"
	"gopkg.in/yaml.v3"
)

// newConfigCmd 查看或清除 --save 保存的本地配置
func newConfigCmd() *cobra.Command {
	var file string

	manager := func() *config.Manager {
		if file != "" {
			return config.NewManagerWithFile(file)
		}
		return config.GetDefaultManager()
	}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "查看或清除本地配置",
	}
	cmd.PersistentFlags().StringVar(&file, "config", "", "配置文件路径 (默认 ~/.diffroll/config.yaml)")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "显示当前生效的配置",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := manager()
			out := cmd.OutOrStdout()

			cfg := config.DefaultConfig()
			if m.Exists() {
				var err error
				if cfg, err = m.Load(); err != nil {
					return err
				}
				fmt.Fprintf(out, "# %s\n", m.GetConfigFile())
			} else {
				fmt.Fprintf(out, "# %s 不存在，使用默认配置\n", m.GetConfigFile())
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("序列化配置失败: %w", err)
			}
			_, err = out.Write(data)
			return err
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "删除本地配置文件",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := manager()
			if !m.Exists() {
				fmt.Fprintf(cmd.OutOrStdout(), "配置文件 %s 不存在\n", m.GetConfigFile())
				return nil
			}
			if err := m.Clear(); err != nil {
				return fmt.Errorf("清除配置失败: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "已清除配置文件 %s\n", m.GetConfigFile())
			return nil
		},
	}

	cmd.AddCommand(showCmd, clearCmd)
	return cmd
}
