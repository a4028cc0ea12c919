// Package pkg 实现 Phixeo 项目配置相关功能
package pkg

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// 常量定义
const (
	ConfigFileName = "phixeo.toml" // 配置文件名
)

// Config 项目配置
type Config struct {
	Sandbox SandboxConfig `toml:"sandbox"`
	Modules ModulesConfig `toml:"modules"`
	Repl    ReplConfig    `toml:"repl"`
}

// SandboxConfig 执行沙箱配置
type SandboxConfig struct {
	// MaxSteps 单次运行的执行步数预算，0 表示不限
	MaxSteps int `toml:"max_steps"`
}

// ModulesConfig 标准库模块配置
type ModulesConfig struct {
	// Disabled 禁用的模块名列表，导入时回退为空模块
	Disabled []string `toml:"disabled"`
}

// ReplConfig 交互环境配置
type ReplConfig struct {
	// Prompt 主提示符
	Prompt string `toml:"prompt"`

	// Continue 多行输入的续行提示符
	Continue string `toml:"continue"`
}

// LoadConfig 从文件加载配置
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := GenerateDefault()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Save 保存配置到文件
func (c *Config) Save(path string) error {
	// 生成带注释的配置文件内容
	content := generateConfigWithComments(c)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// generateConfigWithComments 生成带注释的配置文件内容
func generateConfigWithComments(c *Config) string {
	var sb strings.Builder

	sb.WriteString("[sandbox]\n")
	sb.WriteString("# 单次运行的执行步数预算，0 表示不限\n")
	sb.WriteString(fmt.Sprintf("max_steps = %d\n\n", c.Sandbox.MaxSteps))

	sb.WriteString("[modules]\n")
	sb.WriteString("# 禁用的标准库模块，导入时回退为空模块\n")
	sb.WriteString("disabled = [")
	for i, name := range c.Modules.Disabled {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("%q", name))
	}
	sb.WriteString("]\n\n")

	sb.WriteString("[repl]\n")
	sb.WriteString("# 交互环境提示符\n")
	sb.WriteString(fmt.Sprintf("prompt = %q\n", c.Repl.Prompt))
	sb.WriteString(fmt.Sprintf("continue = %q\n", c.Repl.Continue))

	return sb.String()
}

// GenerateDefault 生成默认配置
func GenerateDefault() *Config {
	return &Config{
		Sandbox: SandboxConfig{
			MaxSteps: 0,
		},
		Repl: ReplConfig{
			Prompt:   "phx> ",
			Continue: "...> ",
		},
	}
}

// FindConfigFile 从指定路径向上查找配置文件
// 返回配置文件的完整路径，如果找不到则返回空字符串
func FindConfigFile(startPath string) string {
	// 如果是文件，从其所在目录开始
	info, err := os.Stat(startPath)
	if err != nil {
		return ""
	}

	var dir string
	if info.IsDir() {
		dir = startPath
	} else {
		dir = filepath.Dir(startPath)
	}

	// 转换为绝对路径
	dir, err = filepath.Abs(dir)
	if err != nil {
		return ""
	}

	// 向上查找
	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		// 获取父目录
		parent := filepath.Dir(dir)
		if parent == dir {
			// 已到达根目录
			return ""
		}
		dir = parent
	}
}

// GetProjectRoot 获取项目根目录（配置文件所在目录）
func GetProjectRoot(startPath string) string {
	configPath := FindConfigFile(startPath)
	if configPath == "" {
		return ""
	}
	return filepath.Dir(configPath)
}

// LoadForScript 为脚本文件加载生效配置
//
// 从脚本所在目录向上查找 phixeo.toml；找不到或解析失败时
// 回退为默认配置。
func LoadForScript(scriptPath string) *Config {
	configPath := FindConfigFile(scriptPath)
	if configPath == "" {
		return GenerateDefault()
	}
	config, err := LoadConfig(configPath)
	if err != nil {
		return GenerateDefault()
	}
	return config
}
