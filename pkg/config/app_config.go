package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AppConfig 应用配置（桌面端、移动端与命令行工具共用）
type AppConfig struct {
	Window   WindowConfig   `yaml:"window"`
	Playback PlaybackConfig `yaml:"playback"`
	Verbose  bool           `yaml:"verbose"`
}

// WindowConfig 窗口配置，同时作为粒子视口尺寸
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// PlaybackConfig 播放配置
type PlaybackConfig struct {
	TPS   int    `yaml:"tps"`   // 逻辑帧率
	Seed  int64  `yaml:"seed"`  // 随机种子，0 表示按时间取种
	Mute  bool   `yaml:"mute"`  // 关闭提示音
	Start string `yaml:"start"` // 启动后直接打开的动画 ID，空表示目录页
}

// 默认配置值
const (
	DefaultWindowWidth  = 390
	DefaultWindowHeight = 844
	DefaultWindowTitle  = "Board Animations"
	DefaultTPS          = 60
)

// DefaultAppConfig 返回填充默认值的配置
func DefaultAppConfig() *AppConfig {
	cfg := &AppConfig{}
	cfg.applyDefaults()
	return cfg
}

// LoadAppConfig 从 YAML 文件加载应用配置，缺失字段使用默认值
func LoadAppConfig(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseAppConfig(data)
}

// ParseAppConfig 解析 YAML 配置内容
func ParseAppConfig(data []byte) (*AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Window.Width <= 0 {
		c.Window.Width = DefaultWindowWidth
	}
	if c.Window.Height <= 0 {
		c.Window.Height = DefaultWindowHeight
	}
	if c.Window.Title == "" {
		c.Window.Title = DefaultWindowTitle
	}
	if c.Playback.TPS <= 0 {
		c.Playback.TPS = DefaultTPS
	}
}

// Viewport 返回视口尺寸（浮点）
func (c *AppConfig) Viewport() (width, height float64) {
	return float64(c.Window.Width), float64(c.Window.Height)
}
