package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultGistURL 是统计数据的默认来源（静态 JSON 资源）
const DefaultGistURL = "https://gist.githubusercontent.com/pumplike115-hub/1807f1da5aeeab3ffbc6b75ee75221f0/raw/bot-stats.json"

// Config 是整个仪表盘的配置
//
// 配置文件为 YAML 格式，缺省字段使用 DefaultConfig() 中的值。
type Config struct {
	// Field 粒子背景参数
	Field FieldConfig `yaml:"field"`

	// Stats 统计数据轮询参数
	Stats StatsConfig `yaml:"stats"`

	// Window 窗口参数
	Window WindowConfig `yaml:"window"`
}

// FieldConfig 粒子场参数
//
// 所有速度、寿命均以"帧"为单位，每帧固定推进一次，不做 delta-time 缩放。
type FieldConfig struct {
	// MaxParticles 环境粒子数量上限
	MaxParticles int `yaml:"maxParticles"`
	// AreaPerParticle 每个环境粒子对应的视口面积（像素²）
	AreaPerParticle float64 `yaml:"areaPerParticle"`

	// SizeMin, SizeMax 粒子半径范围 [min, max)
	SizeMin float64 `yaml:"sizeMin"`
	SizeMax float64 `yaml:"sizeMax"`

	// DriftSpeed 环境粒子与移动生成粒子的初速度跨度，分量取 [-DriftSpeed/2, DriftSpeed/2)
	DriftSpeed float64 `yaml:"driftSpeed"`
	// BurstSpeed 点击爆发粒子的初速度跨度
	BurstSpeed float64 `yaml:"burstSpeed"`

	// OpacityMin, OpacityMax 环境粒子透明度范围 [min, max)
	OpacityMin float64 `yaml:"opacityMin"`
	OpacityMax float64 `yaml:"opacityMax"`

	// HueMin 色相下限（度），HueSpan 色相跨度
	HueMin  float64 `yaml:"hueMin"`
	HueSpan float64 `yaml:"hueSpan"`

	// AttractRadius 指针吸引半径，AttractStrength 吸引冲量系数
	AttractRadius   float64 `yaml:"attractRadius"`
	AttractStrength float64 `yaml:"attractStrength"`

	// Damping 每帧速度衰减乘数
	Damping float64 `yaml:"damping"`

	// TransientLife 瞬时粒子寿命（帧）
	TransientLife int `yaml:"transientLife"`
	// MoveSpawnChance 指针移动时生成一个瞬时粒子的概率
	MoveSpawnChance float64 `yaml:"moveSpawnChance"`
	// BurstCount 每次点击生成的瞬时粒子数
	BurstCount int `yaml:"burstCount"`

	// ConnectDistance 连线距离阈值，ConnectAlpha 连线最大透明度
	ConnectDistance float64 `yaml:"connectDistance"`
	ConnectAlpha    float64 `yaml:"connectAlpha"`
	// LineWidth 连线宽度
	LineWidth float64 `yaml:"lineWidth"`
}

// StatsConfig 统计数据轮询配置
type StatsConfig struct {
	// URL 统计 JSON 地址
	URL string `yaml:"url"`
	// Interval 轮询间隔
	Interval time.Duration `yaml:"interval"`
	// Timeout 单次请求超时
	Timeout time.Duration `yaml:"timeout"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// DefaultFieldConfig 返回默认粒子场参数
func DefaultFieldConfig() FieldConfig {
	return FieldConfig{
		MaxParticles:    60,
		AreaPerParticle: 20000,
		SizeMin:         1,
		SizeMax:         4,
		DriftSpeed:      2,
		BurstSpeed:      8,
		OpacityMin:      0.2,
		OpacityMax:      0.7,
		HueMin:          300,
		HueSpan:         60,
		AttractRadius:   150,
		AttractStrength: 0.02,
		Damping:         0.99,
		TransientLife:   100,
		MoveSpawnChance: 0.2,
		BurstCount:      8,
		ConnectDistance: 100,
		ConnectAlpha:    0.3,
		LineWidth:       0.5,
	}
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Field: DefaultFieldConfig(),
		Stats: StatsConfig{
			URL:      DefaultGistURL,
			Interval: 15 * time.Second,
			Timeout:  10 * time.Second,
		},
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Bot Dashboard",
		},
	}
}

// Load 加载配置文件
//
// 从指定路径读取 YAML 配置，未出现的字段保留默认值。
//
// 参数:
//   - path: 配置文件路径；为空时直接返回默认配置
//
// 返回:
//   - *Config: 合并并验证后的配置
//   - error: 读取、解析或验证失败
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置有效性
func (c *Config) Validate() error {
	if err := c.Field.Validate(); err != nil {
		return fmt.Errorf("field: %w", err)
	}

	if c.Stats.URL == "" {
		return errors.New("stats: url must not be empty")
	}
	if c.Stats.Interval <= 0 {
		return fmt.Errorf("stats: interval must be positive, got %v", c.Stats.Interval)
	}
	if c.Stats.Timeout <= 0 {
		return fmt.Errorf("stats: timeout must be positive, got %v", c.Stats.Timeout)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window: size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	return nil
}

// Validate 检查粒子场参数是否在合理范围内
func (f *FieldConfig) Validate() error {
	if f.MaxParticles < 0 {
		return fmt.Errorf("maxParticles must be >= 0, got %d", f.MaxParticles)
	}
	if f.AreaPerParticle <= 0 {
		return fmt.Errorf("areaPerParticle must be positive, got %.1f", f.AreaPerParticle)
	}
	if f.SizeMin <= 0 || f.SizeMin > f.SizeMax {
		return fmt.Errorf("size range invalid: min(%.2f) max(%.2f)", f.SizeMin, f.SizeMax)
	}
	if f.OpacityMin < 0 || f.OpacityMax > 1 || f.OpacityMin > f.OpacityMax {
		return fmt.Errorf("opacity range invalid: min(%.2f) max(%.2f)", f.OpacityMin, f.OpacityMax)
	}
	if f.Damping <= 0 || f.Damping > 1 {
		return fmt.Errorf("damping must be in (0, 1], got %.3f", f.Damping)
	}
	if f.TransientLife <= 0 {
		return fmt.Errorf("transientLife must be positive, got %d", f.TransientLife)
	}
	if f.MoveSpawnChance < 0 || f.MoveSpawnChance > 1 {
		return fmt.Errorf("moveSpawnChance must be in [0, 1], got %.2f", f.MoveSpawnChance)
	}
	if f.BurstCount < 0 {
		return fmt.Errorf("burstCount must be >= 0, got %d", f.BurstCount)
	}
	if f.AttractRadius < 0 || f.ConnectDistance < 0 {
		return fmt.Errorf("radii must be >= 0, got attract=%.1f connect=%.1f", f.AttractRadius, f.ConnectDistance)
	}
	return nil
}
