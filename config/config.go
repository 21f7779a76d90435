package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// 快照来源模式
const (
	SourceModeRemote   = "remote"   // 远端表格 Web App（默认）
	SourceModeMock     = "mock"     // 内置演示数据
	SourceModeDatabase = "database" // PostgreSQL 镜像表
)

// Config 应用全局配置结构体
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Source    SourceConfig    `mapstructure:"source"`
	Database  DatabaseConfig  `mapstructure:"db"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
	Feature   FeatureConfig   `mapstructure:"feature"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port           int        `mapstructure:"port"`
	BaseURL        string     `mapstructure:"base_url"`
	BodyLimitBytes int64      `mapstructure:"body_limit_bytes"`
	CORS           CORSConfig `mapstructure:"cors"`
	FrameAncestors []string   `mapstructure:"frame_ancestors"` // 允许以 iframe 嵌入看板的来源
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// SourceConfig 快照来源配置
type SourceConfig struct {
	Mode            string        `mapstructure:"mode"`
	URL             string        `mapstructure:"url"`
	Timeout         time.Duration `mapstructure:"timeout"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"` // 0 表示只在启动和手动刷新时拉取
	Location        string        `mapstructure:"location"`         // 唯一的本地日历时区
}

// LoadLocation 解析日历时区
func (c *SourceConfig) LoadLocation() (*time.Location, error) {
	if c.Location == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Location)
}

// DatabaseConfig PostgreSQL 数据库配置（仅 database 模式使用）
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 分钟
}

// DSN 生成 PostgreSQL 连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis 配置；Addr 为空时不连接
type RedisConfig struct {
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	SnapshotTTL time.Duration `mapstructure:"snapshot_ttl"` // 最近一次成功快照的保留时长
}

// RateLimitConfig 限流配置（依赖 Redis）
type RateLimitConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Limit   int           `mapstructure:"limit"`
	Window  time.Duration `mapstructure:"window"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level   string `mapstructure:"level"`
	Format  string `mapstructure:"format"`
	Service string `mapstructure:"service"`
}

// FeatureConfig 功能开关配置
type FeatureConfig struct {
	DebugPanel bool `mapstructure:"debug_panel"` // 暴露快照计数接口
	SelfTest   bool `mapstructure:"self_test"`   // 暴露快照自检接口
	MemoSize   int  `mapstructure:"memo_size"`   // 单日查询缓存条数，0 关闭
}

// Load 从配置文件与环境变量加载配置
// 优先级：环境变量 > .env > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	// .env 不存在时忽略；已存在的环境变量不会被覆盖
	_ = godotenv.Load()

	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.body_limit_bytes", 1<<20)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.frame_ancestors", []string{"'self'"})

	v.SetDefault("source.mode", SourceModeRemote)
	v.SetDefault("source.url", "")
	v.SetDefault("source.timeout", "15s")
	v.SetDefault("source.refresh_interval", "5m")
	v.SetDefault("source.location", "Europe/Warsaw")

	v.SetDefault("db.host", "")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "stand_dashboard")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Europe/Warsaw")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", 60)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.snapshot_ttl", "168h")

	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.limit", 120)
	v.SetDefault("rate_limit.window", "1m")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.service", "stand-dashboard")

	v.SetDefault("feature.debug_panel", false)
	v.SetDefault("feature.self_test", false)
	v.SetDefault("feature.memo_size", 256)

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("STAND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 配置文件不存在时仅依赖默认值和环境变量
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// ── 关键配置校验 ──
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}

	switch c.Source.Mode {
	case SourceModeRemote:
		if c.Source.URL == "" {
			return fmt.Errorf("配置校验失败: remote 模式下 source.url 不能为空")
		}
	case SourceModeDatabase:
		if c.Database.Host == "" {
			return fmt.Errorf("配置校验失败: database 模式下 db.host 不能为空")
		}
	case SourceModeMock:
	default:
		return fmt.Errorf("配置校验失败: source.mode 必须是 remote / mock / database 之一，实际 %q", c.Source.Mode)
	}

	if c.Source.RefreshInterval < 0 {
		return fmt.Errorf("配置校验失败: source.refresh_interval 不能为负数")
	}
	if _, err := c.Source.LoadLocation(); err != nil {
		return fmt.Errorf("配置校验失败: source.location 无效: %w", err)
	}

	if c.RateLimit.Enabled && (c.RateLimit.Limit <= 0 || c.RateLimit.Window <= 0) {
		return fmt.Errorf("配置校验失败: 启用限流时 rate_limit.limit 与 rate_limit.window 必须为正数")
	}
	if c.Feature.MemoSize < 0 {
		return fmt.Errorf("配置校验失败: feature.memo_size 不能为负数")
	}
	return nil
}
