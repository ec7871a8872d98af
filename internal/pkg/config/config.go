package config

import (
	"fmt"

	"github.com/spf13/viper"
)

var GlobalConfig *Config

// Config 全局配置
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Log       LogConfig       `mapstructure:"log"`
	Deploy    DeployConfig    `mapstructure:"deploy"`
	Realtime  RealtimeConfig  `mapstructure:"realtime"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	DB        interface{}     // 数据库连接,运行时注入
}

// ServerConfig 服务配置
type ServerConfig struct {
	Name string `mapstructure:"name"`
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Database        string `mapstructure:"database"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"timezone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 秒
	LogLevel        string `mapstructure:"log_level"`         // SQL日志级别: silent/error/warn/info
}

// AuthConfig 认证配置
type AuthConfig struct {
	JWT   JWTConfig   `mapstructure:"jwt"`
	Local LocalConfig `mapstructure:"local"`
}

// JWTConfig JWT配置
type JWTConfig struct {
	Secret             string `mapstructure:"secret"`
	AccessTokenExpire  int    `mapstructure:"access_token_expire"`  // 秒
	RefreshTokenExpire int    `mapstructure:"refresh_token_expire"` // 秒
}

// LocalConfig 本地用户配置
type LocalConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string `mapstructure:"level"`  // debug, info, warn, error
	Format   string `mapstructure:"format"` // json, console
	Output   string `mapstructure:"output"` // stdout, file
	FilePath string `mapstructure:"file_path"`
}

// DeployConfig 部署编排配置
type DeployConfig struct {
	GitHub        GitHubConfig  `mapstructure:"github"`
	Netlify       NetlifyConfig `mapstructure:"netlify"`
	Fly           FlyConfig     `mapstructure:"fly"`
	WorkflowsFile string        `mapstructure:"workflows_file"` // 工作流清单路径
	CallbackToken string        `mapstructure:"callback_token"` // 回调校验Token，为空表示不校验
	PendingTimeout string       `mapstructure:"pending_timeout"` // pending超时时长，如 30m
}

// GitHubConfig GitHub Actions 配置
// 所有 workflow 均托管在一个固定的 actions 仓库中
type GitHubConfig struct {
	Token        string `mapstructure:"token"`
	ActionsOwner string `mapstructure:"actions_owner"`
	ActionsRepo  string `mapstructure:"actions_repo"`
	BaseURL      string `mapstructure:"base_url"`
}

// NetlifyConfig Netlify 配置
type NetlifyConfig struct {
	Token   string `mapstructure:"token"`
	BaseURL string `mapstructure:"base_url"`
}

// FlyConfig Fly Machines 配置
type FlyConfig struct {
	Token       string `mapstructure:"token"`
	BaseURL     string `mapstructure:"base_url"`
	DockerImage string `mapstructure:"docker_image"` // clone 工作流的默认镜像
	RepoPrefix  string `mapstructure:"repo_prefix"`  // 应用仓库名前缀，如 genfly-
}

// RealtimeConfig 实时广播配置
type RealtimeConfig struct {
	Provider string         `mapstructure:"provider"` // supabase/redis/log
	Supabase SupabaseConfig `mapstructure:"supabase"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// SupabaseConfig Supabase Realtime 配置
type SupabaseConfig struct {
	URL     string `mapstructure:"url"`
	AnonKey string `mapstructure:"anon_key"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SchedulerConfig 定时任务配置
type SchedulerConfig struct {
	ReaperCron string `mapstructure:"reaper_cron"` // pending超时清理任务的cron表达式，为空则不启动
}

// Load 加载配置
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// 设置配置文件路径
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// 读取环境变量
	v.AutomaticEnv()

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	// 解析配置
	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// 设置全局配置
	GlobalConfig = config

	return config, nil
}

// GetDSN 获取数据库DSN
func (c *DatabaseConfig) GetDSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	timeZone := c.TimeZone
	if timeZone == "" {
		timeZone = "UTC"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host,
		c.Port,
		c.Username,
		c.Password,
		c.Database,
		sslMode,
		timeZone,
	)
}
