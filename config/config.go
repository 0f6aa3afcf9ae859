package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Twilio    TwilioConfig    `mapstructure:"twilio"`
	OSS       OSSConfig       `mapstructure:"oss"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Booking   BookingConfig   `mapstructure:"booking"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type TwilioConfig struct {
	AccountSID  string `mapstructure:"account_sid"`
	AuthToken   string `mapstructure:"auth_token"`
	FromNumber  string `mapstructure:"from_number"`
	CallbackURL string `mapstructure:"callback_url"`
}

type OSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	BucketName      string `mapstructure:"bucket_name"`
	CDNDomain       string `mapstructure:"cdn_domain"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

// SchedulerConfig 会费生命周期任务的阈值与运行周期
type SchedulerConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	SweepIntervalHours int    `mapstructure:"sweep_interval_hours"` // 扫描类任务的运行间隔
	OverdueGraceDays   int    `mapstructure:"overdue_grace_days"`   // 逾期多少天后开始催缴短信
	UpcomingDueDays    int    `mapstructure:"upcoming_due_days"`    // 到期前几天发送提醒
	DeactivateDays     int    `mapstructure:"deactivate_days"`      // 逾期多少天后停用会员
	PurgeRetentionDays int    `mapstructure:"purge_retention_days"` // 回收站保留天数
	LockTTLSeconds     int    `mapstructure:"lock_ttl_seconds"`     // 任务分布式锁的过期时间
	LockPrefix         string `mapstructure:"lock_prefix"`
}

type BookingConfig struct {
	ListRangeDays int `mapstructure:"list_range_days"` // 预约列表默认查询区间（天）
}

func Load(configPath string) (*Config, error) {
	// 优先尝试读取 config.local.yaml（包含真实密钥，不提交到git）
	dir := filepath.Dir(configPath)
	localConfigPath := filepath.Join(dir, "config.local.yaml")

	// 检查 config.local.yaml 是否存在
	if _, err := os.Stat(localConfigPath); err == nil {
		configPath = localConfigPath
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	// 环境变量覆盖
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	s := &cfg.Scheduler
	if s.SweepIntervalHours <= 0 {
		s.SweepIntervalHours = 1
	}
	if s.OverdueGraceDays <= 0 {
		s.OverdueGraceDays = 7
	}
	if s.UpcomingDueDays <= 0 {
		s.UpcomingDueDays = 3
	}
	if s.DeactivateDays <= 0 {
		s.DeactivateDays = 15
	}
	if s.PurgeRetentionDays <= 0 {
		s.PurgeRetentionDays = 30
	}
	if s.LockTTLSeconds <= 0 {
		s.LockTTLSeconds = 300
	}
	if s.LockPrefix == "" {
		s.LockPrefix = "gym:jobs"
	}
	if cfg.Booking.ListRangeDays <= 0 {
		cfg.Booking.ListRangeDays = 30
	}
}
