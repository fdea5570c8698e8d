package config

import (
	"context"
	"crypto/tls"
	"fmt"
	"os"
	"strconv"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var ctx = context.Background()

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TLS      bool   `yaml:"tls"`
}

type MySQLConfig struct {
	DSN string `yaml:"dsn"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

// AdminConfig holds the single administrator identifier. The account
// whose email matches it authenticates with the administrator role.
type AdminConfig struct {
	Email string `yaml:"email"`
}

type Config struct {
	Server ServerConfig `yaml:"server"`
	MySQL  MySQLConfig  `yaml:"mysql"`
	Redis  RedisConfig  `yaml:"redis"`
	Admin  AdminConfig  `yaml:"admin"`
}

var GlobalConfig *Config
var RedisClient *redis.Client

func InitConfig(path string) {
	data, err := os.ReadFile(path + "/config.yaml")
	if err != nil {
		logrus.Fatalf("Read config failed: %v", err)
	}
	if err := yaml.Unmarshal(data, &GlobalConfig); err != nil {
		logrus.Fatalf("Parse config failed: %v", err)
	}
	applyEnvOverrides()
}

func InitRedis() {
	opt := &redis.Options{
		Addr:     GlobalConfig.Redis.Addr,
		Password: GlobalConfig.Redis.Password,
		DB:       GlobalConfig.Redis.DB,
	}
	if GlobalConfig.Redis.TLS {
		opt.TLSConfig = &tls.Config{}
	}
	RedisClient = redis.NewClient(opt)
	if _, err := RedisClient.Ping(ctx).Result(); err != nil {
		panic(fmt.Sprintf("Redis connect failed: %v", err))
	}
	logrus.Info("Redis connected")
}

func applyEnvOverrides() {
	if GlobalConfig == nil {
		return
	}
	if v := os.Getenv("MYSQL_DSN"); v != "" {
		GlobalConfig.MySQL.DSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		GlobalConfig.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		GlobalConfig.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			GlobalConfig.Redis.DB = parsed
		}
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		GlobalConfig.Server.Port = v
	}
	if v := os.Getenv("ADMIN_EMAIL"); v != "" {
		GlobalConfig.Admin.Email = v
	}
}
