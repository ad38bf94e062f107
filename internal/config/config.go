package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server ServerConfig
	Skill  SkillConfig
	Log    LogConfig
	Redis  RedisConfig
	AI     AIConfig
}

// Load 从环境变量读取配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	redis, err := loadRedisConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: server,
		Skill:  loadSkillConfig(),
		Log:    loadLogConfig(),
		Redis:  redis,
		AI:     ai,
	}, nil
}

// ServerConfig HTTP 监听配置。
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许直接写 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// SkillConfig 语音平台相关配置。
type SkillConfig struct {
	// ApplicationID 与 session.application.applicationId 比对，为空时不校验。
	ApplicationID string
}

func loadSkillConfig() SkillConfig {
	return SkillConfig{ApplicationID: strings.TrimSpace(os.Getenv("SKILL_APP_ID"))}
}

// LogConfig 日志级别、编码与输出位置。
type LogConfig struct {
	Level    string
	Encoding string
	// Output 为空时输出到 stdout，也可填写文件路径。
	Output   string
}

func loadLogConfig() LogConfig {
	return LogConfig{
		Level:    getEnvOrDefault("LOG_LEVEL", "info"),
		Encoding: getEnvOrDefault("LOG_ENCODING", "json"),
		Output:   strings.TrimSpace(os.Getenv("LOG_OUTPUT")),
	}
}

// RedisConfig 会话记录存储配置，Addr 为空时使用内存存储。
type RedisConfig struct {
	Addr          string
	Password      string
	DB            int
	TranscriptTTL time.Duration
}

// Enabled 是否配置了 Redis 地址。
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

func loadRedisConfig() (RedisConfig, error) {
	db, err := parseOptionalIntEnv("REDIS_DB")
	if err != nil {
		return RedisConfig{}, err
	}
	dbIndex := 0
	if db != nil {
		dbIndex = *db
	}

	ttl, err := parseDurationEnv("TRANSCRIPT_TTL", time.Hour)
	if err != nil {
		return RedisConfig{}, err
	}

	return RedisConfig{
		Addr:          strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		Password:      os.Getenv("REDIS_PASSWORD"),
		DB:            dbIndex,
		TranscriptTTL: ttl,
	}, nil
}

// AIConfig 生成笑话所用的 Ark 模型配置。
type AIConfig struct {
	APIKey       string
	AccessKey    string
	SecretKey    string
	Model        string
	BaseURL      string
	Region       string
	Temperature  *float64
	MaxTokens    *int
	JokesEnabled bool
}

// Enabled 是否开启了 AI 笑话且凭证齐全。
func (c AIConfig) Enabled() bool {
	return c.JokesEnabled && c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel 根据配置创建聊天模型。
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("ark credentials or model missing: provide ARK_API_KEY + Model or an AK/SK pair")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	enabled, err := parseBoolEnv("AI_JOKES_ENABLED", false)
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:       strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:    strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:    strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:        strings.TrimSpace(os.Getenv("Model")),
		BaseURL:      getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:       getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature:  temperature,
		MaxTokens:    maxTokens,
		JokesEnabled: enabled,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	if val <= 0 {
		return 0, fmt.Errorf("invalid %s value %q: must be positive", key, raw)
	}
	return val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
