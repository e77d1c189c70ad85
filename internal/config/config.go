package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Configはアプリ全体の設定
type Config struct {
	Port     string // サーバーポート（8080）
	AppEnv   string // development/production
	LogLevel slog.Level

	DatabaseURL    string // DATABASE_URL（最優先）
	DBHost         string
	DBPort         int
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSL          bool // true => sslmode=require
	DBSync         bool // 起動時にマイグレーションを適用
	DBLogging      bool // gormのSQLログ
	DBMaxOpenConns int

	JWTSecret    string        // JWT署名シークレット
	JWTExpiresIn time.Duration // アクセストークンの有効期限

	ProductServiceURL string // 商品サービス（空なら未使用）
	ProductCacheTTL   time.Duration
	RedisURL          string // 空ならキャッシュなし

	KafkaBrokers    []string // 空ならイベント送信なし
	KafkaOrderTopic string

	OTLPEndpoint string // 空ならトレース無効
	ServiceName  string
}

// Loadは環境変数から設定を読む（.envがあれば先に読み込む）
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// DB設定だけ必須にする（cmd/migrate用）
func LoadDatabase() (Config, error) {
	_ = godotenv.Load()
	cfg, err := parse(os.Getenv)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.validateDB(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnvはgetenvから設定を組み立てる
func FromEnv(getenv func(string) string) (Config, error) {
	cfg, err := parse(getenv)
	if err != nil {
		return Config{}, err
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if err := cfg.validateDB(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parse(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	dbPort, err := atoi(get("DB_PORT", "5432"), "DB_PORT")
	if err != nil {
		return Config{}, err
	}
	maxOpen, err := atoi(get("DB_MAX_OPEN_CONNS", "10"), "DB_MAX_OPEN_CONNS")
	if err != nil {
		return Config{}, err
	}
	jwtTTL, err := duration(get("JWT_EXPIRES_IN", "12h"), "JWT_EXPIRES_IN")
	if err != nil {
		return Config{}, err
	}
	cacheTTL, err := duration(get("PRODUCT_CACHE_TTL", "5m"), "PRODUCT_CACHE_TTL")
	if err != nil {
		return Config{}, err
	}
	level, err := parseLevel(get("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:     get("PORT", "8080"),
		AppEnv:   get("APP_ENV", "development"),
		LogLevel: level,

		DatabaseURL:    get("DATABASE_URL", ""),
		DBHost:         get("DB_HOST", ""),
		DBPort:         dbPort,
		DBUser:         get("DB_USERNAME", ""),
		DBPassword:     get("DB_PASSWORD", ""),
		DBName:         get("DB_NAME", ""),
		DBSSL:          isTrue(get("DB_SSL", "false")),
		DBSync:         isTrue(get("DB_SYNC", "false")),
		DBLogging:      isTrue(get("DB_LOGGING", "false")),
		DBMaxOpenConns: maxOpen,

		JWTSecret:    get("JWT_SECRET", ""),
		JWTExpiresIn: jwtTTL,

		ProductServiceURL: strings.TrimRight(get("PRODUCT_SERVICE_URL", ""), "/"),
		ProductCacheTTL:   cacheTTL,
		RedisURL:          get("REDIS_URL", ""),

		KafkaBrokers:    splitList(get("KAFKA_BROKERS", "")),
		KafkaOrderTopic: get("KAFKA_ORDER_TOPIC", "order.events"),

		OTLPEndpoint: get("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServiceName:  get("SERVICE_NAME", "cart-service"),
	}

	return cfg, nil
}

// DATABASE_URLかDB_HOST/DB_USERNAME/DB_NAME
func (c Config) validateDB() error {
	if c.DatabaseURL != "" {
		return nil
	}
	if c.DBHost == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.DBUser == "" {
		return fmt.Errorf("DB_USERNAME is required")
	}
	if c.DBName == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	return nil
}

// DSNはpostgres://形式の接続文字列を返す（pgxとmigrateの両方で使う）
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}

	ssl := "disable"
	if c.DBSSL {
		ssl = "require"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + ssl,
	}
	return u.String()
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func atoi(v, key string) (int, error) {
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func duration(v, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}

func parseLevel(v string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(v)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL must be debug|info|warn|error: %w", err)
	}
	return l, nil
}

func isTrue(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
