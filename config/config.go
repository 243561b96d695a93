package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

// DefaultAccessTokenTTL is used when jwt.accessTokenTTL is unset or not positive.
const DefaultAccessTokenTTL = 15 * time.Minute

// DefaultHTTPTimeout is used when server.HTTPTimeout is unset or not positive.
const DefaultHTTPTimeout = 60 * time.Second

// writeGrace leaves the server room to flush the timeout response.
const writeGrace = 5 * time.Second

var ErrMissingJWTConfig = errors.New("jwt secret key and algorithm must be configured")

type Config struct {
	Mode   string `mapstructure:"mode"`
	Server struct {
		HTTPPort        string        `mapstructure:"HTTPPort"`
		Timeout         time.Duration `mapstructure:"HTTPTimeout"`
		ShutdownTimeout time.Duration `mapstructure:"ShutdownTimeout"`
	} `mapstructure:"server"`
	Metrics struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"metrics"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowedOrigins"`
	} `mapstructure:"cors"`
	Repositories struct {
		Postgres struct {
			Host              string `mapstructure:"host"`
			Password          string `mapstructure:"password"`
			Port              string `mapstructure:"port"`
			Username          string `mapstructure:"username"`
			DB                string `mapstructure:"db"`
			SSLMODE           string `mapstructure:"SSLMODE"`
			MAXCONWAITINGTIME int    `mapstructure:"MAXCONWAITINGTIME"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	Auth struct {
		BcryptCost int `mapstructure:"bcryptCost"`
	} `mapstructure:"auth"`
	JWT JWTConfig `mapstructure:"jwt"`
}

// JWTConfig holds the process-wide token signing settings.
type JWTConfig struct {
	SecretKey      string        `mapstructure:"secretKey"`
	Algorithm      string        `mapstructure:"algorithm"`
	AccessTokenTTL time.Duration `mapstructure:"accessTokenTTL"`
	Issuer         string        `mapstructure:"issuer"`
}

var supportedAlgorithms = map[string]struct{}{
	"HS256": {},
	"HS384": {},
	"HS512": {},
}

// Validate reports whether the signing configuration is usable.
func (c JWTConfig) Validate() error {
	if c.SecretKey == "" || c.Algorithm == "" {
		return ErrMissingJWTConfig
	}
	if _, ok := supportedAlgorithms[c.Algorithm]; !ok {
		return fmt.Errorf("unsupported jwt algorithm %q", c.Algorithm)
	}
	return nil
}

// TTL returns the configured access token lifetime or the default.
func (c JWTConfig) TTL() time.Duration {
	if c.AccessTokenTTL <= 0 {
		return DefaultAccessTokenTTL
	}
	return c.AccessTokenTTL
}

// LogValue keeps the secret out of logs.
func (c JWTConfig) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("algorithm", c.Algorithm),
		slog.Duration("access_token_ttl", c.TTL()),
		slog.String("issuer", c.Issuer),
		slog.Bool("secret_key_set", c.SecretKey != ""),
	)
}

// RequestTimeout bounds each request handled by the API router.
func (c Config) RequestTimeout() time.Duration {
	if c.Server.Timeout <= 0 {
		return DefaultHTTPTimeout
	}
	return c.Server.Timeout
}

// WriteTimeout is the API server write deadline. It outlives the request
// timeout so the 503 from the timeout middleware still reaches the client.
func (c Config) WriteTimeout() time.Duration {
	return c.RequestTimeout() + writeGrace
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	// Environment wins over the file, e.g. SERVER_HTTPPORT or REPOSITORIES_POSTGRES_HOST.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range map[string]string{
		"jwt.secretKey":                  "JWT_SECRET_KEY",
		"jwt.algorithm":                  "JWT_ALGORITHM",
		"jwt.accessTokenTTL":             "JWT_ACCESS_TOKEN_TTL",
		"repositories.postgres.password": "POSTGRES_PASSWORD",
	} {
		if err = v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("failed to bind env %s: %w", env, err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	fmt.Println("Successfully loaded app configs...")
	return config, nil
}
