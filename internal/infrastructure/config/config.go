package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	TransportHTTP   = "http"
	TransportGRPC   = "grpc"
	TransportMemory = "memory"
)

type Config struct {
	Env         string
	HTTPServer  HTTPServer
	PostService PostService
	Identity    Identity
	Session     Session
	Page        Page
	Prometheus  Prometheus
	Redis       Redis
}

type HTTPServer struct {
	Address        string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxUploadBytes int64 `validate:"gt=0"`
}

type PostService struct {
	Transport   string `validate:"oneof=http grpc memory"`
	BaseURL     string
	Timeout     time.Duration
	GRPCAddress string
	GRPCPort    int
}

type Identity struct {
	JWTSecret string
}

type Session struct {
	CookieName    string        `validate:"required"`
	TTL           time.Duration `validate:"gt=0"`
	SweepInterval time.Duration `validate:"gt=0"`
}

type Page struct {
	TimeLayout string
	TimeZone   string
}

type Prometheus struct {
	Address string
	Port    int
}

type Redis struct {
	Enabled  bool
	Address  string
	Port     int
	Password string
	DB       int
	PoolSize int
	TTL      time.Duration
}

func MustLoad() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Error reading .env file: %s", err)
	}

	cfg, err := Load("./config")
	if err != nil {
		log.Printf("Error reading config file: %s", err)
		os.Exit(1)
	}
	return cfg
}

// Load reads config.yaml from path. A missing file leaves the defaults and
// environment overrides in place.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	config := &Config{
		Env: v.GetString("env"),
		HTTPServer: HTTPServer{
			Address:        v.GetString("http_server.address"),
			Port:           v.GetInt("http_server.port"),
			ReadTimeout:    v.GetDuration("http_server.read_timeout"),
			WriteTimeout:   v.GetDuration("http_server.write_timeout"),
			MaxUploadBytes: v.GetInt64("http_server.max_upload_bytes"),
		},
		PostService: PostService{
			Transport:   strings.ToLower(v.GetString("post_service.transport")),
			BaseURL:     strings.TrimRight(v.GetString("post_service.base_url"), "/"),
			Timeout:     v.GetDuration("post_service.timeout"),
			GRPCAddress: v.GetString("post_service.grpc_address"),
			GRPCPort:    v.GetInt("post_service.grpc_port"),
		},
		Identity: Identity{
			JWTSecret: v.GetString("identity.jwt_secret"),
		},
		Session: Session{
			CookieName:    v.GetString("session.cookie_name"),
			TTL:           v.GetDuration("session.ttl"),
			SweepInterval: v.GetDuration("session.sweep_interval"),
		},
		Page: Page{
			TimeLayout: v.GetString("page.time_layout"),
			TimeZone:   v.GetString("page.time_zone"),
		},
		Prometheus: Prometheus{
			Address: v.GetString("prometheus.address"),
			Port:    v.GetInt("prometheus.port"),
		},
		Redis: Redis{
			Enabled:  v.GetBool("redis.enabled"),
			Address:  v.GetString("redis.address"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			PoolSize: v.GetInt("redis.pool_size"),
			TTL:      v.GetDuration("redis.ttl"),
		},
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")

	v.SetDefault("http_server.address", "0.0.0.0")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.read_timeout", 10*time.Second)
	v.SetDefault("http_server.write_timeout", 30*time.Second)
	v.SetDefault("http_server.max_upload_bytes", 10<<20)

	v.SetDefault("post_service.transport", TransportHTTP)
	v.SetDefault("post_service.base_url", "http://localhost:5000/api")
	v.SetDefault("post_service.timeout", 0)
	v.SetDefault("post_service.grpc_address", "post-service")
	v.SetDefault("post_service.grpc_port", 50053)

	v.SetDefault("identity.jwt_secret", "")

	v.SetDefault("session.cookie_name", "post_page_session")
	v.SetDefault("session.ttl", 30*time.Minute)
	v.SetDefault("session.sweep_interval", time.Minute)

	v.SetDefault("page.time_layout", "02 Jan 2006, 15:04:05")
	v.SetDefault("page.time_zone", "Local")

	v.SetDefault("prometheus.address", "0.0.0.0")
	v.SetDefault("prometheus.port", 9104)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.address", "redis")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.ttl", 30*time.Second)
}
