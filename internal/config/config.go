package config

import (
	"errors"
	"flag"
	"github.com/caarlos0/env/v8"
	"github.com/joho/godotenv"
	"io/fs"
	"os"
	"time"
)

type Config interface {
	ServerAddress() string
	DatabaseURI() string
	MetadataServiceAddress() string
	MetadataKey() string
	HMACKey() string
	RedisAddress() string
	RedisPassword() string
	RedisDB() int
	BrandTablePath() string
	LookupTimeout() time.Duration
	CacheTTL() time.Duration
	LogLevel() string
}

// Builder собирает конфигурацию из файла .env, флагов командной строки и
// переменных окружения. Значения из источника, загруженного позже, имеют приоритет.
type Builder struct {
	parameters  *parameters
	arguments   []string
	dotEnvFiles []string
	err         error
}

type parameters struct {
	ServerAddress          string        `env:"RUN_ADDRESS"`
	DatabaseURI            string        `env:"DATABASE_URI"`
	MetadataServiceAddress string        `env:"METADATA_SERVICE_ADDRESS"`
	MetadataKey            string        `env:"METADATA_KEY"`
	HMACKey                string        `env:"HMAC_KEY"`
	RedisAddress           string        `env:"REDIS_ADDRESS"`
	RedisPassword          string        `env:"REDIS_PASSWORD"`
	RedisDB                int           `env:"REDIS_DB"`
	BrandTablePath         string        `env:"BRAND_TABLE_PATH"`
	LookupTimeout          time.Duration `env:"LOOKUP_TIMEOUT"`
	CacheTTL               time.Duration `env:"CACHE_TTL"`
	LogLevel               string        `env:"LOG_LEVEL"`
}

const (
	defaultServerAddress = "localhost:8080"
	defaultLookupTimeout = 10 * time.Second
	defaultCacheTTL      = 24 * time.Hour
	defaultLogLevel      = "info"
)

func NewBuilder() *Builder {
	return &Builder{
		parameters: &parameters{
			ServerAddress: defaultServerAddress,
			LookupTimeout: defaultLookupTimeout,
			CacheTTL:      defaultCacheTTL,
			LogLevel:      defaultLogLevel,
		},
		arguments:   os.Args[1:],
		dotEnvFiles: []string{".env"},
	}
}

func (b *Builder) SetDefaultServerAddress(addr string) *Builder {
	b.parameters.ServerAddress = addr

	return b
}

// LoadDotEnv загружает переменные окружения из файлов .env. Отсутствующие файлы
// пропускаются, уже заданные переменные окружения не перезаписываются.
func (b *Builder) LoadDotEnv() *Builder {
	for _, f := range b.dotEnvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			b.setErr(err)
		}
	}

	return b
}

func (b *Builder) LoadEnv() *Builder {
	b.setErr(env.Parse(b.parameters))

	return b
}

func (b *Builder) LoadFlags() *Builder {
	flags := flag.NewFlagSet("cardcheck", flag.ContinueOnError)
	flags.StringVar(&b.parameters.ServerAddress, "a", b.parameters.ServerAddress, "адрес и порт запуска сервиса HTTP-сервера")
	flags.StringVar(&b.parameters.DatabaseURI, "d", b.parameters.DatabaseURI, "адрес подключения к PostgreSQL")
	flags.StringVar(&b.parameters.MetadataServiceAddress, "m", b.parameters.MetadataServiceAddress, "адрес сервиса метаданных карт")
	flags.StringVar(&b.parameters.RedisAddress, "r", b.parameters.RedisAddress, "адрес Redis для общего кеша диапазонов BIN")
	flags.StringVar(&b.parameters.BrandTablePath, "b", b.parameters.BrandTablePath, "путь к YAML-файлу с таблицей платежных систем")
	b.setErr(flags.Parse(b.arguments))

	return b
}

func (b *Builder) Build() (Config, error) {
	return b, b.err
}

func (b *Builder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *Builder) ServerAddress() string {
	return b.parameters.ServerAddress
}

func (b *Builder) DatabaseURI() string {
	return b.parameters.DatabaseURI
}

func (b *Builder) MetadataServiceAddress() string {
	return b.parameters.MetadataServiceAddress
}

func (b *Builder) MetadataKey() string {
	return b.parameters.MetadataKey
}

func (b *Builder) HMACKey() string {
	return b.parameters.HMACKey
}

func (b *Builder) RedisAddress() string {
	return b.parameters.RedisAddress
}

func (b *Builder) RedisPassword() string {
	return b.parameters.RedisPassword
}

func (b *Builder) RedisDB() int {
	return b.parameters.RedisDB
}

func (b *Builder) BrandTablePath() string {
	return b.parameters.BrandTablePath
}

func (b *Builder) LookupTimeout() time.Duration {
	return b.parameters.LookupTimeout
}

func (b *Builder) CacheTTL() time.Duration {
	return b.parameters.CacheTTL
}

func (b *Builder) LogLevel() string {
	return b.parameters.LogLevel
}
