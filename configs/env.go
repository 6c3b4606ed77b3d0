package configs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adampresley/configinator"
	"github.com/joho/godotenv"
)

const (
	AlbumStoreMongo  = "mongo"
	AlbumStoreMemory = "memory"

	UsersDriverPostgres = "postgres"
	UsersDriverSQLite   = "sqlite"
)

type Config struct {
	Port         string `flag:"port" env:"PORT" default:"8080" description:"Port the HTTP server listens on"`
	DatabaseURL  string `flag:"dburl" env:"DATABASE_URL" default:"mongodb://localhost:27017/best-memories" description:"MongoDB connection string, the path names the database"`
	AlbumStore   string `flag:"albumstore" env:"ALBUM_STORE" default:"mongo" description:"Album backend. Valid values are 'mongo' and 'memory'"`
	ClientOrigin string `flag:"origin" env:"CLIENT_ORIGIN" default:"http://localhost:3000" description:"Origin allowed by CORS"`

	RequireAuth bool   `flag:"requireauth" env:"REQUIRE_AUTH" default:"true" description:"Protect album and object routes with JWT auth"`
	JWTSecret   string `flag:"jwtsecret" env:"JWT_SECRET" default:"" description:"HMAC secret used to sign auth tokens"`
	JWTExpiry   string `flag:"jwtexpiry" env:"JWT_EXPIRY" default:"7d" description:"Token lifetime, e.g. 7d or 12h"`

	UsersDBDriver string `flag:"usersdriver" env:"USERS_DB_DRIVER" default:"postgres" description:"User store driver. Valid values are 'postgres' and 'sqlite'"`
	DBHost        string `flag:"dbhost" env:"DB_HOST" default:"localhost" description:"PostgreSQL host"`
	DBUser        string `flag:"dbuser" env:"DB_USER" default:"postgres" description:"PostgreSQL user"`
	DBPassword    string `flag:"dbpassword" env:"DB_PASSWORD" default:"" description:"PostgreSQL password"`
	DBName        string `flag:"dbname" env:"DB_NAME" default:"best_memories" description:"PostgreSQL database"`
	DBPort        string `flag:"dbport" env:"DB_PORT" default:"5432" description:"PostgreSQL port"`
	UsersDBPath   string `flag:"usersdbpath" env:"USERS_DB_PATH" default:"./data/users.db" description:"SQLite file used when USERS_DB_DRIVER is sqlite"`

	AwsRegion          string `flag:"awsregion" env:"AWS_REGION" default:"us-east-1" description:"AWS region"`
	AwsAccessKeyId     string `flag:"awsaccesskeyid" env:"AWS_ACCESS_KEY_ID" default:"" description:"AWS access key ID"`
	AwsSecretAccessKey string `flag:"awssecretaccesskey" env:"AWS_SECRET_ACCESS_KEY" default:"" description:"AWS secret access key"`
	AwsEndpointUrl     string `flag:"awsep" env:"AWS_ENDPOINT_URL" default:"" description:"Custom S3 endpoint (LocalStack, MinIO)"`
	S3Bucket           string `flag:"bucket" env:"S3_BUCKET" default:"best-memories" description:"S3 bucket for media"`
	S3URL              string `flag:"s3url" env:"S3_URL" default:"" description:"Public URL prefix of the bucket"`

	RedisURL      string `flag:"redisurl" env:"REDIS_URL" default:"" description:"Redis URL for album events, empty disables them"`
	EventsChannel string `flag:"eventschannel" env:"EVENTS_CHANNEL" default:"best-memories:albums" description:"Redis channel album events are published to"`

	LogLevel  string `flag:"loglevel" env:"LOG_LEVEL" default:"info" description:"The log level to use. Valid values are 'debug', 'info', 'warn', and 'error'"`
	LogFormat string `flag:"logformat" env:"LOG_FORMAT" default:"text" description:"Log output format, 'text' or 'json'"`
}

// LoadConfig reads .env (when present) into the environment and then resolves flags,
// environment variables and defaults.
func LoadConfig() Config {
	_ = godotenv.Load()

	config := Config{}
	configinator.Behold(&config)
	return config
}

func (c Config) Validate() error {
	var errs []error

	if c.RequireAuth && c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required when REQUIRE_AUTH is enabled"))
	}
	switch c.AlbumStore {
	case AlbumStoreMongo, AlbumStoreMemory:
	default:
		errs = append(errs, fmt.Errorf("ALBUM_STORE must be %q or %q, got %q", AlbumStoreMongo, AlbumStoreMemory, c.AlbumStore))
	}
	switch c.UsersDBDriver {
	case UsersDriverPostgres, UsersDriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("USERS_DB_DRIVER must be %q or %q, got %q", UsersDriverPostgres, UsersDriverSQLite, c.UsersDBDriver))
	}
	if strings.TrimSpace(c.Port) == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}

	return errors.Join(errs...)
}
