package configs

import (
	"fmt"
	"os"
)

type Config struct {
	AppPort string

	DBHost        string
	DBPort        string
	DBUser        string
	DBPass        string
	DBName        string
	DBReplicaHost string

	RedisHost string
	RedisPort string
	RedisPass string

	KafkaBrokers   string
	PostsTopic     string
	PointsTopic    string
	PointsGroupID  string
	ConsumeEnabled bool
	AutoMigrate    bool

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3UseSSL    bool

	JWTSecret string
}

func LoadConfig() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", ":8080"),

		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPass:        getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "ecolakbay"),
		DBReplicaHost: getEnv("DB_REPLICA_HOST", ""),

		RedisHost: getEnv("REDIS_HOST", "localhost"),
		RedisPort: getEnv("REDIS_PORT", "6379"),
		RedisPass: getEnv("REDIS_PASSWORD", ""),

		KafkaBrokers:   getEnv("KAFKA_BOOTSTRAP_SERVERS", "kafka:9092"),
		PostsTopic:     getEnv("KAFKA_POSTS_TOPIC", "community.posts"),
		PointsTopic:    getEnv("KAFKA_POINTS_TOPIC", "community.points"),
		PointsGroupID:  getEnv("KAFKA_POINTS_GROUP_ID", "points-awarder"),
		ConsumeEnabled: getEnv("KAFKA_CONSUME", "true") == "true",
		AutoMigrate:    getEnv("AUTO_MIGRATE", "true") == "true",

		S3Endpoint:  getEnv("S3_ENDPOINT", "localhost:9000"),
		S3AccessKey: getEnv("S3_ACCESS_KEY", "minioadmin"),
		S3SecretKey: getEnv("S3_SECRET_KEY", "minioadmin"),
		S3Bucket:    getEnv("S3_BUCKET", "ecolakbay-media"),
		S3UseSSL:    getEnv("S3_USE_SSL", "false") == "true",

		JWTSecret: getEnv("JWT_SECRET", ""),
	}
}

func (c *Config) DSN() string {
	return c.dsnFor(c.DBHost)
}

func (c *Config) ReplicaDSN() string {
	if c.DBReplicaHost == "" {
		return ""
	}
	return c.dsnFor(c.DBReplicaHost)
}

func (c *Config) dsnFor(host string) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		host, c.DBPort, c.DBUser, c.DBPass, c.DBName,
	)
}

func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
