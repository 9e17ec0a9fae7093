package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Host                string
	Port                int
	AllowOrigins        []string
	LogLevel            string
	LogFile             string
	MaxUploadMB         int
	SimilarityThreshold float64
	UploadDir           string
	SessionTTLMin       int
}

func Load() Config {
	port, _ := strconv.Atoi(getenv("PORT", "8082"))
	mb, _ := strconv.Atoi(getenv("MAX_UPLOAD_MB", "50"))
	ttl, _ := strconv.Atoi(getenv("SESSION_TTL_MIN", "60"))
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")
	return Config{
		Host:                getenv("HOST", "127.0.0.1"),
		Port:                port,
		AllowOrigins:        origins,
		LogLevel:            getenv("LOG_LEVEL", "info"),
		LogFile:             getenv("LOG_FILE", "logs/pbf-price-service.log"),
		MaxUploadMB:         mb,
		SimilarityThreshold: getenvFloat("SIMILARITY_THRESHOLD", 0.8),
		UploadDir:           getenv("UPLOAD_DIR", ""),
		SessionTTLMin:       ttl,
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvFloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
