package constants

import (
	"os"
	"strings"
	"time"
)

func getEnv(key string, fallback string) string {
	val := os.Getenv(key)
	if val != "" {
		return val
	}
	return fallback
}

// GetMediaDir is the root walked by the catalog command.
func GetMediaDir() string {
	return getEnv("MEDIA_PATH", ".")
}

func GetDynamoEndpoint() string {
	return getEnv("DYNAMODB_ENDPOINT", "http://localhost:8000")
}

func GetDynamoRegion() string {
	return getEnv("DYNAMODB_REGION", "localhost")
}

func GetHeaderTable() string {
	return getEnv("HEADER_TABLE", "mthd-headers")
}

func GetListenAddr() string {
	return getEnv("LISTEN_ADDR", ":8080")
}

func GetCorsOrigins() []string {
	var res []string
	for _, origin := range strings.Split(getEnv("CORS_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			res = append(res, origin)
		}
	}
	return res
}

// DynamoDB rejects batch writes larger than this
const MaxBatchWrite = 25

const WatchDebounce = 500 * time.Millisecond

// NOTE: serve rejects bodies above this, a header needs only 14 bytes but
// clients usually post the whole file
const MaxBodySize = 16 * 1024 * 1024
