package config

import (
	"os"
	"strconv"
)

// Runtime holds the settings resolved from the environment once at startup.
// It is constructed in main and injected into the services that need it;
// nothing mutates it after that.
type Runtime struct {
	GoogleAPIKey      string
	OpenAIAPIKey      string
	EmbeddingProvider string //"google" or "openai"
	DataDir           string
	RedisAddr         string
	QdrantHost        string
	QdrantPort        int
}

func LoadRuntime() Runtime {
	rt := Runtime{
		GoogleAPIKey:      os.Getenv("GOOGLE_API_KEY"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		EmbeddingProvider: os.Getenv("EMBEDDING_PROVIDER"),
		DataDir:           os.Getenv("DATA_DIR"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		QdrantHost:        os.Getenv("QDRANT_HOST"),
	}
	if rt.EmbeddingProvider == "" {
		rt.EmbeddingProvider = "google"
	}
	if rt.DataDir == "" {
		rt.DataDir = DefaultDataDir
	}
	if rt.RedisAddr == "" {
		rt.RedisAddr = RedisAddr
	}
	if rt.QdrantHost == "" {
		rt.QdrantHost = QdrantHost
	}
	port, err := strconv.Atoi(os.Getenv("QDRANT_PORT"))
	if err != nil || port == 0 {
		port = QdrantGrpcPort
	}
	rt.QdrantPort = port
	return rt
}
