package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	EmbeddingOutputDimensionality int32 = 1536

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 30 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	//vectorDB
	QdrantHost             = "localhost"
	QdrantGrpcPort         = 6334
	QdrantUseTLS           = false
	QdrantPoolSize         = 1
	QdrantKeepAliveTimeout = 30 * time.Second
	RetrievalTopK          = 3

	//collection chat retrieval falls back to when the request names none
	DefaultCollectionID = "gov-services"

	//where the sqlite database lives when DATA_DIR is unset; an empty
	//dir would silently open the in-memory database meant for tests
	DefaultDataDir = "./data"

	//model/agent
	GeminiModelName      = "gemini-2.5-flash-lite-preview-09-2025"
	GoogleEmbeddingModel = "gemini-embedding-001"
	OpenAIEmbeddingModel = "text-embedding-3-small"

	ModelTemperature float32 = 0.7
	SystemPrompt             = "You are a helpful assistant for government services information. " +
		"Answer only from the supplied context passages and cite the pages you used. " +
		"If the context does not contain the answer, say you don't know."

	//indexing synchronizer
	ChunkSize          = 1024
	ChunkOverlap       = 200
	EmbedSubBatchSize  = 100
	MarkIndexedBatch   = 100
	IndexingJobTimeout = 10 * time.Minute

	//chat path
	MaxHistoryMessages = 20
	ChatTimeout        = 60 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	RedisPassword = ""
	NoAuthBypass  = true
	AuthToken     = ""

	//redis has 16 DB we can use
	RedisJobStore = 0

	RedisJobStoreTTL = 24 * time.Hour
)
