// @title           GovStack Chat & Indexing API
// @version         1.0
// @description     RAG chat over crawled government content with incremental vector indexing
// @termsOfService  http://swagger.io/terms/

// @contact.name    me lol
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/akolanti/GovStackAPI/internal/chat"
	"github.com/akolanti/GovStackAPI/internal/config"
	"github.com/akolanti/GovStackAPI/internal/data/sqlstore"
	"github.com/akolanti/GovStackAPI/internal/data/store"
	jobmodel "github.com/akolanti/GovStackAPI/internal/domain/jobModel"
	"github.com/akolanti/GovStackAPI/internal/handlers"
	"github.com/akolanti/GovStackAPI/internal/job"
	"github.com/akolanti/GovStackAPI/internal/rag/agent/gemini"
	"github.com/akolanti/GovStackAPI/internal/rag/embedding"
	"github.com/akolanti/GovStackAPI/internal/rag/embedding/googleEmbedding"
	"github.com/akolanti/GovStackAPI/internal/rag/embedding/openaiEmbedding"
	"github.com/akolanti/GovStackAPI/internal/rag/indexer"
	"github.com/akolanti/GovStackAPI/internal/rag/vectorDB/qdrantDB"
	"github.com/akolanti/GovStackAPI/internal/server"
	"github.com/akolanti/GovStackAPI/internal/session"
	"github.com/akolanti/GovStackAPI/internal/worker"
	"github.com/akolanti/GovStackAPI/pkg/logger_i"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()
	runtime := config.LoadRuntime()

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//relational source of truth
	sqlStore, err := sqlstore.Open(runtime.DataDir)
	if err != nil {
		logger.Error("Could not open the relational store", "error", err)
		return
	}
	defer sqlStore.Close()
	recordStore := sqlStore.RecordStore()
	sessionService := session.NewService(sqlStore.SessionStore())

	//init job service and job store
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
	}
	logger.Info("Starting job service")

	if redisJobStore := store.GetRedisJobStore(serviceContext, runtime.RedisAddr); redisJobStore != nil {
		serviceConfig.JobStore = redisJobStore
	} else {
		logger.Error("Redis job store is offline, falling back to memory")
		serviceConfig.JobStore = store.InitInMemoryJobStore()
	}
	service := job.InitJobService(serviceConfig)

	vectorDatabase := qdrantDB.GetQdrantClient(serviceContext, runtime.QdrantHost, runtime.QdrantPort)

	var embeddingService embedding.Embedder
	if runtime.EmbeddingProvider == "openai" {
		embeddingService = openaiEmbedding.GetOpenAIEmbeddingClient(serviceContext, config.OpenAIEmbeddingModel, runtime.OpenAIAPIKey)
	} else {
		embeddingService = googleEmbedding.GetGoogleEmbeddingClient(serviceContext, config.GoogleEmbeddingModel, runtime.GoogleAPIKey)
	}

	var agentProvider = gemini.GetGeminiAgent(serviceContext, config.GeminiModelName, runtime.GoogleAPIKey, embeddingService, vectorDatabase)

	if vectorDatabase == nil || embeddingService == nil || agentProvider == nil {
		logger.Error("One or more external services failed to initialize. Shutting down.")
		logger.Debug("Available services : ", "VectorDB", vectorDatabase != nil, "EmbeddingService", embeddingService != nil, "Agent", agentProvider != nil)
		return
	}

	synchronizer := indexer.NewSynchronizer(recordStore, embeddingService, vectorDatabase)
	orchestrator := chat.NewOrchestrator(sessionService, agentProvider)

	handlers.InitHandlers(handlers.Services{
		Jobs:     service,
		Chat:     orchestrator,
		Sessions: sessionService,
		Records:  recordStore,
	})

	//init worker pool
	worker.InitServices(service, synchronizer, recordStore)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
