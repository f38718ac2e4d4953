package bootstrap

import (
	"log"
	"time"

	"ai-filepilot-be/internal/config"
	"ai-filepilot-be/internal/controller"
	"ai-filepilot-be/internal/executor"
	"ai-filepilot-be/internal/pkg/logger"
	"ai-filepilot-be/internal/repository/implementation"
	"ai-filepilot-be/internal/repository/unitofwork"
	"ai-filepilot-be/internal/service"
	"ai-filepilot-be/pkg/embedding"
	"ai-filepilot-be/pkg/embedding/jina"
	"ai-filepilot-be/pkg/intent"
	"ai-filepilot-be/pkg/llm/factory"
	"ai-filepilot-be/pkg/opstore"
	"ai-filepilot-be/pkg/retrieval"

	pktNats "ai-filepilot-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	OperationController controller.IOperationController
	DocumentController  controller.IDocumentController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Infrastructure handles that need explicit shutdown
	NatsPublisher *pktNats.Publisher
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "openai":
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Ai.OpenAIBaseURL, cfg.Keys.OpenAI, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
	case "gemini":
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.Gemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	case "jina":
		embeddingProvider = jina.NewJinaProvider(cfg.Keys.Jina)
		log.Printf("[INFO] Using Embedding Provider: JINA")
	default:
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	}

	llmBaseURL := cfg.Ai.OllamaBaseURL
	llmAPIKey := cfg.Keys.OpenAI
	switch cfg.Ai.LLMProvider {
	case "openai":
		llmBaseURL = cfg.Ai.OpenAIBaseURL
	case "huggingface":
		llmBaseURL = ""
		llmAPIKey = cfg.Keys.HuggingFace
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL,
		llmAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Staged Operation Store
	var store opstore.Store
	if opt, err := redis.ParseURL(cfg.App.RedisURL); err == nil {
		store = opstore.NewRedisStore(redis.NewClient(opt))
	} else {
		log.Printf("[WARN] Invalid REDIS_URL (%v), falling back to in-memory operation store", err)
		store = opstore.NewMemoryStore()
	}

	// 5. NATS (optional; lifecycle events are best effort)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// 6. Intent Pipeline and Retrieval
	intentRouter := intent.NewRouter(llmProvider, log.Default())
	intentExtractor := intent.NewExtractor(llmProvider, log.Default())

	chunkRepo := implementation.NewDocumentChunkRepository(db)
	retriever := retrieval.NewRetriever(embeddingProvider, chunkRepo, retrieval.Config{
		TopK:            cfg.Search.TopK,
		MaxResults:      cfg.Search.MaxResults,
		SimilarityFloor: cfg.Search.SimilarityFloor,
		MMRLambda:       cfg.Search.MMRLambda,
	}, log.Default())

	ttl := time.Duration(cfg.Ops.TTLMinutes) * time.Minute
	exec := executor.NewExecutor(uowFactory, retriever, llmProvider, sysLogger, ttl)

	// 7. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Keys.EmbedTopic)
	consumerService := service.NewConsumerService(pubSub, cfg.Keys.EmbedTopic, uowFactory, embeddingProvider, cfg.Ai.EmbeddingDim)
	operationService := service.NewOperationService(store, intentRouter, intentExtractor, exec, uowFactory, natsPub, sysLogger, ttl)
	documentService := service.NewDocumentService(uowFactory, publisherService)

	// 8. Controllers
	return &Container{
		OperationController: controller.NewOperationController(operationService),
		DocumentController:  controller.NewDocumentController(documentService),
		ConsumerService:     consumerService,
		NatsPublisher:       natsPub,
	}
}
