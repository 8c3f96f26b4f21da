package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"nco-classifier-be/internal/config"
	"nco-classifier-be/internal/controller"
	"nco-classifier-be/internal/pkg/logger"
	"nco-classifier-be/internal/repository/checkpoint"
	"nco-classifier-be/internal/repository/unitofwork"
	"nco-classifier-be/internal/service"
	"nco-classifier-be/pkg/classifier/analyzer"
	"nco-classifier-be/pkg/classifier/expander"
	"nco-classifier-be/pkg/classifier/retriever"
	"nco-classifier-be/pkg/classifier/workflow"
	"nco-classifier-be/pkg/database"
	"nco-classifier-be/pkg/embedding"
	"nco-classifier-be/pkg/llm"
	"nco-classifier-be/pkg/llm/factory"

	pktNats "nco-classifier-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SessionController controller.ISessionController
	ChatController    controller.IChatController
	HealthController  controller.IHealthController

	// Background services, started by main
	CleanupConsumer   service.IConsumerService
	EventAuditService service.IEventAuditService
	IdleSweeper       *service.IdleThreadSweeper

	Logger logger.ILogger

	closers []func()
}

// Close releases the connections opened by NewContainer.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config) (*Container, error) {
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c := &Container{Logger: sysLogger}

	// 2. In-process bus for thread cleanup
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. Infrastructure
	var eventPublisher service.EventPublisher
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			eventPublisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}

		natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		} else {
			c.closers = append(c.closers, natsSub.Close)
			auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogPath)
			c.EventAuditService = service.NewEventAuditService(natsSub, auditLogger)
		}
	} else {
		log.Printf("[INFO] NATS_URL not set, domain events are disabled")
	}

	checks := map[string]controller.Pinger{
		"database": controller.PingerFunc(func(ctx context.Context) error { return database.Ping(ctx, db) }),
	}

	store, err := newStateStore(ctx, cfg, uowFactory, checks, c)
	if err != nil {
		return nil, err
	}

	// 4. Capabilities
	embeddingProvider, err := embedding.NewEmbeddingProvider(ctx, embedding.Config{
		Provider:      cfg.Ai.EmbeddingProvider,
		OllamaBaseURL: cfg.Ai.OllamaBaseURL,
		OllamaModel:   cfg.Ai.OllamaEmbeddingModel,
		GeminiAPIKey:  cfg.Keys.GoogleGemini,
		GeminiModel:   cfg.Ai.GeminiEmbeddingModel,
	})
	if err != nil {
		return nil, fmt.Errorf("init embedding provider: %w", err)
	}
	log.Printf("[INFO] Using Embedding Provider: %s", cfg.Ai.EmbeddingProvider)

	llmProvider, err := factory.NewLLMProvider(ctx, factory.Config{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  cfg.Ai.LLMBaseURL,
		APIKey:   cfg.LLMAPIKey(),
	})
	if err != nil {
		return nil, fmt.Errorf("init LLM provider: %w", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	traceLogger := logger.NewIsolatedLogger(cfg.App.LLMTraceLogPath)
	tracedLLM := llm.NewTracingProvider(llmProvider, traceLogger)

	// 5. Workflow
	corpus := service.NewOccupationCorpus(uowFactory, embeddingProvider)
	controllerWorkflow := workflow.NewController(
		expander.New(tracedLLM, expander.Config{
			Temperature:  cfg.Ai.LLMTemperature,
			StrictSchema: cfg.Ai.LLMStrictSchema,
		}),
		retriever.New(corpus, cfg.Ai.RetrievalTopK),
		analyzer.New(tracedLLM, sysLogger, analyzer.Config{
			Temperature:  cfg.Ai.LLMTemperature,
			StrictSchema: cfg.Ai.LLMStrictSchema,
		}),
		store,
		sysLogger,
	)

	// 6. Services
	publisherService := service.NewPublisherService(pubSub, cfg.App.ThreadCleanupTopic)
	threadRetirer := service.NewThreadRetirer(publisherService)
	c.CleanupConsumer = service.NewCleanupConsumer(pubSub, cfg.App.ThreadCleanupTopic, store, eventPublisher, sysLogger)

	sessionService := service.NewSessionService(uowFactory, threadRetirer, service.SessionTokenConfig{
		Secret: cfg.Auth.JWTSecret,
		TTL:    time.Duration(cfg.Auth.SessionTokenTTLHours) * time.Hour,
	}, sysLogger)
	chatService := service.NewChatService(uowFactory, controllerWorkflow, threadRetirer, eventPublisher,
		time.Duration(cfg.App.ChatTimeoutSeconds)*time.Second, sysLogger)

	c.IdleSweeper = service.NewIdleThreadSweeper(
		sessionService,
		time.Duration(cfg.Store.IdleThreadHours)*time.Hour,
		time.Duration(cfg.Store.SweepIntervalMins)*time.Minute,
		sysLogger,
	)

	// 7. Controllers
	c.SessionController = controller.NewSessionController(sessionService)
	c.ChatController = controller.NewChatController(chatService)
	c.HealthController = controller.NewHealthController(checks)

	return c, nil
}

func newStateStore(
	ctx context.Context,
	cfg *config.Config,
	uowFactory unitofwork.RepositoryFactory,
	checks map[string]controller.Pinger,
	c *Container,
) (workflow.StateStore, error) {
	ttl := time.Duration(cfg.Store.StateTTLHours) * time.Hour

	switch cfg.Store.Backend {
	case "", "postgres":
		log.Printf("[INFO] Using state store: POSTGRES")
		return checkpoint.NewPostgresStore(uowFactory), nil
	case "memory":
		log.Printf("[INFO] Using state store: MEMORY (state is lost on restart)")
		return checkpoint.NewMemoryStore(ttl), nil
	case "redis":
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		c.closers = append(c.closers, func() { _ = rdb.Close() })
		checks["redis"] = controller.PingerFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })

		log.Printf("[INFO] Using state store: REDIS (ttl %s)", ttl)
		return checkpoint.NewRedisStore(rdb, ttl), nil
	default:
		return nil, fmt.Errorf("unsupported state store: %s", cfg.Store.Backend)
	}
}
