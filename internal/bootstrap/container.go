package bootstrap

import (
	"context"
	"log"
	"time"

	"persona-replicator-be/internal/config"
	"persona-replicator-be/internal/constant"
	"persona-replicator-be/internal/controller"
	"persona-replicator-be/internal/pkg/logger"
	"persona-replicator-be/internal/pkg/serverutils"
	"persona-replicator-be/internal/repository/cache"
	"persona-replicator-be/internal/repository/contract"
	"persona-replicator-be/internal/repository/memory"
	"persona-replicator-be/internal/repository/unitofwork"
	"persona-replicator-be/internal/service"
	"persona-replicator-be/pkg/events"
	"persona-replicator-be/pkg/llm"
	"persona-replicator-be/pkg/llm/factory"
	pktNats "persona-replicator-be/pkg/nats"
	"persona-replicator-be/pkg/twin"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	PersonaController  controller.IPersonaController
	ReplyController    controller.IReplyController
	ChatController     controller.IChatController
	ActivityController controller.IActivityController
	ThreadController   controller.IThreadController
	MessageController  controller.IMessageController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger        *logger.ZapLogger
	ProviderName  string
	LLMConfigured bool

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.IsProduction())
	c := &Container{Logger: sysLogger}

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. LLM provider; missing credentials leave the engine in fallback-only mode
	var llmProvider llm.LLMProvider
	provider, err := factory.NewLLMProvider(context.Background(), factory.ProviderConfig{
		Provider:  cfg.Ai.LLMProvider,
		Model:     cfg.Ai.LLMModel,
		OpenAIKey: cfg.Keys.OpenAI,
		GeminiKey: cfg.Keys.GoogleGemini,
		OllamaURL: cfg.Ai.OllamaBaseURL,
		HFKey:     cfg.Keys.HuggingFace,
		HFBaseURL: cfg.Ai.HuggingFaceBaseURL,
	})
	if err != nil {
		sysLogger.Warn("BOOTSTRAP", "LLM provider unavailable, replies will use fallback templates", map[string]interface{}{
			"provider": cfg.Ai.LLMProvider,
			"error":    err.Error(),
		})
	} else {
		llmProvider = provider
		sysLogger.Info("BOOTSTRAP", "LLM provider ready", map[string]interface{}{
			"provider": provider.Name(),
			"model":    cfg.Ai.LLMModel,
		})
	}

	// 4. Infrastructure
	drafts := newDraftRepository(cfg, sysLogger, c)

	var eventPublisher events.Publisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		sysLogger.Warn("BOOTSTRAP", "NATS unavailable, activity events stay local", map[string]interface{}{"error": err.Error()})
	} else {
		eventPublisher = natsPub
		c.closers = append(c.closers, natsPub.Close)
	}

	// 5. Reply pipeline
	engineCfg := twin.DefaultConfig()
	engineCfg.Timeout = cfg.Ai.Timeout()
	engineCfg.StrictLabels = cfg.Reply.StrictLabels
	engine := twin.NewEngine(llmProvider, service.NewSampleSource(uowFactory), sysLogger, engineCfg)
	c.ProviderName = engine.ProviderName()
	c.LLMConfigured = engine.Configured()

	// 6. Services
	publisherService := service.NewPublisherService(constant.ActivityTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, constant.ActivityTopic, uowFactory, eventPublisher, sysLogger)

	activityService := service.NewActivityService(uowFactory, publisherService, sysLogger)
	metricsService := service.NewMetricsService(uowFactory, sysLogger)
	personaService := service.NewPersonaService(uowFactory, activityService, sysLogger)
	replyService := service.NewReplyService(
		uowFactory,
		engine,
		drafts,
		cfg.Reply.DraftTTL(),
		metricsService,
		activityService,
		sysLogger,
	)
	chatService := service.NewChatService(uowFactory, engine, llmProvider, metricsService, sysLogger)
	threadService := service.NewThreadService(uowFactory, sysLogger)
	messageService := service.NewMessageService(uowFactory, replyService, metricsService, activityService, sysLogger)

	// 7. Controllers
	auth := serverutils.JwtMiddleware(cfg.Keys.JWTSecret)
	c.PersonaController = controller.NewPersonaController(personaService, auth, sysLogger)
	c.ReplyController = controller.NewReplyController(replyService, auth)
	c.ChatController = controller.NewChatController(chatService, auth)
	c.ActivityController = controller.NewActivityController(activityService, metricsService, auth)
	c.ThreadController = controller.NewThreadController(threadService, auth)
	c.MessageController = controller.NewMessageController(messageService, auth)

	return c
}

// newDraftRepository prefers Redis and falls back to process memory.
func newDraftRepository(cfg *config.Config, sysLogger logger.ILogger, c *Container) contract.ReplyDraftRepository {
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		sysLogger.Warn("BOOTSTRAP", "Redis unavailable, reply drafts kept in memory", map[string]interface{}{"error": err.Error()})
		return memory.NewReplyDraftRepository(cfg.Reply.DraftTTL())
	}

	c.closers = append(c.closers, func() { _ = rdb.Close() })
	return cache.NewReplyDraftRepository(rdb)
}

// Close releases broker and cache connections, newest first.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
