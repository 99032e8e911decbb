package bootstrap

import (
	"context"
	"fmt"
	"time"

	"smartnotes-be/internal/config"
	"smartnotes-be/internal/controller"
	"smartnotes-be/internal/pkg/logger"
	"smartnotes-be/internal/pkg/mailer"
	"smartnotes-be/internal/pkg/serverutils"
	"smartnotes-be/internal/pkg/token"
	"smartnotes-be/internal/repository/cache"
	"smartnotes-be/internal/repository/memory"
	"smartnotes-be/internal/repository/unitofwork"
	"smartnotes-be/internal/service"
	"smartnotes-be/pkg/embedding"
	"smartnotes-be/pkg/embedding/jina"
	"smartnotes-be/pkg/events"
	"smartnotes-be/pkg/llm/factory"
	pktNats "smartnotes-be/pkg/nats"
	"smartnotes-be/pkg/tagging"
	"smartnotes-be/pkg/transcription"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const module = "BOOTSTRAP"

type Container struct {
	Logger logger.ILogger

	NoteController     controller.INoteController
	NotebookController controller.INotebookController
	UserController     controller.IUserController
	OAuthController    controller.IOAuthController
	HealthController   controller.IHealthController

	ConsumerService service.IConsumerService

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) (*Container, error) {
	uowFactory := unitofwork.NewRepositoryFactory(db)
	tokens := token.NewManager(
		cfg.Auth.AccessTokenSecret,
		cfg.Auth.AccessTokenExpiry,
		cfg.Auth.RefreshTokenSecret,
		cfg.Auth.RefreshTokenExpiry,
	)
	c := &Container{Logger: sysLogger}

	// AI providers
	embeddingProvider, err := newEmbeddingProvider(cfg)
	if err != nil {
		return nil, err
	}
	sysLogger.Info(module, "Embedding provider selected", map[string]interface{}{
		"provider": cfg.Ai.EmbeddingProvider,
	})

	llmSettings := factory.Settings{
		LLMProvider:         cfg.Ai.LLMProvider,
		LLMModel:            cfg.Ai.LLMModel,
		OllamaBaseURL:       cfg.Ai.OllamaBaseURL,
		HuggingFaceKey:      cfg.Keys.HuggingFace,
		OpenAIKey:           cfg.Keys.OpenAI,
		SummarizerProvider:  cfg.Ai.SummarizerProvider,
		SummarizationModel:  cfg.Ai.SummarizationModel,
		ClassificationModel: cfg.Ai.ClassificationModel,
		SummaryChatModel:    cfg.Ai.SummaryChatModel,
	}
	summarizer, err := factory.NewSummarizer(llmSettings)
	if err != nil {
		return nil, err
	}
	tagger := tagging.NewTagger(factory.NewClassifier(llmSettings))

	transcriber, err := newTranscriber(cfg)
	if err != nil {
		return nil, err
	}

	// Infrastructure
	queryCache := cache.NewRedisQueryEmbeddingCache(c.connectRedis(cfg), cfg.Ai.QueryCacheTTL)
	eventPublisher := c.connectNats(cfg)

	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	var emailService mailer.IEmailService = mailer.NopEmailService{}
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.SenderName,
			cfg.App.ClientURL,
		)
	}

	// Services
	publisherService := service.NewPublisherService(cfg.Topics.ReembedNote, pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.Topics.ReembedNote, uowFactory, embeddingProvider, sysLogger)

	authService := service.NewAuthService(uowFactory, tokens, emailService, eventPublisher, sysLogger)
	userService := service.NewUserService(uowFactory)
	oauthService := service.NewOAuthService(uowFactory, cfg.Google, memory.NewOAuthStateRepository(), authService, sysLogger)
	notebookService := service.NewNotebookService(uowFactory, eventPublisher, sysLogger)
	noteService := service.NewNoteService(uowFactory, publisherService, eventPublisher, sysLogger)
	noteAIService := service.NewNoteAIService(
		uowFactory,
		embeddingProvider,
		summarizer,
		tagger,
		transcriber,
		queryCache,
		publisherService,
		sysLogger,
	)

	// Controllers
	auth := serverutils.JwtMiddleware(tokens, userService.Exists)
	cookies := controller.CookieSettings{
		AccessTTL:  cfg.Auth.AccessTokenExpiry,
		RefreshTTL: cfg.Auth.RefreshTokenExpiry,
		Secure:     cfg.App.IsProduction(),
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	c.NoteController = controller.NewNoteController(noteService, noteAIService, auth, cfg.Ai.MaxUploadBytes)
	c.NotebookController = controller.NewNotebookController(notebookService, auth)
	c.UserController = controller.NewUserController(authService, userService, auth, cookies)
	c.OAuthController = controller.NewOAuthController(oauthService, cookies, cfg.App.ClientURL)
	c.HealthController = controller.NewHealthController(sqlDB)

	return c, nil
}

// Close releases broker and cache connections in reverse order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func newEmbeddingProvider(cfg *config.Config) (embedding.EmbeddingProvider, error) {
	switch cfg.Ai.EmbeddingProvider {
	case "", "voyage":
		return embedding.WithMetrics("voyage", embedding.NewVoyageProvider(cfg.Keys.Voyage, cfg.Ai.EmbeddingModel)), nil
	case "ollama":
		return embedding.WithMetrics("ollama", embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)), nil
	case "jina":
		return embedding.WithMetrics("jina", jina.NewJinaProvider(cfg.Keys.Jina)), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Ai.EmbeddingProvider)
	}
}

func newTranscriber(cfg *config.Config) (transcription.Transcriber, error) {
	switch cfg.Ai.TranscriptionProvider {
	case "", "assemblyai":
		t := transcription.NewAssemblyAITranscriber(cfg.Keys.AssemblyAI, cfg.Ai.PollInterval, cfg.Ai.MaxPollAttempts)
		return transcription.WithMetrics("assemblyai", t), nil
	case "openai":
		return transcription.WithMetrics("openai", transcription.NewWhisperTranscriber(cfg.Keys.OpenAI, "")), nil
	default:
		return nil, fmt.Errorf("unsupported transcription provider: %s", cfg.Ai.TranscriptionProvider)
	}
}

// connectRedis returns nil when Redis is unreachable; search then runs
// without the query embedding cache.
func (c *Container) connectRedis(cfg *config.Config) *redis.Client {
	if cfg.App.RedisURL == "" {
		return nil
	}
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		c.Logger.Warn(module, "Invalid Redis URL, query cache disabled", map[string]interface{}{"error": err.Error()})
		return nil
	}

	rdb := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		c.Logger.Warn(module, "Failed to connect to Redis, query cache disabled", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		return nil
	}

	c.closers = append(c.closers, func() { _ = rdb.Close() })
	return rdb
}

// connectNats falls back to dropping lifecycle events when the broker is
// unreachable.
func (c *Container) connectNats(cfg *config.Config) events.Publisher {
	if cfg.App.NatsURL == "" {
		return events.NopPublisher{}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pub, err := pktNats.NewPublisher(ctx, cfg.App.NatsURL)
	if err != nil {
		c.Logger.Warn(module, "Failed to connect to NATS, events disabled", map[string]interface{}{"error": err.Error()})
		return events.NopPublisher{}
	}

	c.closers = append(c.closers, pub.Close)
	return pub
}
