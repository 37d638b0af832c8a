package bootstrap

import (
	"context"
	"log"
	"time"

	"spiritual-guidance-be/internal/config"
	"spiritual-guidance-be/internal/controller"
	"spiritual-guidance-be/internal/pkg/logger"
	"spiritual-guidance-be/internal/pkg/mailer"
	"spiritual-guidance-be/internal/repository/memory"
	"spiritual-guidance-be/internal/repository/unitofwork"
	"spiritual-guidance-be/internal/service"
	"spiritual-guidance-be/internal/websocket"
	"spiritual-guidance-be/pkg/astrology"
	"spiritual-guidance-be/pkg/embedding"
	"spiritual-guidance-be/pkg/guidance"
	"spiritual-guidance-be/pkg/knowledge"
	"spiritual-guidance-be/pkg/llm/factory"
	pktNats "spiritual-guidance-be/pkg/nats"
	"spiritual-guidance-be/pkg/validation"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SessionController     controller.ISessionController
	ServiceTypeController controller.IServiceTypeController
	CreditController      controller.ICreditController
	MonitoringController  controller.IMonitoringController

	// Background workers (exposed for main.go to run)
	MonitorService  service.IMonitorService
	FollowUpService service.IFollowUpService
	AlertService    *service.AlertService

	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. AI providers
	embeddingProvider, err := embedding.NewProvider(
		cfg.Ai.EmbeddingProvider,
		cfg.Keys.GoogleGemini,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OllamaModel,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize embedding provider: %v", err)
	}
	log.Printf("[INFO] Using embedding provider: %s", cfg.Ai.EmbeddingProvider)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.OpenAI,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM provider: %v", err)
	}
	log.Printf("[INFO] Using LLM provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 3. Birth chart adapter
	providerTimeout := time.Duration(cfg.Ai.ProviderTimeout) * time.Second
	var chartProvider astrology.Provider
	if cfg.Keys.Prokerala != "" {
		chartProvider = astrology.NewProkeralaProvider(cfg.Ai.AstrologyBaseURL, cfg.Keys.Prokerala, cfg.Keys.ProkeralaSecret)
	} else {
		log.Printf("[WARN] No astrology provider credentials, charts degrade to fallback")
	}
	healthStore := memory.NewProviderHealthStore()
	chartAdapter := astrology.NewAdapter(chartProvider, healthStore, providerTimeout)

	// 4. Infrastructure: NATS + Redis
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS subscriber: %v", err)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// 5. WebSocket hub for the monitoring alert stream
	wsLogger := logger.NewIsolatedLogger("logs/monitoring.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 6. Guidance composition
	retriever := knowledge.NewRetriever(embeddingProvider, uowFactory)
	composer := guidance.NewComposer(llmProvider, retriever, providerTimeout)

	// 7. Monitoring
	scorer := validation.NewScorer(embeddingProvider, cfg.Monitoring.ScoreThreshold)
	monitorService := service.NewMonitorService(
		uowFactory,
		scorer,
		cfg.Keys.MonitorTopic,
		natsPub,
		wsHub,
		sysLogger,
		time.Duration(cfg.Monitoring.ValidatorTimeout)*time.Second,
	)

	// 8. Domain services
	catalogService := service.NewCatalogService(uowFactory, memory.NewCatalogCache())
	followUpService := service.NewFollowUpService(uowFactory, emailService, sysLogger, 0)
	creditService := service.NewCreditService(uowFactory, cfg.Keys.MidtransServerKey, cfg.Keys.MidtransIsProduction)

	sessionService := service.NewSessionService(
		uowFactory,
		catalogService,
		chartAdapter,
		composer,
		monitorService,
		followUpService,
		natsPub,
		sysLogger,
	)

	// 9. Alert relay worker
	var alertService *service.AlertService
	if natsSub != nil {
		alertService = service.NewAlertService(natsSub, wsHub, wsLogger)
		go alertService.Start()
	}

	return &Container{
		SessionController:     controller.NewSessionController(sessionService, followUpService),
		ServiceTypeController: controller.NewServiceTypeController(catalogService),
		CreditController:      controller.NewCreditController(creditService),
		MonitoringController:  controller.NewMonitoringController(monitorService, wsHub, sysLogger),

		MonitorService:  monitorService,
		FollowUpService: followUpService,
		AlertService:    alertService,
		WebSocketHub:    wsHub,
	}
}
