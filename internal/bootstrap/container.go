package bootstrap

import (
	"context"
	"log"

	"ebook-studio-be/internal/config"
	"ebook-studio-be/internal/controller"
	"ebook-studio-be/internal/pkg/locker"
	"ebook-studio-be/internal/pkg/logger"
	"ebook-studio-be/internal/pkg/mailer"
	"ebook-studio-be/internal/pkg/payment"
	"ebook-studio-be/internal/pkg/serverutils"
	"ebook-studio-be/internal/repository/memory"
	"ebook-studio-be/internal/repository/unitofwork"
	"ebook-studio-be/internal/service"
	adminEvents "ebook-studio-be/pkg/admin/events"
	"ebook-studio-be/pkg/admin/feature"
	"ebook-studio-be/pkg/admin/plan"
	"ebook-studio-be/pkg/llm/factory"

	pktNats "ebook-studio-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	CartController    controller.ICartController
	PlanController    controller.PlanController
	PaymentController controller.IPaymentController
	BookController    controller.IBookController
	AdminController   controller.IAdminController

	JwtMiddleware fiber.Handler

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger *logger.ZapLogger
	closers []func()
}

// Close releases broker connections. The HTTP server must be stopped first.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	webhookLogger := logger.NewIsolatedLogger("logs/payment_webhook.log")
	var closers []func()

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	closers = append(closers, func() { _ = pubSub.Close() })

	// 2.5 Infrastructure
	// NATS
	var eventBus service.EventBus
	var adminBus adminEvents.Bus
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v. Domain events are dropped", err)
	} else {
		eventBus, adminBus = natsPub, natsPub
		closers = append(closers, natsPub.Close)
	}

	// Redis
	var confirmLocker locker.Locker = locker.NewMemoryLocker()
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Using in-process confirm lock", err)
		_ = rdb.Close()
	} else {
		confirmLocker = locker.NewRedisLocker(rdb, "ebook-studio:lock")
		closers = append(closers, func() { _ = rdb.Close() })
	}

	// Payment provider
	var processor payment.Processor
	var midtransParser controller.NotificationParser
	var stripeParser controller.WebhookParser
	switch cfg.Payment.Provider {
	case payment.ProviderStripe:
		sp := payment.NewStripeProcessor(
			cfg.Payment.StripeSecretKey,
			cfg.Payment.StripeWebhookSecret,
			cfg.App.ClientURL+cfg.Payment.SuccessRedirectPath,
			cfg.App.ClientURL+cfg.Payment.CancelRedirectPath,
		)
		processor, stripeParser = sp, sp
	case payment.ProviderMidtrans:
		mp := payment.NewMidtransProcessor(
			cfg.Payment.MidtransServerKey,
			cfg.Payment.MidtransProduction,
			cfg.App.ClientURL+cfg.Payment.SuccessRedirectPath,
		)
		processor, midtransParser = mp, mp
	default:
		log.Printf("[WARN] Unknown PAYMENT_PROVIDER %q. Bills stay pending without checkout", cfg.Payment.Provider)
	}
	log.Printf("[INFO] Using payment provider: %s", cfg.Payment.Provider)

	// Initialize LLM Provider based on Config
	llmBaseURL := cfg.Ai.LLMBaseURL
	if cfg.Ai.LLMProvider == "ollama" {
		llmBaseURL = cfg.Ai.OllamaBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL,
		cfg.Ai.LLMAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 3. Services
	domainEvents := service.NewDomainEventPublisher(eventBus, sysLogger)
	billIssued := service.NewPublisherService(cfg.Billing.BillIssuedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Billing.BillIssuedTopic,
		uowFactory,
		emailService,
		sysLogger,
	)

	cartService := service.NewCartService(uowFactory, sysLogger)
	planAdvisor := service.NewPlanAdvisor(uowFactory, cfg.Billing.AdvisorRules)
	planService := service.NewPlanService(uowFactory, domainEvents, sysLogger)
	billingService := service.NewBillingService(uowFactory, domainEvents, sysLogger, cfg.Billing.Currency)
	entitlementService := service.NewEntitlementService(
		uowFactory,
		confirmLocker,
		memory.NewIdempotencyRepository(cfg.Billing.IdempotencyTTL),
		processor,
		domainEvents,
		billIssued,
		sysLogger,
		cfg.Billing,
	)
	bookService := service.NewBookService(uowFactory, planService, llmProvider, sysLogger)

	// Admin Domain Components
	adminEventPublisher := adminEvents.NewNatsPublisher(adminBus, sysLogger)
	adminService := service.NewAdminService(
		uowFactory,
		sysLogger,
		plan.NewManager(cfg.Billing.Currency),
		feature.NewManager(cfg.Billing.Currency),
		adminEventPublisher,
	)

	// 4. Controllers
	return &Container{
		CartController:    controller.NewCartController(cartService, planAdvisor, entitlementService, billingService),
		PlanController:    controller.NewPlanController(planService),
		PaymentController: controller.NewPaymentController(billingService, midtransParser, stripeParser, webhookLogger),
		BookController:    controller.NewBookController(bookService),
		AdminController:   controller.NewAdminController(adminService),

		JwtMiddleware: serverutils.NewJwtMiddleware(cfg.Keys.JwtSecret),

		ConsumerService: consumerService,

		Logger:  sysLogger,
		closers: closers,
	}
}
