package bootstrap

import (
	"drama-llm-be/internal/config"
	"drama-llm-be/internal/controller"
	"drama-llm-be/internal/pkg/authutil"
	"drama-llm-be/internal/pkg/logger"
	"drama-llm-be/internal/pkg/serverutils"
	"drama-llm-be/internal/repository/unitofwork"
	"drama-llm-be/internal/service"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const auditTopic = "audit.events"

type Container struct {
	// Controllers
	AuthController         controller.IAuthController
	ConversationController controller.IConversationController
	MessageController      controller.IMessageController

	// Middleware
	AuthMiddleware         fiber.Handler
	OwnershipMiddleware    fiber.Handler
	ErrorHandlerMiddleware fiber.Handler

	// Background services (run from main)
	AuditConsumerService service.IAuditConsumerService

	Logger logger.ILogger
	DB     *gorm.DB
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.IsProduction())

	hasher := authutil.NewPasswordHasher(cfg.Auth.BcryptRounds)
	tokens := authutil.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiresIn, cfg.Auth.SessionExpiresIn)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	publisherService := service.NewPublisherService(auditTopic, pubSub)
	auditConsumerService := service.NewAuditConsumerService(pubSub, auditTopic, sysLogger)

	// 3. Services
	userService := service.NewUserService(uowFactory)
	authService := service.NewAuthService(
		uowFactory,
		hasher,
		tokens,
		publisherService,
		sysLogger,
	)
	conversationService := service.NewConversationService(uowFactory, publisherService, sysLogger)
	messageService := service.NewMessageService(uowFactory)

	// 4. Controllers and middleware
	return &Container{
		AuthController:         controller.NewAuthController(authService, userService, cfg.App.EnableRegistration),
		ConversationController: controller.NewConversationController(conversationService),
		MessageController:      controller.NewMessageController(messageService),

		AuthMiddleware:         serverutils.NewAuthMiddleware(uowFactory, tokens),
		OwnershipMiddleware:    serverutils.NewConversationOwnershipMiddleware(uowFactory),
		ErrorHandlerMiddleware: serverutils.ErrorHandlerMiddleware(sysLogger, cfg.App.IsProduction()),

		AuditConsumerService: auditConsumerService,

		Logger: sysLogger,
		DB:     db,
	}
}
