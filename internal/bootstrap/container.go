package bootstrap

import (
	"log"

	"bid-agent-be/internal/config"
	"bid-agent-be/internal/controller"
	"bid-agent-be/internal/pkg/logger"
	"bid-agent-be/internal/repository/contract"
	"bid-agent-be/internal/repository/implementation"
	"bid-agent-be/internal/repository/memory"
	"bid-agent-be/internal/service"
	"bid-agent-be/pkg/agent/capability"
	"bid-agent-be/pkg/agent/engine"
	"bid-agent-be/pkg/agent/feedback"
	"bid-agent-be/pkg/agent/policy"
	"bid-agent-be/pkg/agent/stages"
	"bid-agent-be/pkg/llm/factory"
	"bid-agent-be/pkg/template"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AgentController    controller.IAgentController
	TemplateController controller.ITemplateController
	ArchiveController  controller.IArchiveController

	// Background Services (Exposed for main.go to run)
	ArchiveService service.IArchiveService

	Logger logger.ILogger
}

// NewContainer wires the whole dependency graph. db may be nil; the archive
// then runs in drop mode and everything else works unchanged.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Capability Provider based on Config
	var provider capability.Provider
	if cfg.Ai.LLMProvider == "none" {
		provider = stages.NewLocalProvider()
		log.Printf("[INFO] Using Capability Provider: RULE-BASED (offline)")
	} else {
		model, err := factory.NewLLMProvider(
			cfg.Ai.LLMProvider,
			cfg.Ai.LLMModel,
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.APIKey,
		)
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
		}
		provider = stages.NewLLMProvider(model)
		log.Printf("[INFO] Using Capability Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	}

	// 4. In-Memory Session Storage + Workflow Core
	sessionRepo := memory.NewSessionRepository()
	templates := template.NewProvider()
	pol := policy.Policy{
		ConfidenceThreshold: cfg.Agent.ConfidenceThreshold,
		MaxRetry:            cfg.Agent.MaxRetry,
	}

	publisherService := service.NewPublisherService(pubSub, sysLogger)
	workflowEngine := engine.New(sessionRepo, provider, templates, pol, publisherService)
	feedbackHandler := feedback.NewHandler(sessionRepo)

	// 5. Archive Pipeline (durable only when a DB is configured)
	var announcementRepo contract.IAnnouncementRepository
	if db != nil {
		announcementRepo = implementation.NewAnnouncementRepository(db)
	} else {
		log.Printf("[WARN] No database configured, completed announcements will not be archived")
	}
	// The consumer logs to its own rotating file so completed-session events
	// do not interleave with request logs.
	archiveLogger := logger.NewIsolatedLogger("logs/archive-events.log")
	archiveService := service.NewArchiveService(pubSub, announcementRepo, archiveLogger)

	// 6. Services
	agentService := service.NewAgentService(sessionRepo, workflowEngine, feedbackHandler, sysLogger)
	templateService := service.NewTemplateService(templates)

	// 7. Controllers
	return &Container{
		AgentController:    controller.NewAgentController(agentService),
		TemplateController: controller.NewTemplateController(templateService),
		ArchiveController:  controller.NewArchiveController(archiveService),
		ArchiveService:     archiveService,
		Logger:             sysLogger,
	}
}
