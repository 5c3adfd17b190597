package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jojiShiotsuki/personalApp-sub001/internal/config"
	"github.com/jojiShiotsuki/personalApp-sub001/internal/entity"
	"github.com/jojiShiotsuki/personalApp-sub001/internal/infra/assistant"
	"github.com/jojiShiotsuki/personalApp-sub001/internal/infra/database"
	"github.com/jojiShiotsuki/personalApp-sub001/internal/infra/enrichment"
	"github.com/jojiShiotsuki/personalApp-sub001/internal/infra/http/handlers"
	"github.com/jojiShiotsuki/personalApp-sub001/internal/infra/http/middleware"
	"github.com/jojiShiotsuki/personalApp-sub001/internal/infra/mail"
	"github.com/jojiShiotsuki/personalApp-sub001/internal/infra/queue"
	"github.com/jojiShiotsuki/personalApp-sub001/internal/infra/worker"
	"github.com/jojiShiotsuki/personalApp-sub001/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	seeds := config.LoadSeeds(cfg.SeedsPath)
	if len(seeds.Cadence.WaitDays) == entity.MaxStep {
		copy(entity.DefaultWaitDays[:], seeds.Cadence.WaitDays)
	}

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitUser, cfg.RabbitPass, cfg.RabbitHost, cfg.RabbitPort)
	if err != nil {
		panic(err)
	}
	defer rabbitMQ.Close()

	// 1. Repositories
	prospectRepo := database.NewProspectRepository(db)
	campaignRepo := database.NewCampaignRepository(db)
	templateRepo := database.NewTemplateRepository(db)
	contactRepo := database.NewContactRepository(db)
	dealRepo := database.NewDealRepository(db)
	projectRepo := database.NewProjectRepository(db)
	taskRepo := database.NewTaskRepository(db)
	goalRepo := database.NewGoalRepository(db)
	contentRepo := database.NewContentRepository(db)
	searchRepo := database.NewSearchComboRepository(db)
	sprintRepo := database.NewSprintRepository(db)

	// 2. Gateways and adapters
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)
	scraper := enrichment.NewScraper(nil)

	// Assistant is optional: without an API key the endpoint answers 503.
	var gemini *assistant.Gemini
	if cfg.GeminiAPIKey != "" {
		gemini, err = assistant.NewGemini(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Printf("⚠️ Assistant disabled: %v", err)
		}
	} else {
		log.Println("⚠️ GEMINI_API_KEY not set, assistant disabled")
	}

	// 3. Workers (queue consumer delivering sends, hourly stale sweep)
	sendWorker := queue.NewWorker(rabbitMQ.Ch, mailSender)
	go sendWorker.Start(queue.QueueName)

	sequenceCloser := worker.NewSequenceCloser(db)
	go sequenceCloser.Start(context.Background())

	// 4. UseCases
	markSentUC := usecase.NewMarkSentUseCase(prospectRepo, templateRepo, producer)
	markRepliedUC := usecase.NewMarkRepliedUseCase(prospectRepo, contactRepo, dealRepo)
	importUC := usecase.NewImportProspectsUseCase(prospectRepo, campaignRepo, scraper)
	enrichUC := usecase.NewEnrichProspectUseCase(prospectRepo, scraper)
	gridUC := usecase.NewGenerateSearchGridUseCase(searchRepo, seeds.Planner.Cities, seeds.Planner.Niches)

	// 5. Handlers
	prospectHandler := handlers.NewProspectHandler(prospectRepo, markSentUC, markRepliedUC, importUC, enrichUC)
	campaignHandler := handlers.NewCampaignHandler(campaignRepo, templateRepo, prospectRepo)
	contactHandler := handlers.NewContactHandler(contactRepo)
	dealHandler := handlers.NewDealHandler(dealRepo)
	projectHandler := handlers.NewProjectHandler(projectRepo)
	taskHandler := handlers.NewTaskHandler(taskRepo)
	goalHandler := handlers.NewGoalHandler(goalRepo)
	contentHandler := handlers.NewContentHandler(contentRepo)
	searchHandler := handlers.NewSearchHandler(searchRepo, gridUC)
	sprintHandler := handlers.NewSprintHandler(sprintRepo)
	assistantHandler := handlers.NewAssistantHandler(gemini)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn, cfg.MailConfigured(), gemini != nil)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/prospects", func(r chi.Router) {
			r.Post("/", prospectHandler.Create)
			r.Get("/", prospectHandler.List)
			r.Get("/today", prospectHandler.TodayQueue)
			r.Get("/{id}", prospectHandler.Get)
			r.Put("/{id}", prospectHandler.Update)
			r.Delete("/{id}", prospectHandler.Delete)
			r.Post("/{id}/mark-sent", prospectHandler.MarkSent)
			r.Post("/{id}/mark-replied", prospectHandler.MarkReplied)
			r.Post("/{id}/enrich", prospectHandler.Enrich)
		})

		r.Route("/campaigns", func(r chi.Router) {
			r.Post("/", campaignHandler.Create)
			r.Get("/", campaignHandler.List)
			r.Get("/{id}", campaignHandler.Get)
			r.Put("/{id}", campaignHandler.Update)
			r.Delete("/{id}", campaignHandler.Delete)
			r.Get("/{id}/stats", campaignHandler.Stats)
			r.Get("/{id}/templates", campaignHandler.ListTemplates)
			r.Post("/{id}/templates", campaignHandler.CreateTemplate)
			r.Post("/{id}/import", prospectHandler.Import)
		})

		r.Put("/templates/{id}", campaignHandler.UpdateTemplate)
		r.Delete("/templates/{id}", campaignHandler.DeleteTemplate)

		r.Route("/contacts", func(r chi.Router) {
			r.Post("/", contactHandler.Create)
			r.Get("/", contactHandler.List)
			r.Get("/{id}", contactHandler.Get)
			r.Put("/{id}", contactHandler.Update)
			r.Delete("/{id}", contactHandler.Delete)
		})

		r.Route("/deals", func(r chi.Router) {
			r.Post("/", dealHandler.Create)
			r.Get("/", dealHandler.List)
			r.Get("/{id}", dealHandler.Get)
			r.Put("/{id}", dealHandler.Update)
			r.Put("/{id}/move", dealHandler.Move)
			r.Delete("/{id}", dealHandler.Delete)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Post("/", projectHandler.Create)
			r.Get("/", projectHandler.List)
			r.Get("/{id}", projectHandler.Get)
			r.Put("/{id}", projectHandler.Update)
			r.Delete("/{id}", projectHandler.Delete)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", taskHandler.Create)
			r.Get("/", taskHandler.List)
			r.Get("/{id}", taskHandler.Get)
			r.Put("/{id}", taskHandler.Update)
			r.Put("/{id}/move", taskHandler.Move)
			r.Delete("/{id}", taskHandler.Delete)
		})

		r.Route("/goals", func(r chi.Router) {
			r.Post("/", goalHandler.Create)
			r.Get("/", goalHandler.List)
			r.Get("/{id}", goalHandler.Get)
			r.Put("/{id}", goalHandler.Update)
			r.Patch("/{id}/progress", goalHandler.Progress)
			r.Delete("/{id}", goalHandler.Delete)
		})

		r.Route("/content", func(r chi.Router) {
			r.Post("/", contentHandler.Create)
			r.Get("/", contentHandler.List)
			r.Get("/{id}", contentHandler.Get)
			r.Put("/{id}", contentHandler.Update)
			r.Post("/{id}/publish", contentHandler.Publish)
			r.Delete("/{id}", contentHandler.Delete)
		})

		r.Route("/search-grid", func(r chi.Router) {
			r.Get("/", searchHandler.List)
			r.Post("/generate", searchHandler.Generate)
			r.Get("/stats", searchHandler.Stats)
			r.Post("/reset", searchHandler.Reset)
			r.Post("/{id}/toggle", searchHandler.Toggle)
		})

		r.Route("/sprints", func(r chi.Router) {
			r.Post("/", sprintHandler.Create)
			r.Get("/", sprintHandler.List)
			r.Get("/current", sprintHandler.Current)
			r.Get("/{id}", sprintHandler.Get)
			r.Delete("/{id}", sprintHandler.Delete)
			r.Post("/{id}/advance", sprintHandler.Advance)
			r.Post("/{id}/back", sprintHandler.Back)
			r.Post("/{id}/pause", sprintHandler.Pause)
			r.Post("/{id}/resume", sprintHandler.Resume)
		})

		r.Post("/assistant/chat", assistantHandler.Chat)
	})

	addr := ":" + cfg.Port
	log.Printf("🔥 CRM API running on %s", addr)
	http.ListenAndServe(addr, r)
}
