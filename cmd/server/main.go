package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/omiglobal/submission-backend/internal/config"
	"github.com/omiglobal/submission-backend/internal/controller"
	"github.com/omiglobal/submission-backend/internal/db"
	"github.com/omiglobal/submission-backend/internal/mail"
	"github.com/omiglobal/submission-backend/internal/queue"
	"github.com/omiglobal/submission-backend/internal/repository"
	"github.com/omiglobal/submission-backend/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on OS environment variables")
	}

	cfg := config.Load()

	// The server keeps running without a database: intakes are still
	// acknowledged and emailed, just not persisted.
	gateway, err := db.Open(cfg.Database)
	if err != nil {
		log.Printf("database unavailable: %v (submissions will not be persisted)", err)
		gateway = nil
	} else {
		defer gateway.Close()
		if err := db.ApplyMigrations(cfg.Database.URL(), cfg.MigrationsPath); err != nil {
			log.Printf("migrations failed: %v", err)
		}
	}

	submissionRepo := &repository.SubmissionRepository{DB: gateway}
	emailRepo := &repository.EmailRepository{DB: gateway}
	sender := mail.NewSender(cfg.Mail)

	var q queue.Queue
	var amqpQueue *queue.AMQPQueue
	if cfg.AMQPURL != "" {
		amqpQueue, err = queue.NewAMQPQueue(cfg.AMQPURL)
		if err != nil {
			log.Fatalf("failed to connect to AMQP broker: %v", err)
		}
		defer amqpQueue.Close()
		q = amqpQueue
		log.Println("email delivery via AMQP worker")
	} else {
		q = queue.NewInMemoryQueue()
	}

	submissionService := &service.SubmissionService{
		SubmissionRepo: submissionRepo,
		EmailRepo:      emailRepo,
		Sender:         sender,
		Queue:          q,
		FromEmail:      cfg.Mail.User,
		SenderName:     cfg.Mail.SenderName,
	}

	if amqpQueue == nil {
		queue.StartEmailSendSubscriber(q, func(job queue.EmailJob) error {
			return submissionService.DeliverEmail(context.Background(), job)
		})
	}

	submissionController := &controller.SubmissionController{
		SubmissionService: submissionService,
		DB:                gateway,
	}

	r := chi.NewRouter()

	r.Get("/healthz", submissionController.Health)
	r.Route("/api/v1/submissions", func(r chi.Router) {
		r.Post("/", submissionController.SubmitProject)
		r.Get("/", submissionController.ListSubmissions)
		r.Get("/{id}", submissionController.GetSubmission)
		r.Patch("/{id}/status", submissionController.UpdateSubmissionStatus)
		r.Delete("/{id}", submissionController.DeleteSubmission)
		r.Get("/{id}/emails", submissionController.ListSubmissionEmails)
	})

	log.Printf("server running on :%s", cfg.HTTPPort)
	log.Fatal(http.ListenAndServe(":"+cfg.HTTPPort, r))
}
