package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/streadway/amqp"

	"github.com/omiglobal/submission-backend/internal/config"
	"github.com/omiglobal/submission-backend/internal/db"
	"github.com/omiglobal/submission-backend/internal/mail"
	"github.com/omiglobal/submission-backend/internal/queue"
	"github.com/omiglobal/submission-backend/internal/repository"
	"github.com/omiglobal/submission-backend/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on OS environment variables")
	}

	cfg := config.Load()
	if cfg.AMQPURL == "" {
		log.Fatal("AMQP_URL is required for the delivery worker")
	}

	// Bookkeeping degrades gracefully when the database is down;
	// delivery still happens from the job payload.
	gateway, err := db.Open(cfg.Database)
	if err != nil {
		log.Printf("database unavailable: %v (delivery outcomes will not be recorded)", err)
		gateway = nil
	} else {
		defer gateway.Close()
	}

	svc := &service.SubmissionService{
		EmailRepo: &repository.EmailRepository{DB: gateway},
		Sender:    mail.NewSender(cfg.Mail),
	}

	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		log.Fatal("failed to connect to RabbitMQ:", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatal("failed to open a channel:", err)
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		queue.TopicEmailSends, // name
		true,                  // durable
		false,                 // delete when unused
		false,                 // exclusive
		false,                 // no-wait
		nil,                   // arguments
	)
	if err != nil {
		log.Fatal("failed to declare queue:", err)
	}

	msgs, err := ch.Consume(
		q.Name,
		"",
		false, // autoAck = false for reliability
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Fatal("failed to register consumer:", err)
	}

	log.Println("worker running, waiting for delivery jobs...")

	for d := range msgs {
		if err := processJob(d.Body, func(job queue.EmailJob) error {
			return svc.DeliverEmail(context.Background(), job)
		}); err != nil {
			log.Println("delivery job failed:", err)
			// Requeue once; each attempt records its own outcome.
			if !d.Redelivered {
				d.Nack(false, true)
				continue
			}
		}
		d.Ack(false)
	}
}

// processJob decodes one queued delivery job and hands it to deliver.
func processJob(body []byte, deliver func(job queue.EmailJob) error) error {
	var job queue.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("invalid job payload: %w", err)
	}
	return deliver(job)
}
