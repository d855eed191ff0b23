package queue

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// TopicEmailSends carries delivery jobs for transactional emails.
const TopicEmailSends = "email_sends"

// EmailJob is one queued delivery attempt. It carries the rendered
// content so delivery can proceed even when the audit record could not
// be created (EmailID empty disables bookkeeping, not sending).
type EmailJob struct {
	EmailID   string `json:"email_id"`
	ToEmail   string `json:"to_email"`
	ToName    string `json:"to_name"`
	Subject   string `json:"subject"`
	BodyHTML  string `json:"body_html"`
	BodyPlain string `json:"body_plain"`
}

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue dispatches each published job to its subscribers on a
// detached goroutine, with bounded retry and backoff. Publishers are
// never blocked on delivery.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	job := JobPayload{
		Payload:    payload,
		RetryCount: 0,
		MaxRetries: 2,
	}

	for _, handler := range handlers {
		go q.processJob(handler, job)
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	for job.RetryCount <= job.MaxRetries {
		err := handler(job.Payload)
		if err == nil {
			return // ACK
		}

		job.RetryCount++
		if job.RetryCount > job.MaxRetries {
			log.Printf("job permanently failed after %d attempts: %v", job.MaxRetries+1, err)
			return // no requeue
		}

		// Exponential backoff before retry
		time.Sleep(time.Duration(job.RetryCount*500) * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// StartEmailSendSubscriber registers the delivery handler for queued
// email jobs. deliver performs one send attempt and records its
// outcome; returning an error triggers the queue's retry policy.
func StartEmailSendSubscriber(q Queue, deliver func(job EmailJob) error) {
	err := q.Subscribe(TopicEmailSends, func(payload any) error {
		job, ok := payload.(EmailJob)
		if !ok {
			log.Printf("invalid payload type on %s, expected EmailJob", TopicEmailSends)
			return nil // no retry
		}
		return deliver(job)
	})
	if err != nil {
		log.Println("failed to subscribe to", TopicEmailSends, ":", err)
	}
}
