package queue_test

import (
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/omiglobal/submission-backend/internal/queue"
)

func TestInMemoryQueueDelivers(t *testing.T) {
	q := queue.NewInMemoryQueue()

	got := make(chan any, 1)
	if err := q.Subscribe("test_topic", func(payload any) error {
		got <- payload
		return nil
	}); err != nil {
		t.Fatalf("Subscribe returned error: %v", err)
	}

	if err := q.Publish("test_topic", "hello"); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}

	select {
	case payload := <-got:
		if payload != "hello" {
			t.Errorf("unexpected payload: %v", payload)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery")
	}
}

func TestInMemoryQueueRetries(t *testing.T) {
	q := queue.NewInMemoryQueue()

	var attempts int32
	done := make(chan struct{})
	if err := q.Subscribe("test_topic", func(payload any) error {
		if atomic.AddInt32(&attempts, 1) == 1 {
			return errors.New("transient failure")
		}
		close(done)
		return nil
	}); err != nil {
		t.Fatalf("Subscribe returned error: %v", err)
	}

	if err := q.Publish("test_topic", "job"); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for retry")
	}
	if n := atomic.LoadInt32(&attempts); n != 2 {
		t.Errorf("expected 2 attempts, got %d", n)
	}
}

func TestInMemoryQueuePublishWithoutSubscribers(t *testing.T) {
	q := queue.NewInMemoryQueue()

	err := q.Publish("nobody_home", "job")
	if err == nil {
		t.Fatal("expected an error when no subscribers exist")
	}
	if !strings.Contains(err.Error(), "no subscribers") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStartEmailSendSubscriber(t *testing.T) {
	q := queue.NewInMemoryQueue()

	got := make(chan queue.EmailJob, 1)
	queue.StartEmailSendSubscriber(q, func(job queue.EmailJob) error {
		got <- job
		return nil
	})

	want := queue.EmailJob{
		EmailID: "email-1",
		ToEmail: "jane@example.org",
		Subject: "We've Received Your Project: Ocean",
	}
	if err := q.Publish(queue.TopicEmailSends, want); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}

	select {
	case job := <-got:
		if job != want {
			t.Errorf("unexpected job: %+v", job)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the email job")
	}
}

func TestStartEmailSendSubscriberIgnoresUnknownPayloads(t *testing.T) {
	q := queue.NewInMemoryQueue()

	delivered := make(chan queue.EmailJob, 1)
	queue.StartEmailSendSubscriber(q, func(job queue.EmailJob) error {
		delivered <- job
		return nil
	})

	if err := q.Publish(queue.TopicEmailSends, "not a job"); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}

	select {
	case job := <-delivered:
		t.Errorf("expected no delivery for a foreign payload, got %+v", job)
	case <-time.After(200 * time.Millisecond):
	}
}
