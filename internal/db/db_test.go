package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/omiglobal/submission-backend/internal/db"
)

// A nil gateway stands in for a database that was down at startup.
// Every data method must fail fast with ErrNotInitialized instead of
// panicking, so the intake pipeline can degrade gracefully.
func TestNilGatewayFailsFast(t *testing.T) {
	var g *db.Gateway
	ctx := context.Background()

	if err := g.Ping(ctx); !errors.Is(err, db.ErrNotInitialized) {
		t.Errorf("Ping: expected ErrNotInitialized, got %v", err)
	}
	if err := g.Execute(ctx, "DELETE FROM project_submissions"); !errors.Is(err, db.ErrNotInitialized) {
		t.Errorf("Execute: expected ErrNotInitialized, got %v", err)
	}

	var id string
	if err := g.FetchOne(ctx, "SELECT id FROM project_submissions LIMIT 1", nil, &id); !errors.Is(err, db.ErrNotInitialized) {
		t.Errorf("FetchOne: expected ErrNotInitialized, got %v", err)
	}
	if err := g.FetchAll(ctx, "SELECT id FROM project_submissions", nil, nil); !errors.Is(err, db.ErrNotInitialized) {
		t.Errorf("FetchAll: expected ErrNotInitialized, got %v", err)
	}
	if err := g.ExecuteMany(ctx, "INSERT INTO project_submissions (id) VALUES ($1)", nil); !errors.Is(err, db.ErrNotInitialized) {
		t.Errorf("ExecuteMany: expected ErrNotInitialized, got %v", err)
	}
}

func TestNilGatewayCloseIsSafe(t *testing.T) {
	var g *db.Gateway
	g.Close()
	(&db.Gateway{}).Close()
}
