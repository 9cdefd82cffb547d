package history

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

// Runs against a real database only when TEST_DATABASE_URL is set.
func TestPostgresRepository(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := Connect(ctx, url)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer pool.Close()

	repo := NewPostgres(pool)
	if err := repo.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	record, err := NewRecord("simulation", map[string]int{"termMonths": 120}, map[string]float64{"installmentValue": 983.3})
	if err != nil {
		t.Fatalf("NewRecord() error = %v", err)
	}
	if err := repo.Save(ctx, record); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := repo.Get(ctx, record.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != record.ID || got.Kind != "simulation" {
		t.Errorf("Get() = %+v", got)
	}

	if _, err := repo.Get(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() unknown id error = %v, expected ErrNotFound", err)
	}

	records, err := repo.List(ctx, 1)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 1 {
		t.Errorf("List() returned %d records", len(records))
	}
}

func TestPostgresWithoutPool(t *testing.T) {
	repo := NewPostgres(nil)
	ctx := context.Background()

	if err := repo.Save(ctx, Record{}); err == nil {
		t.Error("Save() without pool should fail")
	}
	if _, err := repo.Get(ctx, uuid.New()); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("Get() without pool error = %v", err)
	}
	if _, err := repo.List(ctx, 1); err == nil {
		t.Error("List() without pool should fail")
	}
	if err := repo.Migrate(ctx); err == nil {
		t.Error("Migrate() without pool should fail")
	}
	if _, err := Connect(ctx, ""); err == nil {
		t.Error("Connect() with empty URL should fail")
	}
}
