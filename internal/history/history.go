// Package history stores simulations that were run through the API so they
// can be listed and fetched again. The simulation engine never sees it.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("history: simulation not found")

// Record is one stored simulation: the input as received and the output
// computed for it, both as JSON documents.
type Record struct {
	ID        uuid.UUID       `json:"id"`
	Kind      string          `json:"kind"`
	Input     json.RawMessage `json:"input"`
	Output    json.RawMessage `json:"output"`
	CreatedAt time.Time       `json:"createdAt"`
}

// NewRecord assigns a fresh id and timestamp to an input/output pair.
func NewRecord(kind string, input, output any) (Record, error) {
	in, err := json.Marshal(input)
	if err != nil {
		return Record{}, fmt.Errorf("failed to marshal input: %w", err)
	}
	out, err := json.Marshal(output)
	if err != nil {
		return Record{}, fmt.Errorf("failed to marshal output: %w", err)
	}

	return Record{
		ID:        uuid.New(),
		Kind:      kind,
		Input:     in,
		Output:    out,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Repository persists simulation records. List returns the newest records
// first, at most limit of them.
type Repository interface {
	Save(ctx context.Context, record Record) error
	Get(ctx context.Context, id uuid.UUID) (Record, error)
	List(ctx context.Context, limit int) ([]Record, error)
	// Storage names the backend, e.g. "memory" or "postgres".
	Storage() string
}
