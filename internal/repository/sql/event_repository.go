package sql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/iyhunko/catalog-service/internal/model"
	"github.com/iyhunko/catalog-service/internal/repository"
)

// EventRepository implements repository.EventRepository for the outbox table.
type EventRepository struct {
	db  *sql.DB
	txn *sql.Tx
}

// NewEventRepository creates a new EventRepository instance.
func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &EventRepository{db: db}
}

// getExecutor returns the active executor (transaction if exists, otherwise db)
func (r *EventRepository) getExecutor() dbExecutor {
	if r.txn != nil {
		return r.txn
	}
	return r.db
}

// Create inserts a new event into the outbox.
func (r *EventRepository) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	event.InitMeta()

	query := `INSERT INTO events (id, event_type, event_data, status, created_at, processed_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, event.ID, event.EventType, event.EventData, event.Status, event.CreatedAt, event.ProcessedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert event: %w", err)
	}

	return event, nil
}

// ListPending retrieves pending events oldest-first.
func (r *EventRepository) ListPending(ctx context.Context, limit int) ([]*model.Event, error) {
	query := `SELECT id, event_type, event_data, status, created_at, processed_at
	          FROM events
	          WHERE status = $1
	          ORDER BY created_at ASC
	          LIMIT $2`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	if limit <= 0 {
		limit = repository.DefaultPaginationLimit
	}

	rows, err := stmt.QueryContext(ctx, model.EventStatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []*model.Event
	for rows.Next() {
		var event model.Event
		var processedAt sql.NullTime
		err := rows.Scan(&event.ID, &event.EventType, &event.EventData, &event.Status, &event.CreatedAt, &processedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		if processedAt.Valid {
			event.ProcessedAt = &processedAt.Time
		}
		events = append(events, &event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return events, nil
}

// UpdateStatus updates the status and processed_at time of an event
func (r *EventRepository) UpdateStatus(ctx context.Context, eventID uuid.UUID, status model.EventStatus) error {
	query := `UPDATE events SET status = $1, processed_at = CURRENT_TIMESTAMP WHERE id = $2`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare update statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, status, eventID)
	if err != nil {
		return fmt.Errorf("failed to update event status: %w", err)
	}

	return nil
}

// CreateEvent is a helper function to create an event with proper JSON marshaling
func CreateEvent(eventType string, eventData interface{}) (*model.Event, error) {
	data, err := json.Marshal(eventData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event data: %w", err)
	}

	return &model.Event{
		EventType: eventType,
		EventData: data,
		Status:    model.EventStatusPending,
	}, nil
}
