package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pausely/pausely/internal/domain/cancellation"
	"github.com/pausely/pausely/internal/pkg/errors"
)

// CancellationRepository implements cancellation.Repository
type CancellationRepository struct {
	db *sql.DB
}

// NewCancellationRepository creates a new cancellation repository
func NewCancellationRepository(db *sql.DB) cancellation.Repository {
	return &CancellationRepository{db: db}
}

// Create creates a new cancellation request
func (r *CancellationRepository) Create(ctx context.Context, req *cancellation.Request) error {
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now

	query := `
		INSERT INTO cancellation_requests (user_id, subscription_id, status, provider,
			draft_subject, draft_body, outcome, saved_amount, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		req.UserID, req.SubscriptionID, req.Status, req.Provider,
		req.DraftSubject, req.DraftBody, req.Outcome, req.SavedAmount, now.Unix(), now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create cancellation request", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.DatabaseError("Failed to get request ID", err)
	}
	req.ID = id
	return nil
}

func scanRequest(scan func(dest ...interface{}) error) (*cancellation.Request, error) {
	var req cancellation.Request
	var outcome sql.NullString
	var createdAt, updatedAt int64
	var resolvedAt sql.NullInt64

	err := scan(
		&req.ID, &req.UserID, &req.SubscriptionID, &req.Status, &req.Provider,
		&req.DraftSubject, &req.DraftBody, &outcome, &req.SavedAmount,
		&createdAt, &updatedAt, &resolvedAt,
	)
	if err != nil {
		return nil, err
	}

	if outcome.Valid {
		req.Outcome = outcome.String
	}
	req.CreatedAt = time.Unix(createdAt, 0)
	req.UpdatedAt = time.Unix(updatedAt, 0)
	if resolvedAt.Valid {
		t := time.Unix(resolvedAt.Int64, 0)
		req.ResolvedAt = &t
	}
	return &req, nil
}

const requestColumns = `id, user_id, subscription_id, status, provider, draft_subject, draft_body,
	outcome, saved_amount, created_at, updated_at, resolved_at`

// GetByID retrieves one request owned by the user
func (r *CancellationRepository) GetByID(ctx context.Context, userID, id int64) (*cancellation.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM cancellation_requests WHERE id = ? AND user_id = ?`

	row := r.db.QueryRowContext(ctx, query, id, userID)
	req, err := scanRequest(row.Scan)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Cancellation request")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get cancellation request", err)
	}
	return req, nil
}

// ListByUser lists a user's requests, newest first
func (r *CancellationRepository) ListByUser(ctx context.Context, userID int64) ([]*cancellation.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM cancellation_requests WHERE user_id = ? ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list cancellation requests", err)
	}
	defer rows.Close()

	var requests []*cancellation.Request
	for rows.Next() {
		req, err := scanRequest(rows.Scan)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan cancellation request", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// Update updates a request
func (r *CancellationRepository) Update(ctx context.Context, req *cancellation.Request) error {
	req.UpdatedAt = time.Now()

	var resolvedAt interface{}
	if req.ResolvedAt != nil {
		resolvedAt = req.ResolvedAt.Unix()
	}

	query := `
		UPDATE cancellation_requests
		SET status = ?, draft_subject = ?, draft_body = ?, outcome = ?, saved_amount = ?,
			updated_at = ?, resolved_at = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		req.Status, req.DraftSubject, req.DraftBody, req.Outcome, req.SavedAmount,
		req.UpdatedAt.Unix(), resolvedAt, req.ID, req.UserID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update cancellation request", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errors.NotFound("Cancellation request")
	}
	return nil
}

// AddMessage appends a message to a request's conversation log
func (r *CancellationRepository) AddMessage(ctx context.Context, msg *cancellation.Message) error {
	now := time.Now()
	msg.CreatedAt = now

	query := `
		INSERT INTO cancellation_messages (request_id, role, kind, subject, body, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		msg.RequestID, msg.Role, msg.Kind, msg.Subject, msg.Body, now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to add message", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.DatabaseError("Failed to get message ID", err)
	}
	msg.ID = id
	return nil
}

// ListMessages returns a request's messages in insertion order
func (r *CancellationRepository) ListMessages(ctx context.Context, requestID int64) ([]*cancellation.Message, error) {
	query := `
		SELECT id, request_id, role, kind, subject, body, created_at
		FROM cancellation_messages WHERE request_id = ? ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, requestID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list messages", err)
	}
	defer rows.Close()

	var messages []*cancellation.Message
	for rows.Next() {
		var msg cancellation.Message
		var subject sql.NullString
		var createdAt int64
		if err := rows.Scan(
			&msg.ID, &msg.RequestID, &msg.Role, &msg.Kind, &subject, &msg.Body, &createdAt,
		); err != nil {
			return nil, errors.DatabaseError("Failed to scan message", err)
		}
		if subject.Valid {
			msg.Subject = subject.String
		}
		msg.CreatedAt = time.Unix(createdAt, 0)
		messages = append(messages, &msg)
	}
	return messages, rows.Err()
}
