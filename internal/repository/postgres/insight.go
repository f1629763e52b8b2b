package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pausely/pausely/internal/domain/insight"
	"github.com/pausely/pausely/internal/pkg/errors"
)

// InsightRepository implements insight.Repository
type InsightRepository struct {
	db *sql.DB
}

// NewInsightRepository creates a new insight repository
func NewInsightRepository(db *sql.DB) insight.Repository {
	return &InsightRepository{db: db}
}

// Create creates a new insight
func (r *InsightRepository) Create(ctx context.Context, ins *insight.Insight) error {
	now := time.Now()
	ins.CreatedAt = now

	query := `
		INSERT INTO insights (user_id, type, title, body, subscription_id, amount, is_read, action_taken, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		ins.UserID, ins.Type, ins.Title, ins.Body, ins.SubscriptionID,
		ins.Amount, ins.IsRead, ins.ActionTaken, now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create insight", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.DatabaseError("Failed to get insight ID", err)
	}
	ins.ID = id
	return nil
}

func scanInsight(scan func(dest ...interface{}) error) (*insight.Insight, error) {
	var ins insight.Insight
	var subscriptionID sql.NullInt64
	var createdAt int64

	err := scan(
		&ins.ID, &ins.UserID, &ins.Type, &ins.Title, &ins.Body, &subscriptionID,
		&ins.Amount, &ins.IsRead, &ins.ActionTaken, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	if subscriptionID.Valid {
		ins.SubscriptionID = &subscriptionID.Int64
	}
	ins.CreatedAt = time.Unix(createdAt, 0)
	return &ins, nil
}

const insightColumns = `id, user_id, type, title, body, subscription_id, amount, is_read, action_taken, created_at`

// GetByID retrieves one insight owned by the user
func (r *InsightRepository) GetByID(ctx context.Context, userID, id int64) (*insight.Insight, error) {
	query := `SELECT ` + insightColumns + ` FROM insights WHERE id = ? AND user_id = ?`

	row := r.db.QueryRowContext(ctx, query, id, userID)
	ins, err := scanInsight(row.Scan)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Insight")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get insight", err)
	}
	return ins, nil
}

// List retrieves a user's insights, newest first
func (r *InsightRepository) List(ctx context.Context, userID int64, filter insight.Filter) ([]*insight.Insight, error) {
	query := `SELECT ` + insightColumns + ` FROM insights WHERE user_id = ?`
	args := []interface{}{userID}

	if filter.Type != "" {
		query += " AND type = ?"
		args = append(args, filter.Type)
	}
	if filter.UnreadOnly {
		query += " AND is_read = ?"
		args = append(args, false)
	}
	query += " ORDER BY id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list insights", err)
	}
	defer rows.Close()

	var insights []*insight.Insight
	for rows.Next() {
		ins, err := scanInsight(rows.Scan)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan insight", err)
		}
		insights = append(insights, ins)
	}
	return insights, rows.Err()
}

// Update updates an insight's read/actioned flags
func (r *InsightRepository) Update(ctx context.Context, ins *insight.Insight) error {
	query := `
		UPDATE insights SET is_read = ?, action_taken = ? WHERE id = ? AND user_id = ?
	`

	result, err := r.db.ExecContext(ctx, query, ins.IsRead, ins.ActionTaken, ins.ID, ins.UserID)
	if err != nil {
		return errors.DatabaseError("Failed to update insight", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errors.NotFound("Insight")
	}
	return nil
}

// Delete removes an insight
func (r *InsightRepository) Delete(ctx context.Context, userID, id int64) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM insights WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return errors.DatabaseError("Failed to delete insight", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errors.NotFound("Insight")
	}
	return nil
}

// CountUnread returns the number of unread insights for a user
func (r *InsightRepository) CountUnread(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM insights WHERE user_id = ? AND is_read = ?", userID, false,
	).Scan(&count)
	if err != nil {
		return 0, errors.DatabaseError("Failed to count insights", err)
	}
	return count, nil
}
