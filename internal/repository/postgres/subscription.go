package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pausely/pausely/internal/domain/subscription"
	"github.com/pausely/pausely/internal/pkg/errors"
)

// SubscriptionRepository implements subscription.Repository
type SubscriptionRepository struct {
	db *sql.DB
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *sql.DB) subscription.Repository {
	return &SubscriptionRepository{db: db}
}

const subscriptionColumns = `id, user_id, name, amount, currency, category, billing_cycle, status,
	renewal_date, website_url, description, logo_url, created_at, updated_at`

// Create creates a new subscription
func (r *SubscriptionRepository) Create(ctx context.Context, s *subscription.Subscription) error {
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now

	var renewal interface{}
	if s.RenewalDate != nil {
		renewal = s.RenewalDate.Unix()
	}

	query := `
		INSERT INTO subscriptions (user_id, name, amount, currency, category, billing_cycle, status,
			renewal_date, website_url, description, logo_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		s.UserID, s.Name, s.Amount, s.Currency, s.Category, s.BillingCycle, s.Status,
		renewal, s.WebsiteURL, s.Description, s.LogoURL, now.Unix(), now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create subscription", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.DatabaseError("Failed to get subscription ID", err)
	}
	s.ID = id
	return nil
}

func scanSubscription(scan func(dest ...interface{}) error) (*subscription.Subscription, error) {
	var s subscription.Subscription
	var renewal sql.NullInt64
	var website, description, logo sql.NullString
	var createdAt, updatedAt int64

	err := scan(
		&s.ID, &s.UserID, &s.Name, &s.Amount, &s.Currency, &s.Category, &s.BillingCycle, &s.Status,
		&renewal, &website, &description, &logo, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if renewal.Valid {
		t := time.Unix(renewal.Int64, 0)
		s.RenewalDate = &t
	}
	if website.Valid {
		s.WebsiteURL = &website.String
	}
	if description.Valid {
		s.Description = &description.String
	}
	if logo.Valid {
		s.LogoURL = &logo.String
	}
	s.CreatedAt = time.Unix(createdAt, 0)
	s.UpdatedAt = time.Unix(updatedAt, 0)
	return &s, nil
}

// GetByID retrieves a subscription owned by userID
func (r *SubscriptionRepository) GetByID(ctx context.Context, userID, id int64) (*subscription.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = ? AND user_id = ?`

	row := r.db.QueryRowContext(ctx, query, id, userID)
	s, err := scanSubscription(row.Scan)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Subscription")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get subscription", err)
	}
	return s, nil
}

// List retrieves a user's subscriptions, newest first
func (r *SubscriptionRepository) List(ctx context.Context, userID int64, filter subscription.Filter) ([]*subscription.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE user_id = ?`
	args := []interface{}{userID}

	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	query += " ORDER BY id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list subscriptions", err)
	}
	defer rows.Close()

	var subs []*subscription.Subscription
	for rows.Next() {
		s, err := scanSubscription(rows.Scan)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan subscription", err)
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// Update updates a subscription
func (r *SubscriptionRepository) Update(ctx context.Context, s *subscription.Subscription) error {
	s.UpdatedAt = time.Now()

	var renewal interface{}
	if s.RenewalDate != nil {
		renewal = s.RenewalDate.Unix()
	}

	query := `
		UPDATE subscriptions
		SET name = ?, amount = ?, currency = ?, category = ?, billing_cycle = ?, status = ?,
			renewal_date = ?, website_url = ?, description = ?, logo_url = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		s.Name, s.Amount, s.Currency, s.Category, s.BillingCycle, s.Status,
		renewal, s.WebsiteURL, s.Description, s.LogoURL, s.UpdatedAt.Unix(), s.ID, s.UserID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update subscription", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errors.NotFound("Subscription")
	}
	return nil
}

// Delete removes a subscription row
func (r *SubscriptionRepository) Delete(ctx context.Context, userID, id int64) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM subscriptions WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return errors.DatabaseError("Failed to delete subscription", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errors.NotFound("Subscription")
	}
	return nil
}

// CountTracked counts active plus paused subscriptions for a user
func (r *SubscriptionRepository) CountTracked(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM subscriptions WHERE user_id = ? AND status IN (?, ?)",
		userID, subscription.StatusActive, subscription.StatusPaused,
	).Scan(&count)
	if err != nil {
		return 0, errors.DatabaseError("Failed to count subscriptions", err)
	}
	return count, nil
}

// CreatePauseEvent opens a pause interval
func (r *SubscriptionRepository) CreatePauseEvent(ctx context.Context, ev *subscription.PauseEvent) error {
	query := `
		INSERT INTO pause_events (subscription_id, user_id, paused_at, resumed_at, amount_saved)
		VALUES (?, ?, ?, NULL, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		ev.SubscriptionID, ev.UserID, ev.PausedAt.Unix(), ev.AmountSaved,
	)
	if err != nil {
		return errors.DatabaseError("Failed to create pause event", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.DatabaseError("Failed to get pause event ID", err)
	}
	ev.ID = id
	return nil
}

// CloseOpenPauseEvent stamps resumed_at on the open pause interval for a
// subscription and returns it; returns nil when none is open
func (r *SubscriptionRepository) CloseOpenPauseEvent(ctx context.Context, subscriptionID int64) (*subscription.PauseEvent, error) {
	query := `
		SELECT id, subscription_id, user_id, paused_at, amount_saved
		FROM pause_events
		WHERE subscription_id = ? AND resumed_at IS NULL
		ORDER BY id DESC LIMIT 1
	`

	var ev subscription.PauseEvent
	var pausedAt int64
	err := r.db.QueryRowContext(ctx, query, subscriptionID).Scan(
		&ev.ID, &ev.SubscriptionID, &ev.UserID, &pausedAt, &ev.AmountSaved,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to find open pause event", err)
	}
	ev.PausedAt = time.Unix(pausedAt, 0)

	now := time.Now()
	if _, err := r.db.ExecContext(ctx,
		"UPDATE pause_events SET resumed_at = ? WHERE id = ?", now.Unix(), ev.ID); err != nil {
		return nil, errors.DatabaseError("Failed to close pause event", err)
	}
	ev.ResumedAt = &now
	return &ev, nil
}

// ListPauseEvents lists pause history for a user, newest first
func (r *SubscriptionRepository) ListPauseEvents(ctx context.Context, userID int64) ([]*subscription.PauseEvent, error) {
	query := `
		SELECT id, subscription_id, user_id, paused_at, resumed_at, amount_saved
		FROM pause_events WHERE user_id = ? ORDER BY id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list pause events", err)
	}
	defer rows.Close()

	var events []*subscription.PauseEvent
	for rows.Next() {
		var ev subscription.PauseEvent
		var pausedAt int64
		var resumedAt sql.NullInt64
		if err := rows.Scan(
			&ev.ID, &ev.SubscriptionID, &ev.UserID, &pausedAt, &resumedAt, &ev.AmountSaved,
		); err != nil {
			return nil, errors.DatabaseError("Failed to scan pause event", err)
		}
		ev.PausedAt = time.Unix(pausedAt, 0)
		if resumedAt.Valid {
			t := time.Unix(resumedAt.Int64, 0)
			ev.ResumedAt = &t
		}
		events = append(events, &ev)
	}
	return events, rows.Err()
}
