package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pausely/pausely/internal/domain/user"
	"github.com/pausely/pausely/internal/pkg/errors"
)

// UserRepository implements user.Repository
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) user.Repository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	query := `
		INSERT INTO users (email, username, password_hash, full_name, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		u.Email, u.Username, u.PasswordHash, u.FullName, u.Role, now.Unix(), now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create user", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.DatabaseError("Failed to get user ID", err)
	}

	u.ID = id
	return nil
}

func (r *UserRepository) scanUser(row *sql.Row) (*user.User, error) {
	var u user.User
	var fullName sql.NullString
	var createdAt, updatedAt int64

	err := row.Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash, &fullName, &u.Role, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("User")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get user", err)
	}

	if fullName.Valid {
		u.FullName = &fullName.String
	}
	u.CreatedAt = time.Unix(createdAt, 0)
	u.UpdatedAt = time.Unix(updatedAt, 0)
	return &u, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	query := `
		SELECT id, email, username, password_hash, full_name, role, created_at, updated_at
		FROM users WHERE id = ?
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `
		SELECT id, email, username, password_hash, full_name, role, created_at, updated_at
		FROM users WHERE email = ?
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

// Update updates a user
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	u.UpdatedAt = time.Now()

	query := `
		UPDATE users
		SET email = ?, username = ?, password_hash = ?, full_name = ?, role = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := r.db.ExecContext(ctx, query,
		u.Email, u.Username, u.PasswordHash, u.FullName, u.Role, u.UpdatedAt.Unix(), u.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update user", err)
	}
	return nil
}

// Delete deletes a user
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return errors.DatabaseError("Failed to delete user", err)
	}
	return nil
}

// List retrieves all users with pagination. A non-positive limit returns
// everything; the briefing worker relies on that.
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count users", err)
	}

	query := `
		SELECT id, email, username, password_hash, full_name, role, created_at, updated_at
		FROM users ORDER BY id
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list users", err)
	}
	defer rows.Close()

	var users []*user.User
	for rows.Next() {
		var u user.User
		var fullName sql.NullString
		var createdAt, updatedAt int64
		if err := rows.Scan(
			&u.ID, &u.Email, &u.Username, &u.PasswordHash, &fullName, &u.Role, &createdAt, &updatedAt,
		); err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan user", err)
		}
		if fullName.Valid {
			u.FullName = &fullName.String
		}
		u.CreatedAt = time.Unix(createdAt, 0)
		u.UpdatedAt = time.Unix(updatedAt, 0)
		users = append(users, &u)
	}
	return users, total, rows.Err()
}

// CreateProfile creates the product profile for a user
func (r *UserRepository) CreateProfile(ctx context.Context, p *user.Profile) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `
		INSERT INTO profiles (user_id, plan_tier, currency_preference, total_saved, subscription_count,
			lemonsqueezy_customer_id, lemonsqueezy_subscription_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		p.UserID, p.PlanTier, p.CurrencyPreference, p.TotalSaved, p.SubscriptionCount,
		p.LemonSqueezyCustomerID, p.LemonSqueezySubscription, now.Unix(), now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create profile", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.DatabaseError("Failed to get profile ID", err)
	}
	p.ID = id
	return nil
}

// GetProfile retrieves the profile for a user
func (r *UserRepository) GetProfile(ctx context.Context, userID int64) (*user.Profile, error) {
	query := `
		SELECT id, user_id, plan_tier, currency_preference, total_saved, subscription_count,
			lemonsqueezy_customer_id, lemonsqueezy_subscription_id, created_at, updated_at
		FROM profiles WHERE user_id = ?
	`

	var p user.Profile
	var customerID, subscriptionID sql.NullString
	var createdAt, updatedAt int64

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.PlanTier, &p.CurrencyPreference, &p.TotalSaved, &p.SubscriptionCount,
		&customerID, &subscriptionID, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Profile")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get profile", err)
	}

	if customerID.Valid {
		p.LemonSqueezyCustomerID = &customerID.String
	}
	if subscriptionID.Valid {
		p.LemonSqueezySubscription = &subscriptionID.String
	}
	p.CreatedAt = time.Unix(createdAt, 0)
	p.UpdatedAt = time.Unix(updatedAt, 0)
	return &p, nil
}

// UpdateProfile updates a profile
func (r *UserRepository) UpdateProfile(ctx context.Context, p *user.Profile) error {
	p.UpdatedAt = time.Now()

	query := `
		UPDATE profiles
		SET plan_tier = ?, currency_preference = ?, total_saved = ?, subscription_count = ?,
			lemonsqueezy_customer_id = ?, lemonsqueezy_subscription_id = ?, updated_at = ?
		WHERE user_id = ?
	`

	_, err := r.db.ExecContext(ctx, query,
		p.PlanTier, p.CurrencyPreference, p.TotalSaved, p.SubscriptionCount,
		p.LemonSqueezyCustomerID, p.LemonSqueezySubscription, p.UpdatedAt.Unix(), p.UserID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update profile", err)
	}
	return nil
}
