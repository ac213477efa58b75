package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tlecomte/finance-tracker-backend/internal/model"
)

// UserRepository provides data access methods for the user table. Users are
// provisioned by the upstream identity layer; this repository only stores the
// minimal record the rest of the schema is scoped to.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository with the provided database connection.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetUser retrieves one user by ID. Returns sql.ErrNoRows when the user does
// not exist.
func (r *UserRepository) GetUser(userID string) (model.User, error) {
	query := `SELECT id, email, name, created_at FROM user WHERE id = ?`

	var u model.User
	var createdAtStr string
	err := r.db.QueryRow(query, userID).Scan(&u.ID, &u.Email, &u.Name, &createdAtStr)
	if err == sql.ErrNoRows {
		return model.User{}, err
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to scan user table results: %w", err)
	}

	u.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil || u.CreatedAt.IsZero() {
		return model.User{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return u, nil
}

// ListUserIDs returns the IDs of every provisioned user. The scheduler uses
// this to fan the month-close recap computation out across accounts.
func (r *UserRepository) ListUserIDs() ([]string, error) {
	rows, err := r.db.Query(`SELECT id FROM user ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query user table: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user table: %w", err)
	}

	return ids, nil
}

// InsertUser creates a user record.
func (r *UserRepository) InsertUser(u *model.User) error {
	query := `INSERT INTO user (id, email, name, created_at) VALUES (?, ?, ?, ?)`

	_, err := r.db.Exec(query, u.ID, u.Email, u.Name, u.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}
