package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/revticket-testdata/internal/model"
)

// UserRepo reads customer accounts from the users table.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo constructs a UserRepo with the given DB handle.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Sample fetches one user with the USER role.  It returns ErrUserNotFound
// when the table holds no customers.  NULL contact columns come back as
// empty strings.
func (r *UserRepo) Sample(ctx context.Context) (model.User, error) {
	var (
		u                  model.User
		email, name, phone sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT id,email,name,phone,role FROM users WHERE role=? LIMIT 1",
		model.RoleUser).Scan(&u.ID, &email, &name, &phone, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	u.Email = email.String
	u.Name = name.String
	u.Phone = phone.String
	return u, nil
}
