package repositories

import (
	"context"

	"rentflow/internal/models"
)

type pgUserRepo struct {
	db Querier
}

func NewUserRepo(db Querier) UserRepository {
	return &pgUserRepo{db: db}
}

func (r *pgUserRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, password_hash, email, first_name, last_name, phone, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query,
		user.Username, user.PasswordHash, user.Email, user.FirstName, user.LastName, user.Phone, string(user.Role),
	).Scan(&user.ID, &user.CreatedAt)
}

func (r *pgUserRepo) Get(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	var role string
	query := `
		SELECT id, username, password_hash, email, first_name, last_name, phone, role, created_at
		FROM users
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.Email,
		&user.FirstName, &user.LastName, &user.Phone, &role, &user.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	user.Role = models.Role(role)
	return user, nil
}

func (r *pgUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	var role string
	query := `
		SELECT id, username, password_hash, email, first_name, last_name, phone, role, created_at
		FROM users
		WHERE username = $1
	`
	err := r.db.QueryRow(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.Email,
		&user.FirstName, &user.LastName, &user.Phone, &role, &user.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	user.Role = models.Role(role)
	return user, nil
}
