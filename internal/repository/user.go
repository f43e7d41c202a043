package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"blogapi/internal/logger"
	"blogapi/internal/models"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, email, password_hash, enabled, roles, api_key, created_at, updated_at`

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	logger.Log.Info("Создание пользователя (repo)", zap.String("username", user.Username), zap.String("email", user.Email))
	query := `
	INSERT INTO users (username, email, password_hash, enabled, roles, api_key)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id`
	err := r.db.QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Enabled,
		user.Roles,
		user.APIKey,
	).Scan(&user.ID)
	return mapPgError(err)
}

func (r *UserRepository) IsUsernameTaken(ctx context.Context, username string) (bool, error) {
	logger.Log.Debug("Проверка username на уникальность (repo)", zap.String("username", username))
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, username).Scan(&exists)
	if err != nil {
		logger.Log.Error("Ошибка проверки username (repo)", zap.Error(err))
	}
	return exists, err
}

func (r *UserRepository) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	logger.Log.Debug("Проверка email на уникальность (repo)", zap.String("email", email))
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, email).Scan(&exists)
	if err != nil {
		logger.Log.Error("Ошибка проверки email (repo)", zap.Error(err))
	}
	return exists, err
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	logger.Log.Debug("Получение пользователя по username (repo)", zap.String("username", username))
	return r.getBy(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *UserRepository) GetByAPIKey(ctx context.Context, apiKey string) (*models.User, error) {
	logger.Log.Debug("Получение пользователя по api-ключу (repo)")
	return r.getBy(ctx, `SELECT `+userColumns+` FROM users WHERE api_key = $1`, apiKey)
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	logger.Log.Debug("Получение пользователя по ID (repo)", zap.Int64("user_id", id))
	return r.getBy(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) UpdateAPIKey(ctx context.Context, userID int64, apiKey string) error {
	logger.Log.Info("Ротация api-ключа (repo)", zap.Int64("user_id", userID))
	query := `UPDATE users SET api_key = $1, updated_at = NOW() WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, apiKey, userID)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) getBy(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Enabled,
		&user.Roles,
		&user.APIKey,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
