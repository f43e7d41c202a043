package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"blogapi/internal/logger"
	"blogapi/internal/models"
	"blogapi/internal/utils"
)

// ErrUnauthorized — единый исход любой неудачной аутентификации.
// Неизвестный пользователь и неверный пароль намеренно неразличимы,
// чтобы не раскрывать существование аккаунтов.
var ErrUnauthorized = errors.New("неверные учётные данные")

// RoleAPI — роль, дающая право на мутирующие операции API.
const RoleAPI = "api"

type AuthService struct {
	repo UserRepo
}

func NewAuthService(repo UserRepo) *AuthService {
	return &AuthService{repo: repo}
}

type UserRepo interface {
	IsUsernameTaken(ctx context.Context, username string) (bool, error)
	IsEmailTaken(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByAPIKey(ctx context.Context, apiKey string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateAPIKey(ctx context.Context, userID int64, apiKey string) error
}

func (s *AuthService) RegisterUser(ctx context.Context, input *models.User, plainPassword string) error {
	logger.Log.Info("Регистрация пользователя (service)", zap.String("username", input.Username), zap.String("email", input.Email))
	if exists, err := s.repo.IsUsernameTaken(ctx, input.Username); exists || err != nil {
		if err != nil {
			logger.Log.Error("Ошибка проверки username", zap.Error(err))
		}
		return errors.New("имя пользователя уже занято")
	}
	if exists, err := s.repo.IsEmailTaken(ctx, input.Email); exists || err != nil {
		if err != nil {
			logger.Log.Error("Ошибка проверки email", zap.Error(err))
		}
		return errors.New("адрес электронной почты уже зарегистрирован")
	}

	hashed, err := utils.HashPassword(plainPassword)
	if err != nil {
		logger.Log.Error("Ошибка хеширования пароля", zap.Error(err))
		return err
	}

	input.PasswordHash = hashed
	input.Enabled = true
	input.Roles = []string{RoleAPI}
	input.APIKey = uuid.NewString()

	if err := s.repo.CreateUser(ctx, input); err != nil {
		logger.Log.Error("Ошибка создания пользователя", zap.Error(err))
		return err
	}
	logger.Log.Info("Пользователь зарегистрирован (service)", zap.String("username", input.Username))
	return nil
}

// IssueToken проверяет логин/пароль и возвращает стабильный api-ключ аккаунта.
// Никаких мутаций: чистое чтение и сравнение. Любая неудача — ErrUnauthorized.
func (s *AuthService) IssueToken(ctx context.Context, username, password string) (string, error) {
	logger.Log.Info("Запрос токена (service)", zap.String("username", username))

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Warn("Пользователь не найден (service)", zap.String("username", username), zap.Error(err))
		return "", ErrUnauthorized
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Log.Warn("Неверный пароль (service)", zap.String("username", username))
		return "", ErrUnauthorized
	}

	if !user.Enabled {
		logger.Log.Warn("Аккаунт отключён (service)", zap.String("username", username))
		return "", ErrUnauthorized
	}

	logger.Log.Info("Токен выдан (service)", zap.String("username", username))
	return user.APIKey, nil
}

// GetByAPIKey — для bearer-middleware: находит аккаунт по ключу из заголовка.
func (s *AuthService) GetByAPIKey(ctx context.Context, apiKey string) (*models.User, error) {
	if apiKey == "" {
		return nil, ErrUnauthorized
	}
	user, err := s.repo.GetByAPIKey(ctx, apiKey)
	if err != nil {
		logger.Log.Warn("Ключ не найден (service)", zap.Error(err))
		return nil, ErrUnauthorized
	}
	if !user.Enabled {
		logger.Log.Warn("Аккаунт отключён (service)", zap.Int64("user_id", user.ID))
		return nil, ErrUnauthorized
	}
	return user, nil
}

// RotateAPIKey выпускает новый api-ключ вместо старого. Старый ключ
// немедленно перестаёт действовать.
func (s *AuthService) RotateAPIKey(ctx context.Context, userID int64) (string, error) {
	logger.Log.Info("Ротация api-ключа (service)", zap.Int64("user_id", userID))

	newKey := uuid.NewString()
	if err := s.repo.UpdateAPIKey(ctx, userID, newKey); err != nil {
		logger.Log.Error("Ошибка ротации api-ключа (service)", zap.Error(err), zap.Int64("user_id", userID))
		return "", err
	}

	logger.Log.Info("Api-ключ обновлён (service)", zap.Int64("user_id", userID))
	return newKey, nil
}
