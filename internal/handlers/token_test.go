package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blogapi/internal/models"
	"blogapi/internal/repository"
	"blogapi/internal/services"
	"blogapi/internal/utils"
)

type stubUserRepo struct {
	users map[string]*models.User
}

func (m *stubUserRepo) IsUsernameTaken(_ context.Context, username string) (bool, error) {
	_, exists := m.users[username]
	return exists, nil
}

func (m *stubUserRepo) IsEmailTaken(_ context.Context, email string) (bool, error) {
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *stubUserRepo) CreateUser(_ context.Context, user *models.User) error {
	m.users[user.Username] = user
	return nil
}

func (m *stubUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	u, ok := m.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (m *stubUserRepo) GetByAPIKey(_ context.Context, apiKey string) (*models.User, error) {
	for _, u := range m.users {
		if u.APIKey == apiKey {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *stubUserRepo) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *stubUserRepo) UpdateAPIKey(_ context.Context, userID int64, apiKey string) error {
	for _, u := range m.users {
		if u.ID == userID {
			u.APIKey = apiKey
			return nil
		}
	}
	return repository.ErrNotFound
}

func seededTokenHandler(t *testing.T) *TokenHandler {
	t.Helper()
	repo := &stubUserRepo{users: make(map[string]*models.User)}
	hashed, err := utils.HashPassword("secret")
	if err != nil {
		t.Fatalf("ошибка хеширования: %v", err)
	}
	repo.users["writer"] = &models.User{
		ID:           1,
		Username:     "writer",
		PasswordHash: hashed,
		Enabled:      true,
		Roles:        []string{services.RoleAPI},
		APIKey:       "stable-key-123",
	}
	return NewTokenHandler(services.NewAuthService(repo))
}

func TestTokenHandler_IssueToken_Success(t *testing.T) {
	h := seededTokenHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/tokens", strings.NewReader(`{"username":"writer","password":"secret"}`))
	h.IssueToken(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получен %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("невалидное тело ответа: %v", err)
	}
	if body["X-Auth-Token"] != "stable-key-123" {
		t.Fatalf("ожидался стабильный токен аккаунта, получено: %v", body)
	}
}

func TestTokenHandler_IssueToken_Unauthorized(t *testing.T) {
	h := seededTokenHandler(t)

	for name, payload := range map[string]string{
		"неизвестный пользователь": `{"username":"nobody","password":"secret"}`,
		"неверный пароль":          `{"username":"writer","password":"wrong"}`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/api/tokens", strings.NewReader(payload))
			h.IssueToken(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("ожидался 401, получен %d", rec.Code)
			}
		})
	}
}

func TestTokenHandler_IssueToken_BadForm(t *testing.T) {
	h := seededTokenHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/tokens", strings.NewReader(`{"username":"writer"}`))
	h.IssueToken(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("неполная форма: ожидался 400, получен %d", rec.Code)
	}
}

func TestTokenHandler_Register(t *testing.T) {
	repo := &stubUserRepo{users: make(map[string]*models.User)}
	h := NewTokenHandler(services.NewAuthService(repo))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/register", strings.NewReader(`{"username":"new","email":"new@example.com","password":"secret"}`))
	h.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("ожидался 201, получен %d: %s", rec.Code, rec.Body.String())
	}
	u, ok := repo.users["new"]
	if !ok || u.APIKey == "" || u.PasswordHash == "secret" {
		t.Fatalf("аккаунт создан неверно: %+v", u)
	}
}
