package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"blogapi/internal/logger"
	"blogapi/internal/middleware"
	"blogapi/internal/models"
	"blogapi/internal/services"
	"blogapi/internal/utils/helpers"
)

type TokenHandler struct {
	authService *services.AuthService
}

func NewTokenHandler(authService *services.AuthService) *TokenHandler {
	return &TokenHandler{authService: authService}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"X-Auth-Token"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// IssueToken godoc
// @Summary Выдать токен по логину и паролю
// @Tags auth
// @Accept json
// @Produce json
// @Param input body credentialsRequest true "Учётные данные"
// @Success 200 {object} tokenResponse
// @Failure 400 {string} string "Ошибка формы"
// @Failure 401 {string} string "Неверные учётные данные"
// @Router /api/tokens [post]
func (h *TokenHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("Невалидный JSON при запросе токена", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	if req.Username == "" || req.Password == "" {
		helpers.Error(w, http.StatusBadRequest, "Нужны username и password")
		return
	}

	token, err := h.authService.IssueToken(r.Context(), req.Username, req.Password)
	if err != nil {
		// Детали не раскрываем: неизвестный логин и неверный пароль неразличимы.
		helpers.Error(w, http.StatusUnauthorized, "Неверные учётные данные")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(tokenResponse{Token: token})
}

// Register godoc
// @Summary Регистрация нового аккаунта
// @Tags auth
// @Accept json
// @Produce json
// @Param input body registerRequest true "Данные регистрации"
// @Success 201 {string} string "Аккаунт создан"
// @Failure 400 {string} string "Ошибка валидации"
// @Router /api/register [post]
func (h *TokenHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("Ошибка декодирования JSON в Register", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		helpers.Error(w, http.StatusBadRequest, "Нужны username, email и password")
		return
	}
	logger.WithCtx(r.Context()).Info("Регистрация пользователя", zap.String("username", req.Username), zap.String("email", req.Email))

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
	}

	if err := h.authService.RegisterUser(r.Context(), user, req.Password); err != nil {
		helpers.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	helpers.JSON(w, http.StatusCreated, "Пользователь успешно зарегистрирован")
}

// RotateAPIKey godoc
// @Summary Перевыпустить свой api-ключ
// @Tags auth
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} tokenResponse
// @Failure 401 {string} string "Неавторизован"
// @Router /api/profile/api-key [post]
func (h *TokenHandler) RotateAPIKey(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromCtx(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Неавторизован")
		return
	}

	newKey, err := h.authService.RotateAPIKey(r.Context(), user.ID)
	if err != nil {
		logger.WithCtx(r.Context()).Error("Ошибка ротации ключа", zap.Error(err), zap.Int64("user_id", user.ID))
		helpers.Error(w, http.StatusInternalServerError, "Не удалось обновить ключ")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(tokenResponse{Token: newKey})
}
