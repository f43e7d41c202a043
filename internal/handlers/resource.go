package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"blogapi/internal/logger"
	"blogapi/internal/repository"
	"blogapi/internal/services"
	"blogapi/internal/utils/helpers"
	"blogapi/internal/validation"
)

// ResourceHandler — HTTP-граница для одного вида ресурса. Инстанцируется
// дважды: для статей и для постов.
type ResourceHandler struct {
	svc      services.ResourceService
	kind     string
	basePath string // например "/api/articles" — для Location-заголовков
}

func NewResourceHandler(svc services.ResourceService, kind, basePath string) *ResourceHandler {
	return &ResourceHandler{svc: svc, kind: kind, basePath: basePath}
}

// List godoc
// @Summary Список ресурсов
// @Tags resources
// @Produce json
// @Param limit query int false "Сколько вернуть (по умолчанию 5)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Param order query string false "Колонка сортировки: id, title, created_at; префикс '-' — по убыванию"
// @Success 200 {array} models.Resource
// @Router /api/articles [get]
func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	order := r.URL.Query().Get("order")

	list, err := h.svc.List(r.Context(), limit, offset, order)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("Ошибка списка", zap.String("kind", h.kind), zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	helpers.JSON(w, http.StatusOK, list)
}

// Get godoc
// @Summary Получить ресурс по ID
// @Tags resources
// @Produce json
// @Param id path int true "ID ресурса"
// @Success 200 {object} models.Resource
// @Failure 404 {object} helpers.Response
// @Router /api/articles/{id} [get]
func (h *ResourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)

	res, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusOK, res)
}

// Create godoc
// @Summary Создать ресурс
// @Tags resources
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body map[string]string true "Поля ресурса (title, content)"
// @Success 201 {object} models.Resource
// @Failure 400 {object} helpers.ValidationResponse
// @Router /api/articles [post]
func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	fields, ok := decodeFields(w, r)
	if !ok {
		return
	}

	res, err := h.svc.Create(r.Context(), fields)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	w.Header().Set("Location", h.location(res.ID))
	helpers.JSON(w, http.StatusCreated, res)
}

// Put godoc
// @Summary Заменить ресурс (создать, если не существует)
// @Tags resources
// @Security ApiKeyAuth
// @Accept json
// @Param id path int true "ID ресурса"
// @Param input body map[string]string true "Поля ресурса (title, content)"
// @Success 201 {object} models.Resource "Создано"
// @Success 303 {string} string "Заменено, см. Location"
// @Failure 400 {object} helpers.ValidationResponse
// @Router /api/articles/{id} [put]
func (h *ResourceHandler) Put(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	fields, ok := decodeFields(w, r)
	if !ok {
		return
	}

	res, created, err := h.svc.ReplaceOrCreate(r.Context(), id, fields)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	w.Header().Set("Location", h.location(res.ID))
	if created {
		helpers.JSON(w, http.StatusCreated, res)
		return
	}
	// Замена существующего: отправляем читателя за свежей версией.
	w.WriteHeader(http.StatusSeeOther)
}

// Patch godoc
// @Summary Частично обновить ресурс
// @Tags resources
// @Security ApiKeyAuth
// @Accept json
// @Param id path int true "ID ресурса"
// @Param input body map[string]string true "Изменяемые поля"
// @Success 204 {string} string "Обновлено"
// @Failure 400 {object} helpers.ValidationResponse
// @Failure 404 {object} helpers.Response
// @Router /api/articles/{id} [patch]
func (h *ResourceHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	fields, ok := decodeFields(w, r)
	if !ok {
		return
	}

	if _, err := h.svc.Patch(r.Context(), id, fields); err != nil {
		h.renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete godoc
// @Summary Удалить ресурс
// @Tags resources
// @Security ApiKeyAuth
// @Param id path int true "ID ресурса"
// @Success 204 {string} string "Удалено"
// @Failure 404 {object} helpers.Response
// @Router /api/articles/{id} [delete]
func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)

	if _, err := h.svc.Delete(r.Context(), id); err != nil {
		h.renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Preview godoc
// @Summary Предпросмотр HTML-контента
// @Description Возвращает очищенный HTML без сохранения в БД
// @Tags resources
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body map[string]string true "Сырой HTML"
// @Success 200 {object} map[string]string
// @Router /api/articles/preview [post]
func (h *ResourceHandler) Preview(w http.ResponseWriter, r *http.Request) {
	type reqT struct {
		Content string `json:"content"`
	}
	var req reqT
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("Невалидный JSON при предпросмотре", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	safe := h.svc.PreviewHTML(req.Content)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"content": safe})
}

// renderError переводит исход сервиса в статус ответа:
// Invalid -> 400, NotFound -> 404, конфликт уникальности -> 409, прочее -> 500.
func (h *ResourceHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.WithCtx(r.Context())

	var verrs *validation.Errors
	switch {
	case errors.As(err, &verrs):
		log.Warn("Валидация не пройдена", zap.String("kind", h.kind), zap.Error(err))
		helpers.ValidationError(w, verrs)
	case errors.Is(err, repository.ErrNotFound):
		log.Warn("Не найдено", zap.String("kind", h.kind))
		helpers.Error(w, http.StatusNotFound, "Не найдено")
	case errors.Is(err, repository.ErrConflict):
		log.Warn("Конфликт уникальности", zap.String("kind", h.kind), zap.Error(err))
		helpers.Error(w, http.StatusConflict, "Конфликт: запись уже существует")
	default:
		log.Error("Внутренняя ошибка", zap.String("kind", h.kind), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Внутренняя ошибка")
	}
}

func (h *ResourceHandler) location(id int64) string {
	return fmt.Sprintf("%s/%d", h.basePath, id)
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

// decodeFields читает тело как карту полей: нужна именно карта, чтобы
// отличать «поле не прислано» от «прислано пустым» и ловить лишние поля.
func decodeFields(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		logger.WithCtx(r.Context()).Warn("Невалидный JSON", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return nil, false
	}
	return fields, true
}
