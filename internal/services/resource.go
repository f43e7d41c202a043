package services

import (
	"context"
	"errors"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"blogapi/internal/logger"
	"blogapi/internal/models"
	"blogapi/internal/repository"
	"blogapi/internal/utils"
	"blogapi/internal/validation"
)

const defaultListLimit = 5

// ResourceService — один сервис на вид ресурса (статьи, посты),
// логика реализована единожды и инстанцируется на каждый вид.
type ResourceService interface {
	List(ctx context.Context, limit, offset int, order string) ([]*models.Resource, error)
	GetByID(ctx context.Context, id int64) (*models.Resource, error)
	Create(ctx context.Context, fields map[string]any) (*models.Resource, error)
	ReplaceOrCreate(ctx context.Context, id int64, fields map[string]any) (*models.Resource, bool, error)
	Patch(ctx context.Context, id int64, fields map[string]any) (*models.Resource, error)
	Delete(ctx context.Context, id int64) (*models.Resource, error)
	PreviewHTML(rawHTML string) string
}

type resourceService struct {
	repo   repository.ResourceRepo
	kind   string
	policy *bluemonday.Policy
}

func NewResourceService(repo repository.ResourceRepo, kind string) ResourceService {
	p := bluemonday.UGCPolicy()
	p.AllowElements("img")
	p.AllowAttrs("src", "alt").OnElements("img")
	return &resourceService{repo: repo, kind: kind, policy: p}
}

func (s *resourceService) PreviewHTML(rawHTML string) string {
	// безопасно логируем только длины
	log := logger.WithCtx(context.Background())
	clean := s.policy.Sanitize(rawHTML)
	log.Debug("Предпросмотр HTML (sanitize)",
		zap.String("kind", s.kind),
		zap.Int("raw_len", len(rawHTML)),
		zap.Int("clean_len", len(clean)),
	)
	return clean
}

func (s *resourceService) List(ctx context.Context, limit, offset int, order string) ([]*models.Resource, error) {
	log := logger.WithCtx(ctx)
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	log.Debug("Получение списка",
		zap.String("kind", s.kind),
		zap.Int("limit", limit),
		zap.Int("offset", offset),
		zap.String("order", order),
	)

	list, err := s.repo.List(ctx, limit, offset, order)
	if err != nil {
		log.Error("Ошибка получения списка (repo)", zap.String("kind", s.kind), zap.Error(err))
		return nil, err
	}

	log.Debug("Список получен", zap.String("kind", s.kind), zap.Int("count", len(list)))
	return list, nil
}

func (s *resourceService) GetByID(ctx context.Context, id int64) (*models.Resource, error) {
	log := logger.WithCtx(ctx)
	log.Debug("Получение по ID", zap.String("kind", s.kind), zap.Int64("id", id))

	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Warn("Не найдено (repo)", zap.String("kind", s.kind), zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return res, nil
}

func (s *resourceService) Create(ctx context.Context, fields map[string]any) (*models.Resource, error) {
	log := logger.WithCtx(ctx)
	log.Info("Создание", zap.String("kind", s.kind), zap.Int("fields", len(fields)))

	res := &models.Resource{}
	if verrs := validation.Apply(res, fields, validation.ModeCreate); verrs != nil {
		log.Warn("Валидация не пройдена", zap.String("kind", s.kind), zap.Error(verrs))
		return nil, verrs
	}

	res.Slug = utils.BuildSlug(time.Now().UTC(), res.Title)

	created, err := s.repo.Create(ctx, res)
	if err != nil {
		log.Error("Ошибка создания (repo)", zap.String("kind", s.kind), zap.Error(err))
		return nil, err
	}

	log.Info("Создано", zap.String("kind", s.kind), zap.Int64("id", created.ID), zap.String("slug", created.Slug))
	return created, nil
}

// ReplaceOrCreate: если ресурса нет — ведём себя как Create (id назначает
// сервер), иначе полная замена. Второй результат — признак создания.
func (s *resourceService) ReplaceOrCreate(ctx context.Context, id int64, fields map[string]any) (*models.Resource, bool, error) {
	log := logger.WithCtx(ctx)
	log.Info("Замена или создание", zap.String("kind", s.kind), zap.Int64("id", id))

	existing, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		created, cerr := s.Create(ctx, fields)
		if cerr != nil {
			return nil, false, cerr
		}
		return created, true, nil
	}
	if err != nil {
		log.Error("Ошибка чтения перед заменой (repo)", zap.String("kind", s.kind), zap.Int64("id", id), zap.Error(err))
		return nil, false, err
	}

	if verrs := validation.Apply(existing, fields, validation.ModeReplace); verrs != nil {
		log.Warn("Валидация не пройдена", zap.String("kind", s.kind), zap.Int64("id", id), zap.Error(verrs))
		return nil, false, verrs
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		log.Error("Ошибка замены (repo)", zap.String("kind", s.kind), zap.Int64("id", id), zap.Error(err))
		return nil, false, err
	}

	log.Info("Заменено", zap.String("kind", s.kind), zap.Int64("id", existing.ID))
	return existing, false, nil
}

func (s *resourceService) Patch(ctx context.Context, id int64, fields map[string]any) (*models.Resource, error) {
	log := logger.WithCtx(ctx)
	log.Info("Частичное обновление", zap.String("kind", s.kind), zap.Int64("id", id))

	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Warn("Не найдено для обновления (repo)", zap.String("kind", s.kind), zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	if verrs := validation.Apply(res, fields, validation.ModePartial); verrs != nil {
		log.Warn("Валидация не пройдена", zap.String("kind", s.kind), zap.Int64("id", id), zap.Error(verrs))
		return nil, verrs
	}

	if err := s.repo.Update(ctx, res); err != nil {
		log.Error("Ошибка обновления (repo)", zap.String("kind", s.kind), zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	log.Info("Обновлено", zap.String("kind", s.kind), zap.Int64("id", id))
	return res, nil
}

// Delete возвращает последнее состояние удалённого ресурса — для подтверждения.
func (s *resourceService) Delete(ctx context.Context, id int64) (*models.Resource, error) {
	log := logger.WithCtx(ctx)
	log.Info("Удаление", zap.String("kind", s.kind), zap.Int64("id", id))

	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Warn("Не найдено для удаления (repo)", zap.String("kind", s.kind), zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("Ошибка удаления (repo)", zap.String("kind", s.kind), zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	log.Info("Удалено", zap.String("kind", s.kind), zap.Int64("id", id))
	return res, nil
}
