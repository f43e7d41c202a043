package services

import (
	"context"
	"errors"
	"sort"
	"testing"

	"blogapi/internal/models"
	"blogapi/internal/repository"
	"blogapi/internal/validation"
)

// Мок-хранилище ресурсов (in-memory)
type mockResourceRepo struct {
	items  map[int64]*models.Resource
	nextID int64
}

func newMockResourceRepo() *mockResourceRepo {
	return &mockResourceRepo{items: make(map[int64]*models.Resource), nextID: 1}
}

func (m *mockResourceRepo) GetByID(_ context.Context, id int64) (*models.Resource, error) {
	res, ok := m.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *res
	return &cp, nil
}

func (m *mockResourceRepo) List(_ context.Context, limit, offset int, _ string) ([]*models.Resource, error) {
	ids := make([]int64, 0, len(m.items))
	for id := range m.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var list []*models.Resource
	for i, id := range ids {
		if i < offset {
			continue
		}
		if len(list) == limit {
			break
		}
		cp := *m.items[id]
		list = append(list, &cp)
	}
	return list, nil
}

func (m *mockResourceRepo) Create(_ context.Context, res *models.Resource) (*models.Resource, error) {
	for _, it := range m.items {
		if it.Slug == res.Slug {
			return nil, repository.ErrConflict
		}
	}
	cp := *res
	cp.ID = m.nextID
	m.nextID++
	m.items[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *mockResourceRepo) Update(_ context.Context, res *models.Resource) error {
	if _, ok := m.items[res.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *res
	m.items[res.ID] = &cp
	return nil
}

func (m *mockResourceRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func TestResourceService_Create(t *testing.T) {
	repo := newMockResourceRepo()
	svc := NewResourceService(repo, "article")

	res, err := svc.Create(context.Background(), map[string]any{"title": "foo", "content": "bar"})
	if err != nil {
		t.Fatalf("ошибка создания: %v", err)
	}
	if res.ID != 1 || res.Title != "foo" || res.Content != "bar" {
		t.Fatalf("неожиданный ресурс: %+v", res)
	}
	if res.Slug == "" {
		t.Fatal("слаг не назначен")
	}
}

func TestResourceService_Create_Invalid_NotPersisted(t *testing.T) {
	repo := newMockResourceRepo()
	svc := NewResourceService(repo, "article")

	_, err := svc.Create(context.Background(), map[string]any{"title": "bar"})
	var verrs *validation.Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("ожидались ошибки валидации, получено: %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatal("невалидный ресурс не должен сохраняться")
	}
}

func TestResourceService_Patch_OnlyContent(t *testing.T) {
	repo := newMockResourceRepo()
	svc := NewResourceService(repo, "article")

	created, err := svc.Create(context.Background(), map[string]any{"title": "заголовок", "content": "контент"})
	if err != nil {
		t.Fatalf("ошибка создания: %v", err)
	}

	patched, err := svc.Patch(context.Background(), created.ID, map[string]any{"content": "новый контент"})
	if err != nil {
		t.Fatalf("ошибка patch: %v", err)
	}
	if patched.Content != "новый контент" {
		t.Fatalf("контент не обновлён: %q", patched.Content)
	}
	if patched.Title != "заголовок" {
		t.Fatalf("заголовок не должен меняться: %q", patched.Title)
	}
}

func TestResourceService_Patch_NotFound(t *testing.T) {
	svc := NewResourceService(newMockResourceRepo(), "article")

	_, err := svc.Patch(context.Background(), 99, map[string]any{"content": "xyz"})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("ожидался ErrNotFound, получено: %v", err)
	}
}

func TestResourceService_ReplaceOrCreate(t *testing.T) {
	repo := newMockResourceRepo()
	svc := NewResourceService(repo, "post")

	// несуществующий id — создание
	res, created, err := svc.ReplaceOrCreate(context.Background(), 42, map[string]any{"title": "foo", "content": "bar"})
	if err != nil {
		t.Fatalf("ошибка replace-or-create: %v", err)
	}
	if !created {
		t.Fatal("ожидался признак created=true")
	}
	if res.ID == 42 {
		t.Fatal("id должен назначаться сервером, а не браться из запроса")
	}

	// существующий id — замена
	replaced, created, err := svc.ReplaceOrCreate(context.Background(), res.ID, map[string]any{"title": "foo2", "content": "bar2"})
	if err != nil {
		t.Fatalf("ошибка замены: %v", err)
	}
	if created {
		t.Fatal("ожидался признак created=false")
	}
	if replaced.Title != "foo2" || replaced.Content != "bar2" {
		t.Fatalf("поля не заменены: %+v", replaced)
	}
}

func TestResourceService_ReplaceOrCreate_RequiresAllFields(t *testing.T) {
	repo := newMockResourceRepo()
	svc := NewResourceService(repo, "post")

	created, _ := svc.Create(context.Background(), map[string]any{"title": "foo", "content": "bar"})

	// PUT с неполным payload — невалидно, в отличие от PATCH
	_, _, err := svc.ReplaceOrCreate(context.Background(), created.ID, map[string]any{"title": "foo2"})
	var verrs *validation.Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("ожидались ошибки валидации, получено: %v", err)
	}

	got, _ := svc.GetByID(context.Background(), created.ID)
	if got.Title != "foo" || got.Content != "bar" {
		t.Fatalf("ресурс изменён невалидным запросом: %+v", got)
	}
}

func TestResourceService_Delete(t *testing.T) {
	repo := newMockResourceRepo()
	svc := NewResourceService(repo, "post")

	created, _ := svc.Create(context.Background(), map[string]any{"title": "foo", "content": "bar"})

	removed, err := svc.Delete(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("ошибка удаления: %v", err)
	}
	if removed.ID != created.ID || removed.Title != "foo" {
		t.Fatalf("ожидалось последнее состояние удалённого ресурса: %+v", removed)
	}

	if _, err := svc.GetByID(context.Background(), created.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("после удаления ожидался ErrNotFound, получено: %v", err)
	}

	if _, err := svc.Delete(context.Background(), created.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("повторное удаление должно давать ErrNotFound, получено: %v", err)
	}
}

func TestResourceService_List_Pagination(t *testing.T) {
	repo := newMockResourceRepo()
	svc := NewResourceService(repo, "article")

	titles := []string{"первый", "второй", "третий", "четвёртый"}
	for _, title := range titles {
		if _, err := svc.Create(context.Background(), map[string]any{"title": title, "content": "контент"}); err != nil {
			t.Fatalf("ошибка создания %q: %v", title, err)
		}
	}

	list, err := svc.List(context.Background(), 2, 0, "")
	if err != nil {
		t.Fatalf("ошибка списка: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("ожидалось 2 элемента, получено %d", len(list))
	}
	// порядок вставки
	if list[0].Title != "первый" || list[1].Title != "второй" {
		t.Fatalf("нарушен порядок вставки: %q, %q", list[0].Title, list[1].Title)
	}

	// дефолтный limit = 5
	all, err := svc.List(context.Background(), 0, 0, "")
	if err != nil {
		t.Fatalf("ошибка списка: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("ожидалось 4 элемента, получено %d", len(all))
	}
}
