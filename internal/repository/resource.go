package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"blogapi/internal/models"
)

type ResourceRepo interface {
	GetByID(ctx context.Context, id int64) (*models.Resource, error)
	List(ctx context.Context, limit, offset int, order string) ([]*models.Resource, error)
	Create(ctx context.Context, res *models.Resource) (*models.Resource, error)
	Update(ctx context.Context, res *models.Resource) error
	Delete(ctx context.Context, id int64) error
}

// resourceRepo — один репозиторий на оба вида ресурсов: статьи и посты
// отличаются только таблицей и политикой удаления.
type resourceRepo struct {
	db         *pgxpool.Pool
	table      string
	softDelete bool
}

func NewResourceRepo(db *pgxpool.Pool, table string, softDelete bool) ResourceRepo {
	return &resourceRepo{db: db, table: table, softDelete: softDelete}
}

// Колонки, по которым разрешена сортировка списка.
var orderColumns = map[string]struct{}{
	"id":         {},
	"title":      {},
	"created_at": {},
}

func (r *resourceRepo) GetByID(ctx context.Context, id int64) (*models.Resource, error) {
	q := fmt.Sprintf(`
		SELECT id, title, content, slug, created_at, updated_at, deleted_at
		FROM %s WHERE id = $1`, r.table)
	if r.softDelete {
		q += " AND deleted_at IS NULL"
	}

	var res models.Resource
	err := r.db.QueryRow(ctx, q, id).Scan(
		&res.ID, &res.Title, &res.Content, &res.Slug,
		&res.CreatedAt, &res.UpdatedAt, &res.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *resourceRepo) List(ctx context.Context, limit, offset int, order string) ([]*models.Resource, error) {
	orderBy, err := buildOrderBy(order)
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`
		SELECT id, title, content, slug, created_at, updated_at, deleted_at
		FROM %s`, r.table)
	if r.softDelete {
		q += " WHERE deleted_at IS NULL"
	}
	q += fmt.Sprintf(" ORDER BY %s LIMIT $1 OFFSET $2", orderBy)

	rows, err := r.db.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*models.Resource
	for rows.Next() {
		var res models.Resource
		if err := rows.Scan(
			&res.ID, &res.Title, &res.Content, &res.Slug,
			&res.CreatedAt, &res.UpdatedAt, &res.DeletedAt,
		); err != nil {
			return nil, err
		}
		list = append(list, &res)
	}
	return list, rows.Err()
}

func (r *resourceRepo) Create(ctx context.Context, res *models.Resource) (*models.Resource, error) {
	q := fmt.Sprintf(`
		INSERT INTO %s (title, content, slug)
		VALUES ($1, $2, $3)
		RETURNING id, title, content, slug, created_at, updated_at, deleted_at`, r.table)

	var out models.Resource
	err := r.db.QueryRow(ctx, q, res.Title, res.Content, res.Slug).Scan(
		&out.ID, &out.Title, &out.Content, &out.Slug,
		&out.CreatedAt, &out.UpdatedAt, &out.DeletedAt,
	)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &out, nil
}

func (r *resourceRepo) Update(ctx context.Context, res *models.Resource) error {
	// slug неизменяем после создания — не трогаем.
	q := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, content = $2, updated_at = NOW()
		WHERE id = $3`, r.table)
	if r.softDelete {
		q += " AND deleted_at IS NULL"
	}

	tag, err := r.db.Exec(ctx, q, res.Title, res.Content, res.ID)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *resourceRepo) Delete(ctx context.Context, id int64) error {
	var q string
	if r.softDelete {
		q = fmt.Sprintf(`UPDATE %s SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, r.table)
	} else {
		q = fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)
	}

	tag, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// buildOrderBy проверяет колонку по белому списку; префикс "-" — по убыванию.
// Пустое значение — порядок вставки (id ASC).
func buildOrderBy(order string) (string, error) {
	if order == "" {
		return "id ASC", nil
	}
	dir := "ASC"
	col := order
	if strings.HasPrefix(order, "-") {
		dir = "DESC"
		col = order[1:]
	}
	if _, ok := orderColumns[col]; !ok {
		return "", fmt.Errorf("недопустимая колонка сортировки: %q", col)
	}
	return col + " " + dir, nil
}

// mapPgError переводит нарушение уникальности (SQLSTATE 23505) в ErrConflict.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrConflict
	}
	return err
}
