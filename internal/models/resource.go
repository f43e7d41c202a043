package models

import "time"

// Resource — статья или пост блога. Оба вида структурно одинаковы,
// различаются только таблицей и политикой удаления.
type Resource struct {
	ID        int64      `db:"id"         json:"id"`
	Title     string     `db:"title"      json:"title"`
	Content   string     `db:"content"    json:"content"`
	Slug      string     `db:"slug"       json:"slug,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
	DeletedAt *time.Time `db:"deleted_at" json:"-"`
}
