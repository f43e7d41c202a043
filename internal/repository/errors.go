package repository

import "errors"

var (
	// ErrNotFound — запись с таким id отсутствует (или мягко удалена).
	ErrNotFound = errors.New("запись не найдена")
	// ErrConflict — нарушение уникального ограничения (например, гонка создания).
	ErrConflict = errors.New("конфликт уникальности")
)
