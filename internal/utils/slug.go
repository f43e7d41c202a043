package utils

import (
	"strings"
	"time"
	"unicode"
)

// BuildSlug строит слаг ресурса из даты создания и заголовка:
// "24-12-2015-my-first-post". Слаг уникален на уровне БД и после
// создания не меняется.
func BuildSlug(createdAt time.Time, title string) string {
	return createdAt.Format("02-01-2006") + "-" + Slugify(title)
}

// Slugify приводит строку к url-виду: нижний регистр, буквы и цифры,
// всё остальное схлопывается в одиночные дефисы.
func Slugify(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash && b.Len() > 0 {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
