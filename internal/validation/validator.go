package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"blogapi/internal/models"
)

// Mode определяет строгость проверки присланных полей.
type Mode int

const (
	// ModeCreate — создание: все обязательные поля должны присутствовать.
	ModeCreate Mode = iota
	// ModeReplace — полная замена: как при создании.
	ModeReplace
	// ModePartial — частичное обновление: проверяются только присланные поля.
	ModePartial
)

const (
	TitleMinLen   = 3
	TitleMaxLen   = 255
	ContentMinLen = 3
)

// FieldError — одна ошибка валидации по конкретному полю.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Errors — структурированный набор ошибок валидации. Реализует error,
// чтобы хендлеры могли отличать его через errors.As.
type Errors struct {
	Fields []FieldError `json:"fields"`
}

func (e *Errors) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "невалидные данные (" + strings.Join(parts, "; ") + ")"
}

func (e *Errors) add(field, code, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Code: code, Message: message})
}

var known = map[string]struct{}{
	"title":   {},
	"content": {},
}

// Apply проверяет присланные поля по правилам режима и при успехе
// присваивает их кандидату. При любой ошибке кандидат не изменяется.
//
// Неизвестные поля отклоняются целиком (unknown_field) — сознательно
// выбран строгий вариант, он лучше уживается с эволюцией схемы.
func Apply(candidate *models.Resource, fields map[string]any, mode Mode) *Errors {
	errs := &Errors{}

	for name := range fields {
		if _, ok := known[name]; !ok {
			errs.add(name, "unknown_field", fmt.Sprintf("поле %q не поддерживается", name))
		}
	}

	title, titleSent, titleOK := stringField(fields, "title")
	content, contentSent, contentOK := stringField(fields, "content")
	if !titleOK {
		errs.add("title", "invalid_type", "заголовок должен быть строкой")
	}
	if !contentOK {
		errs.add("content", "invalid_type", "контент должен быть строкой")
	}

	// В Create/Replace обязательные поля должны присутствовать,
	// в Partial проверяем только то, что прислали.
	if mode != ModePartial {
		if !titleSent {
			errs.add("title", "required", "заголовок обязателен")
		}
		if !contentSent {
			errs.add("content", "required", "контент обязателен")
		}
	}

	if titleSent && titleOK {
		if l := utf8.RuneCountInString(strings.TrimSpace(title)); l < TitleMinLen || l > TitleMaxLen {
			errs.add("title", "length", fmt.Sprintf("длина заголовка должна быть от %d до %d символов", TitleMinLen, TitleMaxLen))
		}
	}
	if contentSent && contentOK {
		if l := utf8.RuneCountInString(strings.TrimSpace(content)); l < ContentMinLen {
			errs.add("content", "length", fmt.Sprintf("контент должен быть не короче %d символов", ContentMinLen))
		}
	}

	if len(errs.Fields) > 0 {
		return errs
	}

	if titleSent {
		candidate.Title = strings.TrimSpace(title)
	}
	if contentSent {
		candidate.Content = content
	}
	return nil
}

func stringField(fields map[string]any, name string) (val string, sent bool, ok bool) {
	raw, sent := fields[name]
	if !sent {
		return "", false, true
	}
	val, ok = raw.(string)
	return val, true, ok
}
