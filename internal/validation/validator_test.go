package validation

import (
	"strings"
	"testing"

	"blogapi/internal/models"
)

func TestApply_Create_Success(t *testing.T) {
	res := &models.Resource{}
	errs := Apply(res, map[string]any{"title": "foo", "content": "bar"}, ModeCreate)
	if errs != nil {
		t.Fatalf("неожиданные ошибки валидации: %v", errs)
	}
	if res.Title != "foo" || res.Content != "bar" {
		t.Fatalf("поля не присвоены: %+v", res)
	}
}

func TestApply_Create_MissingFields(t *testing.T) {
	res := &models.Resource{}
	errs := Apply(res, map[string]any{"title": "bar"}, ModeCreate)
	if errs == nil {
		t.Fatal("ожидалась ошибка: контент не прислан")
	}
	if !hasViolation(errs, "content", "required") {
		t.Fatalf("нет ошибки required для content: %v", errs)
	}
	if res.Title != "" {
		t.Fatal("кандидат изменён при невалидных данных")
	}
}

func TestApply_LengthBounds(t *testing.T) {
	cases := []struct {
		name   string
		fields map[string]any
		field  string
	}{
		{"короткий заголовок", map[string]any{"title": "ab", "content": "abc"}, "title"},
		{"длинный заголовок", map[string]any{"title": strings.Repeat("я", 256), "content": "abc"}, "title"},
		{"короткий контент", map[string]any{"title": "abc", "content": "ab"}, "content"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := &models.Resource{}
			errs := Apply(res, tc.fields, ModeCreate)
			if errs == nil || !hasViolation(errs, tc.field, "length") {
				t.Fatalf("ожидалась ошибка length для %s, получено: %v", tc.field, errs)
			}
		})
	}

	// граница включительно: 255 рун — валидно
	res := &models.Resource{}
	if errs := Apply(res, map[string]any{"title": strings.Repeat("я", 255), "content": "abc"}, ModeCreate); errs != nil {
		t.Fatalf("255 символов должны проходить: %v", errs)
	}
}

func TestApply_Partial_OnlySuppliedFields(t *testing.T) {
	res := &models.Resource{Title: "старый заголовок", Content: "старый контент"}
	errs := Apply(res, map[string]any{"content": "новый"}, ModePartial)
	if errs != nil {
		t.Fatalf("неожиданные ошибки: %v", errs)
	}
	if res.Content != "новый" {
		t.Fatalf("контент не обновлён: %q", res.Content)
	}
	if res.Title != "старый заголовок" {
		t.Fatalf("заголовок не должен был измениться: %q", res.Title)
	}
}

func TestApply_Partial_ValidatesSupplied(t *testing.T) {
	res := &models.Resource{Title: "заголовок", Content: "контент"}
	errs := Apply(res, map[string]any{"content": "x"}, ModePartial)
	if errs == nil || !hasViolation(errs, "content", "length") {
		t.Fatalf("короткий присланный контент должен отклоняться: %v", errs)
	}
	if res.Content != "контент" {
		t.Fatal("кандидат изменён при невалидных данных")
	}
}

func TestApply_UnknownFieldRejected(t *testing.T) {
	res := &models.Resource{}
	errs := Apply(res, map[string]any{"title": "foo", "content": "bar", "author": "кто-то"}, ModeCreate)
	if errs == nil || !hasViolation(errs, "author", "unknown_field") {
		t.Fatalf("лишнее поле должно отклонять весь payload: %v", errs)
	}
	if res.Title != "" || res.Content != "" {
		t.Fatal("кандидат изменён при невалидных данных")
	}
}

func TestApply_NonStringRejected(t *testing.T) {
	res := &models.Resource{}
	errs := Apply(res, map[string]any{"title": 42, "content": "bar"}, ModeCreate)
	if errs == nil || !hasViolation(errs, "title", "invalid_type") {
		t.Fatalf("нестроковый заголовок должен отклоняться: %v", errs)
	}
}

func hasViolation(errs *Errors, field, code string) bool {
	for _, f := range errs.Fields {
		if f.Field == field && f.Code == code {
			return true
		}
	}
	return false
}
