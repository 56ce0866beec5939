package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/main-salman/haqnow/admin-module/internal/backend"
	"github.com/main-salman/haqnow/admin-module/internal/domain/model"
)

// fakeTranslationBackend — подмена backend API для тестов.
type fakeTranslationBackend struct {
	mu           sync.Mutex
	translations map[string]map[string]map[string]string // lang → section → key → value
	bulkCalls    []string                                // "lang/section" в порядке вызовов
	failSection  string                                  // секция, bulk-запрос которой отклоняется
}

func newFakeTranslationBackend() *fakeTranslationBackend {
	return &fakeTranslationBackend{
		translations: make(map[string]map[string]map[string]string),
	}
}

func (f *fakeTranslationBackend) seed(lang, section, key, value string) {
	if f.translations[lang] == nil {
		f.translations[lang] = make(map[string]map[string]string)
	}
	if f.translations[lang][section] == nil {
		f.translations[lang][section] = make(map[string]string)
	}
	f.translations[lang][section][key] = value
}

func (f *fakeTranslationBackend) ListTranslations(_ context.Context, lang string) ([]model.Translation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Translation
	for section, kv := range f.translations[lang] {
		for key, value := range kv {
			out = append(out, model.Translation{Language: lang, Section: section, Key: key, Value: value})
		}
	}
	return out, nil
}

func (f *fakeTranslationBackend) BulkUpdateTranslations(_ context.Context, lang, section string, changes map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if section == f.failSection {
		return fmt.Errorf("%w: 503", backend.ErrBackendUnavailable)
	}
	f.bulkCalls = append(f.bulkCalls, lang+"/"+section)
	for key, value := range changes {
		f.seed(lang, section, key, value)
	}
	return nil
}

func (f *fakeTranslationBackend) DeleteTranslation(_ context.Context, lang, section, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.translations[lang] != nil && f.translations[lang][section] != nil {
		delete(f.translations[lang][section], key)
	}
	return nil
}

func TestTranslationDraft_SaveAll(t *testing.T) {
	fb := newFakeTranslationBackend()
	svc := NewTranslationService(fb, testLogger())

	// Правки в двух секциях
	_ = svc.Set("de", "navigation", "home", "Startseite")
	_ = svc.Set("de", "navigation", "search", "Suche")
	_ = svc.Set("de", "footer", "about", "Über uns")

	if n := svc.UnsavedCount("de"); n != 3 {
		t.Errorf("UnsavedCount = %d, ожидается 3", n)
	}

	saved, err := svc.SaveAll(context.Background(), "de")
	if err != nil {
		t.Fatalf("SaveAll() вернул ошибку: %v", err)
	}
	if saved != 3 {
		t.Errorf("SaveAll() сохранил %d правок, ожидается 3", saved)
	}
	if n := svc.UnsavedCount("de"); n != 0 {
		t.Errorf("UnsavedCount после сохранения = %d, ожидается 0", n)
	}

	// Один bulk-запрос на секцию
	if len(fb.bulkCalls) != 2 {
		t.Errorf("bulk-запросов %d, ожидается 2 (по одному на секцию): %v", len(fb.bulkCalls), fb.bulkCalls)
	}
	if fb.translations["de"]["navigation"]["home"] != "Startseite" {
		t.Error("правка navigation/home не дошла до backend")
	}
}

func TestTranslationDraft_PartialFailureKeepsRest(t *testing.T) {
	fb := newFakeTranslationBackend()
	fb.failSection = "navigation"
	svc := NewTranslationService(fb, testLogger())

	_ = svc.Set("de", "footer", "about", "Über uns")
	_ = svc.Set("de", "navigation", "home", "Startseite")

	// Секции сохраняются в алфавитном порядке: footer пройдёт,
	// navigation упадёт и останется в черновике.
	saved, err := svc.SaveAll(context.Background(), "de")
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("SaveAll() = %v, ожидается ErrBackendUnavailable", err)
	}
	if saved != 1 {
		t.Errorf("SaveAll() сохранил %d правок до отказа, ожидается 1", saved)
	}
	if n := svc.UnsavedCount("de"); n != 1 {
		t.Errorf("UnsavedCount после частичного отказа = %d, ожидается 1", n)
	}

	// Повторный вызов досохраняет остаток
	fb.failSection = ""
	saved, err = svc.SaveAll(context.Background(), "de")
	if err != nil {
		t.Fatalf("повторный SaveAll() вернул ошибку: %v", err)
	}
	if saved != 1 {
		t.Errorf("повторный SaveAll() сохранил %d правок, ожидается 1", saved)
	}
}

func TestTranslationDraft_Discard(t *testing.T) {
	fb := newFakeTranslationBackend()
	svc := NewTranslationService(fb, testLogger())

	_ = svc.Set("fr", "navigation", "home", "Accueil")
	svc.Discard("fr")

	if n := svc.UnsavedCount("fr"); n != 0 {
		t.Errorf("UnsavedCount после Discard = %d, ожидается 0", n)
	}

	saved, _ := svc.SaveAll(context.Background(), "fr")
	if saved != 0 {
		t.Errorf("SaveAll() после Discard сохранил %d правок, ожидается 0", saved)
	}
}

func TestTranslationSet_Validation(t *testing.T) {
	svc := NewTranslationService(newFakeTranslationBackend(), testLogger())

	if err := svc.Set("", "navigation", "home", "x"); !errors.Is(err, ErrValidation) {
		t.Errorf("Set() без языка = %v, ожидается ErrValidation", err)
	}
	if err := svc.Set("de", "", "home", "x"); !errors.Is(err, ErrValidation) {
		t.Errorf("Set() без секции = %v, ожидается ErrValidation", err)
	}
}

func TestFAQ_RoundTrip(t *testing.T) {
	fb := newFakeTranslationBackend()
	svc := NewTranslationService(fb, testLogger())

	entry, err := svc.AddFAQ(context.Background(), "en", "faq", "How do I submit?", "Use the upload form.")
	if err != nil {
		t.Fatalf("AddFAQ() вернул ошибку: %v", err)
	}
	if entry.ID == "" {
		t.Fatal("AddFAQ() вернул пустой ID")
	}

	entries, err := svc.FAQ(context.Background(), "en")
	if err != nil {
		t.Fatalf("FAQ() вернул ошибку: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("FAQ() вернул %d пар, ожидается 1", len(entries))
	}
	if entries[0].Question != "How do I submit?" || entries[0].Answer != "Use the upload form." {
		t.Errorf("FAQ() = %+v, пара не совпадает", entries[0])
	}

	if err := svc.DeleteFAQ(context.Background(), "en", "faq", entry.ID); err != nil {
		t.Fatalf("DeleteFAQ() вернул ошибку: %v", err)
	}
	entries, _ = svc.FAQ(context.Background(), "en")
	if len(entries) != 0 {
		t.Errorf("FAQ() после удаления вернул %d пар, ожидается 0", len(entries))
	}
}

func TestFAQ_OrphanedQuestionDropped(t *testing.T) {
	fb := newFakeTranslationBackend()
	fb.seed("en", "faq", model.FAQQuestionKey("orphan"), "Question without answer?")
	fb.seed("en", "faq", model.FAQQuestionKey("ok"), "Paired question?")
	fb.seed("en", "faq", model.FAQAnswerKey("ok"), "Paired answer.")
	svc := NewTranslationService(fb, testLogger())

	entries, err := svc.FAQ(context.Background(), "en")
	if err != nil {
		t.Fatalf("FAQ() вернул ошибку: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "ok" {
		t.Errorf("FAQ() = %+v, осиротевший вопрос должен отбрасываться", entries)
	}
}

func TestExportJSON(t *testing.T) {
	fb := newFakeTranslationBackend()
	fb.seed("de", "navigation", "home", "Startseite")
	svc := NewTranslationService(fb, testLogger())

	data, err := svc.ExportJSON(context.Background(), "de")
	if err != nil {
		t.Fatalf("ExportJSON() вернул ошибку: %v", err)
	}
	want := "\"home\": \"Startseite\""
	if !strings.Contains(string(data), want) {
		t.Errorf("ExportJSON() = %s, нет фрагмента %s", data, want)
	}
}
