// translations.go — сервис массового редактирования переводов.
// Правки накапливаются в черновике по языкам и отправляются на backend
// одним bulk-запросом на каждую пару (язык, секция).
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/main-salman/haqnow/admin-module/internal/domain/model"
)

// TranslationBackend — операции backend API над переводами.
type TranslationBackend interface {
	ListTranslations(ctx context.Context, lang string) ([]model.Translation, error)
	BulkUpdateTranslations(ctx context.Context, lang, section string, changes map[string]string) error
	DeleteTranslation(ctx context.Context, lang, section, key string) error
}

// draftKey — адрес правки внутри черновика языка.
type draftKey struct {
	Section string
	Key     string
}

// TranslationService — сервис массового редактирования переводов.
// Черновик хранится в памяти процесса: правки одного администратора
// накапливаются и сохраняются одним действием.
type TranslationService struct {
	backend TranslationBackend
	logger  *slog.Logger

	mu     sync.Mutex
	drafts map[string]map[draftKey]string // язык → правки
}

// NewTranslationService создаёт сервис переводов.
func NewTranslationService(b TranslationBackend, logger *slog.Logger) *TranslationService {
	return &TranslationService{
		backend: b,
		logger:  logger.With(slog.String("component", "translation_service")),
		drafts:  make(map[string]map[draftKey]string),
	}
}

// List возвращает переводы языка с backend.
func (s *TranslationService) List(ctx context.Context, lang string) ([]model.Translation, error) {
	if strings.TrimSpace(lang) == "" {
		return nil, fmt.Errorf("%w: язык не указан", ErrValidation)
	}

	translations, err := s.backend.ListTranslations(ctx, lang)
	if err != nil {
		return nil, mapBackendErr(err)
	}
	return translations, nil
}

// Set записывает правку в черновик языка. Backend не трогается
// до вызова SaveAll.
func (s *TranslationService) Set(lang, section, key, value string) error {
	if strings.TrimSpace(lang) == "" || strings.TrimSpace(section) == "" || strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: язык, секция и ключ обязательны", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.drafts[lang] == nil {
		s.drafts[lang] = make(map[draftKey]string)
	}
	s.drafts[lang][draftKey{Section: section, Key: key}] = value
	return nil
}

// UnsavedCount возвращает число несохранённых правок языка.
func (s *TranslationService) UnsavedCount(lang string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts[lang])
}

// Discard сбрасывает черновик языка без сохранения.
func (s *TranslationService) Discard(lang string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, lang)
}

// SaveAll отправляет накопленные правки языка на backend: один
// bulk-запрос на каждую секцию. При отказе одной секции уже
// сохранённые секции не откатываются — их правки убираются из
// черновика, остальные сохраняются при повторном вызове.
func (s *TranslationService) SaveAll(ctx context.Context, lang string) (int, error) {
	s.mu.Lock()
	draft := s.drafts[lang]
	if len(draft) == 0 {
		s.mu.Unlock()
		return 0, nil
	}

	// Группируем правки по секциям
	bySection := make(map[string]map[string]string)
	for k, v := range draft {
		if bySection[k.Section] == nil {
			bySection[k.Section] = make(map[string]string)
		}
		bySection[k.Section][k.Key] = v
	}
	s.mu.Unlock()

	// Секции в детерминированном порядке
	sections := make([]string, 0, len(bySection))
	for sec := range bySection {
		sections = append(sections, sec)
	}
	sort.Strings(sections)

	saved := 0
	for _, sec := range sections {
		changes := bySection[sec]
		if err := s.backend.BulkUpdateTranslations(ctx, lang, sec, changes); err != nil {
			return saved, fmt.Errorf("секция %q: %w", sec, mapBackendErr(err))
		}

		// Убираем сохранённые правки из черновика
		s.mu.Lock()
		for key := range changes {
			delete(s.drafts[lang], draftKey{Section: sec, Key: key})
		}
		if len(s.drafts[lang]) == 0 {
			delete(s.drafts, lang)
		}
		s.mu.Unlock()

		saved += len(changes)
	}

	s.logger.Info("Правки переводов сохранены",
		slog.String("lang", lang),
		slog.Int("count", saved),
	)

	return saved, nil
}

// FAQ возвращает пары custom FAQ языка.
func (s *TranslationService) FAQ(ctx context.Context, lang string) ([]model.FAQEntry, error) {
	translations, err := s.List(ctx, lang)
	if err != nil {
		return nil, err
	}
	return model.ParseFAQEntries(translations), nil
}

// AddFAQ создаёт новую пару вопрос/ответ custom FAQ: генерирует ID
// и сразу сохраняет оба ключа одним bulk-запросом.
func (s *TranslationService) AddFAQ(ctx context.Context, lang, section, question, answer string) (*model.FAQEntry, error) {
	if strings.TrimSpace(question) == "" || strings.TrimSpace(answer) == "" {
		return nil, fmt.Errorf("%w: вопрос и ответ не могут быть пустыми", ErrValidation)
	}

	id := uuid.New().String()
	changes := map[string]string{
		model.FAQQuestionKey(id): question,
		model.FAQAnswerKey(id):   answer,
	}

	if err := s.backend.BulkUpdateTranslations(ctx, lang, section, changes); err != nil {
		return nil, mapBackendErr(err)
	}

	return &model.FAQEntry{ID: id, Question: question, Answer: answer}, nil
}

// DeleteFAQ удаляет пару FAQ: оба ключа по отдельности.
func (s *TranslationService) DeleteFAQ(ctx context.Context, lang, section, id string) error {
	if err := s.backend.DeleteTranslation(ctx, lang, section, model.FAQQuestionKey(id)); err != nil {
		return mapBackendErr(err)
	}
	if err := s.backend.DeleteTranslation(ctx, lang, section, model.FAQAnswerKey(id)); err != nil {
		return mapBackendErr(err)
	}
	return nil
}

// ExportJSON выгружает переводы языка как JSON-объект
// {секция: {ключ: значение}}.
func (s *TranslationService) ExportJSON(ctx context.Context, lang string) ([]byte, error) {
	translations, err := s.List(ctx, lang)
	if err != nil {
		return nil, err
	}

	out := make(map[string]map[string]string)
	for _, tr := range translations {
		if out[tr.Section] == nil {
			out[tr.Section] = make(map[string]string)
		}
		out[tr.Section][tr.Key] = tr.Value
	}

	return json.MarshalIndent(out, "", "  ")
}
