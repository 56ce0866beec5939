// bannedwords.go — сервис списка запрещённых слов.
// Слова сравниваются без учёта регистра, дубликаты отклоняются
// до отправки на backend.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/main-salman/haqnow/admin-module/internal/domain/model"
	"github.com/main-salman/haqnow/admin-module/internal/repository"
)

// BannedWordBackend — операции backend API над запрещёнными словами.
type BannedWordBackend interface {
	ListBannedWords(ctx context.Context) ([]model.BannedWord, error)
	AddBannedWord(ctx context.Context, word, reason string) (*model.BannedWord, error)
	DeleteBannedWord(ctx context.Context, id int64) error
}

// BannedWordService — сервис списка запрещённых слов.
type BannedWordService struct {
	backend   BannedWordBackend
	auditRepo repository.AuditLogRepository
	logger    *slog.Logger
}

// NewBannedWordService создаёт сервис запрещённых слов.
func NewBannedWordService(
	b BannedWordBackend,
	auditRepo repository.AuditLogRepository,
	logger *slog.Logger,
) *BannedWordService {
	return &BannedWordService{
		backend:   b,
		auditRepo: auditRepo,
		logger:    logger.With(slog.String("component", "banned_word_service")),
	}
}

// List возвращает список запрещённых слов.
func (s *BannedWordService) List(ctx context.Context) ([]model.BannedWord, error) {
	words, err := s.backend.ListBannedWords(ctx)
	if err != nil {
		return nil, mapBackendErr(err)
	}
	return words, nil
}

// Add добавляет слово в список. Пустое слово отклоняется, дубликат
// (без учёта регистра) отклоняется до запроса к backend.
func (s *BannedWordService) Add(ctx context.Context, word, reason, actor string) (*model.BannedWord, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, fmt.Errorf("%w: слово не может быть пустым", ErrValidation)
	}

	existing, err := s.backend.ListBannedWords(ctx)
	if err != nil {
		return nil, mapBackendErr(err)
	}
	for _, w := range existing {
		if strings.EqualFold(w.Word, word) {
			return nil, fmt.Errorf("%w: слово %q уже в списке", ErrConflict, w.Word)
		}
	}

	added, err := s.backend.AddBannedWord(ctx, word, reason)
	if err != nil {
		return nil, mapBackendErr(err)
	}

	s.recordAudit(ctx, actor, added.ID, "add", word)

	return added, nil
}

// Delete убирает слово из списка по ID.
func (s *BannedWordService) Delete(ctx context.Context, id int64, actor string) error {
	if err := s.backend.DeleteBannedWord(ctx, id); err != nil {
		return mapBackendErr(err)
	}

	s.recordAudit(ctx, actor, id, "delete", "")

	return nil
}

func (s *BannedWordService) recordAudit(ctx context.Context, actor string, id int64, action, detail string) {
	if s.auditRepo == nil {
		return
	}

	entry := &repository.AuditEntry{
		Actor:      actor,
		EntityType: "banned_word",
		EntityID:   id,
		Action:     action,
		Detail:     detail,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.auditRepo.Record(ctx, entry); err != nil {
		s.logger.Warn("Запись в журнал модерации не прошла",
			slog.String("action", action),
			slog.Int64("entity_id", id),
			slog.String("error", err.Error()),
		)
	}
}
