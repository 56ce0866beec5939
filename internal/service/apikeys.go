// apikeys.go — сервис API-ключей.
// Ключ в открытом виде возвращается только при создании и нигде
// не сохраняется.
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

// APIKeyBackend — операции backend API над API-ключами.
type APIKeyBackend interface {
	ListAPIKeys(ctx context.Context) ([]model.APIKey, error)
	CreateAPIKey(ctx context.Context, name string, scopes []model.APIKeyScope) (*model.CreatedAPIKey, error)
	SetAPIKeyActive(ctx context.Context, id int64, active bool) error
	DeleteAPIKey(ctx context.Context, id int64) error
}

// APIKeyService — сервис API-ключей.
type APIKeyService struct {
	backend   APIKeyBackend
	auditRepo repository.AuditLogRepository
	logger    *slog.Logger
}

// NewAPIKeyService создаёт сервис API-ключей.
func NewAPIKeyService(
	b APIKeyBackend,
	auditRepo repository.AuditLogRepository,
	logger *slog.Logger,
) *APIKeyService {
	return &APIKeyService{
		backend:   b,
		auditRepo: auditRepo,
		logger:    logger.With(slog.String("component", "api_key_service")),
	}
}

// List возвращает список API-ключей (без открытых значений).
func (s *APIKeyService) List(ctx context.Context) ([]model.APIKey, error) {
	keys, err := s.backend.ListAPIKeys(ctx)
	if err != nil {
		return nil, mapBackendErr(err)
	}
	return keys, nil
}

// Create создаёт API-ключ. Возвращённый CreatedAPIKey содержит ключ
// в открытом виде — единственный раз, когда он доступен.
func (s *APIKeyService) Create(ctx context.Context, name string, scopes []model.APIKeyScope, actor string) (*model.CreatedAPIKey, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: имя ключа не может быть пустым", ErrValidation)
	}
	if len(scopes) == 0 {
		return nil, fmt.Errorf("%w: ключу нужен хотя бы один scope", ErrValidation)
	}
	for _, sc := range scopes {
		if !model.ValidAPIKeyScope(sc) {
			return nil, fmt.Errorf("%w: недопустимый scope %q", ErrValidation, sc)
		}
	}

	created, err := s.backend.CreateAPIKey(ctx, name, scopes)
	if err != nil {
		return nil, mapBackendErr(err)
	}

	// В лог попадает только префикс, открытый ключ не логируется.
	s.logger.Info("API-ключ создан",
		slog.Int64("key_id", created.ID),
		slog.String("name", created.Name),
		slog.String("prefix", created.KeyPrefix),
	)
	s.recordAudit(ctx, actor, created.ID, "create", created.Name)

	return created, nil
}

// SetActive включает или отключает ключ.
func (s *APIKeyService) SetActive(ctx context.Context, id int64, active bool, actor string) error {
	if err := s.backend.SetAPIKeyActive(ctx, id, active); err != nil {
		return mapBackendErr(err)
	}

	action := "deactivate"
	if active {
		action = "activate"
	}
	s.recordAudit(ctx, actor, id, action, "")

	return nil
}

// Delete удаляет ключ окончательно.
func (s *APIKeyService) Delete(ctx context.Context, id int64, actor string) error {
	if err := s.backend.DeleteAPIKey(ctx, id); err != nil {
		return mapBackendErr(err)
	}

	s.recordAudit(ctx, actor, id, "delete", "")

	return nil
}

func (s *APIKeyService) recordAudit(ctx context.Context, actor string, id int64, action, detail string) {
	if s.auditRepo == nil {
		return
	}

	entry := &repository.AuditEntry{
		Actor:      actor,
		EntityType: "api_key",
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
