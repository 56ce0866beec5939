// admins.go — сервис управления учётными записями администраторов.
// Защита от самоблокировки: администратор не может удалить, отключить
// или лишить прав super admin самого себя. Проверки выполняются до
// запроса к backend.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/main-salman/haqnow/admin-module/internal/backend"
	"github.com/main-salman/haqnow/admin-module/internal/domain/model"
	"github.com/main-salman/haqnow/admin-module/internal/repository"
)

// Минимальная длина пароля администратора.
const minPasswordLength = 12

// AdminBackend — операции backend API над учётными записями администраторов.
type AdminBackend interface {
	ListAdmins(ctx context.Context) ([]model.AdminAccount, error)
	CreateAdmin(ctx context.Context, email, name, password string, isSuperAdmin bool) (*model.AdminAccount, error)
	UpdateAdmin(ctx context.Context, id int64, update backend.AdminUpdate) (*model.AdminAccount, error)
	DeleteAdmin(ctx context.Context, id int64) error
}

// AdminService — сервис управления администраторами.
type AdminService struct {
	backend   AdminBackend
	auditRepo repository.AuditLogRepository
	logger    *slog.Logger
}

// NewAdminService создаёт сервис управления администраторами.
func NewAdminService(
	b AdminBackend,
	auditRepo repository.AuditLogRepository,
	logger *slog.Logger,
) *AdminService {
	return &AdminService{
		backend:   b,
		auditRepo: auditRepo,
		logger:    logger.With(slog.String("component", "admin_service")),
	}
}

// List возвращает список администраторов.
func (s *AdminService) List(ctx context.Context) ([]model.AdminAccount, error) {
	admins, err := s.backend.ListAdmins(ctx)
	if err != nil {
		return nil, mapBackendErr(err)
	}
	return admins, nil
}

// Create создаёт нового администратора. Email и пароль валидируются
// до запроса к backend.
func (s *AdminService) Create(ctx context.Context, email, name, password string, isSuperAdmin bool, actor string) (*model.AdminAccount, error) {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: некорректный email %q", ErrValidation, email)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: имя не может быть пустым", ErrValidation)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: пароль короче %d символов", ErrValidation, minPasswordLength)
	}

	admin, err := s.backend.CreateAdmin(ctx, email, name, password, isSuperAdmin)
	if err != nil {
		return nil, mapBackendErr(err)
	}

	s.logger.Info("Администратор создан",
		slog.Int64("admin_id", admin.ID),
		slog.String("email", admin.Email),
		slog.Bool("is_super_admin", admin.IsSuperAdmin),
	)
	s.recordAudit(ctx, actor, admin.ID, "create", admin.Email)

	return admin, nil
}

// Update изменяет администратора. Понижение собственных прав super admin
// и отключение собственной учётной записи запрещены.
func (s *AdminService) Update(ctx context.Context, id int64, update backend.AdminUpdate, actorID int64, actor string) (*model.AdminAccount, error) {
	if id == actorID {
		if update.IsSuperAdmin != nil && !*update.IsSuperAdmin {
			return nil, fmt.Errorf("%w: нельзя лишить себя прав super admin", ErrSelfAction)
		}
		if update.IsActive != nil && !*update.IsActive {
			return nil, fmt.Errorf("%w: нельзя отключить собственную учётную запись", ErrSelfAction)
		}
	}

	admin, err := s.backend.UpdateAdmin(ctx, id, update)
	if err != nil {
		return nil, mapBackendErr(err)
	}

	s.recordAudit(ctx, actor, id, "update", admin.Email)

	return admin, nil
}

// Delete удаляет администратора. Удаление собственной учётной записи
// запрещено.
func (s *AdminService) Delete(ctx context.Context, id int64, actorID int64, actor string) error {
	if id == actorID {
		return fmt.Errorf("%w: нельзя удалить собственную учётную запись", ErrSelfAction)
	}

	if err := s.backend.DeleteAdmin(ctx, id); err != nil {
		return mapBackendErr(err)
	}

	s.logger.Info("Администратор удалён",
		slog.Int64("admin_id", id),
		slog.String("actor", actor),
	)
	s.recordAudit(ctx, actor, id, "delete", "")

	return nil
}

func (s *AdminService) recordAudit(ctx context.Context, actor string, id int64, action, detail string) {
	if s.auditRepo == nil {
		return
	}

	entry := &repository.AuditEntry{
		Actor:      actor,
		EntityType: "admin",
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
