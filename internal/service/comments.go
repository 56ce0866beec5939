// comments.go — сервис модерации комментариев.
// Очередь на модерацию, одобрение/отклонение, удаление. На комментарий
// одновременно допускается одна операция.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/main-salman/haqnow/admin-module/internal/domain/model"
	"github.com/main-salman/haqnow/admin-module/internal/domain/moderation"
	"github.com/main-salman/haqnow/admin-module/internal/repository"
)

// CommentBackend — операции backend API над комментариями.
type CommentBackend interface {
	ListAllComments(ctx context.Context) ([]model.DocumentComments, error)
	ListPendingComments(ctx context.Context) ([]model.Comment, error)
	UpdateCommentStatus(ctx context.Context, id int64, status model.CommentStatus) error
	DeleteComment(ctx context.Context, id int64) error
}

// CommentService — сервис модерации комментариев.
type CommentService struct {
	backend   CommentBackend
	tracker   *moderation.Tracker
	auditRepo repository.AuditLogRepository
	logger    *slog.Logger
}

// NewCommentService создаёт сервис модерации комментариев.
func NewCommentService(
	b CommentBackend,
	auditRepo repository.AuditLogRepository,
	logger *slog.Logger,
) *CommentService {
	return &CommentService{
		backend:   b,
		tracker:   moderation.NewTracker(),
		auditRepo: auditRepo,
		logger:    logger.With(slog.String("component", "comment_service")),
	}
}

// ListAll возвращает все комментарии, сгруппированные по документам.
func (s *CommentService) ListAll(ctx context.Context) ([]model.DocumentComments, error) {
	groups, err := s.backend.ListAllComments(ctx)
	if err != nil {
		return nil, mapBackendErr(err)
	}
	return groups, nil
}

// ListPending возвращает очередь комментариев на модерацию:
// ожидающие и автоматически скрытые по жалобам.
func (s *CommentService) ListPending(ctx context.Context) ([]model.Comment, error) {
	comments, err := s.backend.ListPendingComments(ctx)
	if err != nil {
		return nil, mapBackendErr(err)
	}
	return comments, nil
}

// Approve одобряет комментарий: он становится видимым, счётчик жалоб
// теряет силу.
func (s *CommentService) Approve(ctx context.Context, id int64, actor string) error {
	return s.setStatus(ctx, id, actor, moderation.OpApproving, model.CommentApproved)
}

// Reject отклоняет комментарий: он скрывается, но не удаляется.
func (s *CommentService) Reject(ctx context.Context, id int64, actor string) error {
	return s.setStatus(ctx, id, actor, moderation.OpRejecting, model.CommentRejected)
}

func (s *CommentService) setStatus(
	ctx context.Context,
	id int64,
	actor string,
	op moderation.Op,
	status model.CommentStatus,
) error {
	if err := s.tracker.Begin(id, op); err != nil {
		return ErrOperationInFlight
	}
	defer s.tracker.End(id)

	if err := s.backend.UpdateCommentStatus(ctx, id, status); err != nil {
		return mapBackendErr(err)
	}

	s.recordAudit(ctx, actor, id, string(op), string(status))

	return nil
}

// Delete удаляет комментарий окончательно. Если backend вернул 404,
// комментарий уже удалён — для вызывающего это успех.
func (s *CommentService) Delete(ctx context.Context, id int64, actor string) error {
	if err := s.tracker.Begin(id, moderation.OpDeleting); err != nil {
		return ErrOperationInFlight
	}
	defer s.tracker.End(id)

	if err := s.backend.DeleteComment(ctx, id); err != nil {
		mapped := mapBackendErr(err)
		if errors.Is(mapped, ErrNotFound) {
			s.logger.Debug("Комментарий уже удалён", slog.Int64("comment_id", id))
			return nil
		}
		return mapped
	}

	s.recordAudit(ctx, actor, id, "delete", "")

	return nil
}

// recordAudit записывает действие над комментарием в журнал модерации (best-effort).
func (s *CommentService) recordAudit(ctx context.Context, actor string, id int64, action, toStatus string) {
	if s.auditRepo == nil {
		return
	}

	entry := &repository.AuditEntry{
		Actor:      actor,
		EntityType: "comment",
		EntityID:   id,
		Action:     action,
		ToStatus:   toStatus,
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
