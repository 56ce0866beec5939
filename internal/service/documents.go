// documents.go — сервис модерации документов.
// Инкапсулирует контракт модерации: на документ одновременно допускается
// одна операция, метаданные сохраняются ДО смены статуса, при одобрении
// запускается обработка PDF.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/main-salman/haqnow/admin-module/internal/backend"
	"github.com/main-salman/haqnow/admin-module/internal/domain/model"
	"github.com/main-salman/haqnow/admin-module/internal/domain/moderation"
	"github.com/main-salman/haqnow/admin-module/internal/repository"
)

// Метрики модерации документов.
var (
	moderationTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hq_moderation_transitions_total",
		Help: "Число подтверждённых смен статуса документов.",
	}, []string{"target"})
	processingTriggers = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hq_processing_triggers_total",
		Help: "Число запусков обработки PDF при одобрении.",
	}, []string{"result"})
)

// DocumentBackend — операции backend API над документами.
type DocumentBackend interface {
	ListDocuments(ctx context.Context, status model.DocumentStatus) ([]*model.Document, error)
	GetDocument(ctx context.Context, id int64) (*model.Document, error)
	UpdateDocumentMetadata(ctx context.Context, id int64, meta model.DocumentMetadata) error
	UpdateDocumentStatus(ctx context.Context, id int64, status model.DocumentStatus, actor string) error
	DeleteDocument(ctx context.Context, id int64) error
	ProcessDocument(ctx context.Context, id int64, pdfURL string) error
}

// MetadataEdit — частичное редактирование метаданных документа.
// nil-поле означает «оставить без изменений».
type MetadataEdit struct {
	Title       *string
	Description *string
	Country     *string
	State       *string
	AdminLevel  *string
	Tags        *[]string
}

// DocumentService — сервис модерации документов.
type DocumentService struct {
	backend   DocumentBackend
	tracker   *moderation.Tracker
	auditRepo repository.AuditLogRepository
	logger    *slog.Logger
}

// NewDocumentService создаёт сервис модерации документов.
// auditRepo может быть nil — журнал модерации тогда не ведётся.
func NewDocumentService(
	b DocumentBackend,
	auditRepo repository.AuditLogRepository,
	logger *slog.Logger,
) *DocumentService {
	return &DocumentService{
		backend:   b,
		tracker:   moderation.NewTracker(),
		auditRepo: auditRepo,
		logger:    logger.With(slog.String("component", "document_service")),
	}
}

// List возвращает документы с указанным статусом.
func (s *DocumentService) List(ctx context.Context, status model.DocumentStatus) ([]*model.Document, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: недопустимый статус %q", ErrValidation, status)
	}

	docs, err := s.backend.ListDocuments(ctx, status)
	if err != nil {
		return nil, mapBackendErr(err)
	}
	return docs, nil
}

// Get возвращает документ по ID.
func (s *DocumentService) Get(ctx context.Context, id int64) (*model.Document, error) {
	doc, err := s.backend.GetDocument(ctx, id)
	if err != nil {
		return nil, mapBackendErr(err)
	}
	return doc, nil
}

// Current возвращает операцию, выполняемую над документом в данный момент.
func (s *DocumentService) Current(id int64) moderation.Op {
	return s.tracker.Current(id)
}

// SaveMetadata сохраняет правки метаданных без смены статуса.
// Если правка не меняет ничего, запрос к backend не отправляется.
func (s *DocumentService) SaveMetadata(ctx context.Context, id int64, actor string, edit MetadataEdit) (*model.Document, error) {
	if err := s.tracker.Begin(id, moderation.OpSaving); err != nil {
		return nil, ErrOperationInFlight
	}
	defer s.tracker.End(id)

	doc, err := s.backend.GetDocument(ctx, id)
	if err != nil {
		return nil, mapBackendErr(err)
	}

	draft, dirty, err := applyEdit(doc, edit)
	if err != nil {
		return nil, err
	}
	if !dirty {
		return doc, nil
	}

	if err := s.backend.UpdateDocumentMetadata(ctx, id, draft.Metadata()); err != nil {
		return nil, mapBackendErr(err)
	}

	s.recordAudit(ctx, actor, "document", id, "save_metadata", doc.Status, doc.Status, "")

	return s.refetch(ctx, id, doc)
}

// Approve одобряет документ: сохраняет правки метаданных, переводит
// документ в approved и запускает обработку PDF (best-effort).
// При отказе смены статуса после успешного сохранения метаданных
// возвращает *TransitionError с Saved=true.
func (s *DocumentService) Approve(ctx context.Context, id int64, actor string, edit MetadataEdit) (*model.Document, error) {
	return s.transition(ctx, id, actor, moderation.OpApproving, model.StatusApproved, edit)
}

// Reject отклоняет документ: сохраняет правки метаданных и переводит
// документ в rejected.
func (s *DocumentService) Reject(ctx context.Context, id int64, actor string, edit MetadataEdit) (*model.Document, error) {
	return s.transition(ctx, id, actor, moderation.OpRejecting, model.StatusRejected, edit)
}

// transition — общий путь Approve/Reject: guard → чтение → сохранение
// метаданных → смена статуса → (обработка PDF) → перечитывание.
func (s *DocumentService) transition(
	ctx context.Context,
	id int64,
	actor string,
	op moderation.Op,
	target model.DocumentStatus,
	edit MetadataEdit,
) (*model.Document, error) {
	if err := s.tracker.Begin(id, op); err != nil {
		return nil, ErrOperationInFlight
	}
	defer s.tracker.End(id)

	doc, err := s.backend.GetDocument(ctx, id)
	if err != nil {
		return nil, mapBackendErr(err)
	}

	// Повторное нажатие: документ уже в целевом статусе, ничего не делаем.
	if doc.Status == target {
		s.logger.Debug("Документ уже в целевом статусе",
			slog.Int64("document_id", id),
			slog.String("status", string(target)),
		)
		return doc, nil
	}

	if err := moderation.CanTransition(doc.Status, target); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	draft, dirty, err := applyEdit(doc, edit)
	if err != nil {
		return nil, err
	}

	// Сначала метаданные. Если сохранение не прошло, смена статуса
	// не отправляется — документ остаётся нетронутым.
	saved := false
	if dirty {
		if err := s.backend.UpdateDocumentMetadata(ctx, id, draft.Metadata()); err != nil {
			return nil, mapBackendErr(err)
		}
		saved = true
	}

	if err := s.backend.UpdateDocumentStatus(ctx, id, target, actor); err != nil {
		s.logger.Error("Смена статуса не прошла после сохранения метаданных",
			slog.Int64("document_id", id),
			slog.String("target", string(target)),
			slog.Bool("metadata_saved", saved),
			slog.String("error", err.Error()),
		)
		return nil, &TransitionError{Saved: saved, Err: mapBackendErr(err)}
	}
	moderationTransitions.WithLabelValues(string(target)).Inc()

	// Запуск обработки PDF при одобрении — best-effort: отказ не
	// откатывает уже состоявшуюся смену статуса.
	if target == model.StatusApproved && doc.PDFURL != "" {
		if err := s.backend.ProcessDocument(ctx, id, doc.PDFURL); err != nil {
			processingTriggers.WithLabelValues("error").Inc()
			s.logger.Warn("Запуск обработки PDF не прошёл",
				slog.Int64("document_id", id),
				slog.String("error", err.Error()),
			)
		} else {
			processingTriggers.WithLabelValues("ok").Inc()
		}
	}

	s.recordAudit(ctx, actor, "document", id, string(op), doc.Status, target, "")

	return s.refetch(ctx, id, doc)
}

// Delete удаляет документ. При отказе удаления вызывающий должен
// перечитать список — возможно, документ уже удалён на backend.
func (s *DocumentService) Delete(ctx context.Context, id int64, actor string) error {
	if err := s.tracker.Begin(id, moderation.OpDeleting); err != nil {
		return ErrOperationInFlight
	}
	defer s.tracker.End(id)

	doc, err := s.backend.GetDocument(ctx, id)
	if err != nil {
		return mapBackendErr(err)
	}

	if err := s.backend.DeleteDocument(ctx, id); err != nil {
		return mapBackendErr(err)
	}

	s.recordAudit(ctx, actor, "document", id, "delete", doc.Status, "", doc.Title)

	return nil
}

// applyEdit строит черновик из документа и применяет частичную правку.
// Возвращает черновик и признак наличия изменений.
func applyEdit(doc *model.Document, edit MetadataEdit) (*moderation.Draft, bool, error) {
	draft := moderation.NewDraft(doc)

	if edit.Title != nil {
		draft.SetTitle(*edit.Title)
	}
	if edit.Description != nil {
		draft.SetDescription(*edit.Description)
	}
	if edit.Country != nil {
		draft.SetCountry(*edit.Country)
	}
	if edit.State != nil {
		draft.SetState(*edit.State)
	}
	if edit.AdminLevel != nil {
		draft.SetAdminLevel(*edit.AdminLevel)
	}
	if edit.Tags != nil {
		if err := draft.ReplaceTags(*edit.Tags); err != nil {
			return nil, false, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}

	return draft, draft.Dirty(), nil
}

// refetch перечитывает канонический документ после изменения.
// Если перечитывание не прошло, возвращает последнее известное
// состояние — изменение на backend уже состоялось.
func (s *DocumentService) refetch(ctx context.Context, id int64, last *model.Document) (*model.Document, error) {
	doc, err := s.backend.GetDocument(ctx, id)
	if err != nil {
		s.logger.Warn("Перечитывание документа после изменения не прошло",
			slog.Int64("document_id", id),
			slog.String("error", err.Error()),
		)
		return last, nil
	}
	return doc, nil
}

// recordAudit записывает действие в журнал модерации (best-effort).
func (s *DocumentService) recordAudit(
	ctx context.Context,
	actor, entityType string,
	entityID int64,
	action string,
	from, to model.DocumentStatus,
	detail string,
) {
	if s.auditRepo == nil {
		return
	}

	entry := &repository.AuditEntry{
		Actor:      actor,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		FromStatus: string(from),
		ToStatus:   string(to),
		Detail:     detail,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.auditRepo.Record(ctx, entry); err != nil {
		s.logger.Warn("Запись в журнал модерации не прошла",
			slog.String("action", action),
			slog.Int64("entity_id", entityID),
			slog.String("error", err.Error()),
		)
	}
}

// mapBackendErr преобразует ошибки backend-клиента в ошибки сервисного слоя.
func mapBackendErr(err error) error {
	switch {
	case errors.Is(err, backend.ErrNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, backend.ErrUnauthorized):
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	case errors.Is(err, backend.ErrBackendUnavailable):
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	default:
		return err
	}
}
