package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AuditEntry — запись журнала действий модерации.
// Журнал локальный: backend подтверждает переходы, Admin Module
// фиксирует, кто и что инициировал.
type AuditEntry struct {
	// ID — uuid записи.
	ID string
	// Actor — email администратора, выполнившего действие.
	Actor string
	// EntityType — тип сущности: document, comment, banned_word,
	// admin_account, api_key, translation.
	EntityType string
	// EntityID — id сущности в backend.
	EntityID int64
	// Action — действие: approve, reject, save, delete, ban, unban,
	// create, update, bulk_update.
	Action string
	// FromStatus / ToStatus — статусы до и после (пустые для CRUD-действий).
	FromStatus string
	ToStatus   string
	// Detail — произвольное текстовое пояснение.
	Detail string
	// CreatedAt — время записи.
	CreatedAt time.Time
}

// AuditLogRepository — интерфейс журнала действий.
type AuditLogRepository interface {
	// Record сохраняет запись журнала. ID и CreatedAt заполняются здесь.
	Record(ctx context.Context, entry *AuditEntry) error
	// List возвращает записи журнала (новые первыми) с пагинацией.
	// entityType — фильтр по типу сущности (пустая строка — все).
	List(ctx context.Context, entityType string, limit, offset int) ([]AuditEntry, error)
	// Count возвращает количество записей под фильтром.
	Count(ctx context.Context, entityType string) (int, error)
}

// auditLogRepo — реализация AuditLogRepository.
type auditLogRepo struct {
	db DBTX
}

// NewAuditLogRepository создаёт репозиторий журнала действий.
func NewAuditLogRepository(db DBTX) AuditLogRepository {
	return &auditLogRepo{db: db}
}

// Record сохраняет запись журнала.
func (r *auditLogRepo) Record(ctx context.Context, entry *AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	query := `
		INSERT INTO moderation_audit
			(id, actor, entity_type, entity_id, action, from_status, to_status, detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	err := r.db.QueryRow(ctx, query,
		entry.ID, entry.Actor, entry.EntityType, entry.EntityID,
		entry.Action, entry.FromStatus, entry.ToStatus, entry.Detail,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка записи журнала модерации: %w", err)
	}
	return nil
}

// List возвращает записи журнала, новые первыми.
func (r *auditLogRepo) List(ctx context.Context, entityType string, limit, offset int) ([]AuditEntry, error) {
	query := `
		SELECT id, actor, entity_type, entity_id, action, from_status, to_status, detail, created_at
		FROM moderation_audit
		WHERE ($1 = '' OR entity_type = $1)
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, entityType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения журнала модерации: %w", err)
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var e AuditEntry
		if err := rows.Scan(
			&e.ID, &e.Actor, &e.EntityType, &e.EntityID,
			&e.Action, &e.FromStatus, &e.ToStatus, &e.Detail, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи журнала: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count возвращает количество записей под фильтром.
func (r *auditLogRepo) Count(ctx context.Context, entityType string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM moderation_audit WHERE ($1 = '' OR entity_type = $1)`,
		entityType,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта записей журнала: %w", err)
	}
	return count, nil
}
