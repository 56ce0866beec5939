package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// UISetting — настройка Admin UI (таблица ui_settings).
// Ключи в dot-notation, например "moderation.page_size".
type UISetting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
	// UpdatedBy — email администратора, изменившего настройку.
	UpdatedBy string
}

// UISettingsRepository — интерфейс для таблицы ui_settings.
type UISettingsRepository interface {
	// Get возвращает настройку по ключу. Если не найдена — ErrNotFound.
	Get(ctx context.Context, key string) (*UISetting, error)
	// Set создаёт или обновляет настройку (upsert).
	Set(ctx context.Context, key, value, updatedBy string) error
	// List возвращает все настройки, отсортированные по ключу.
	List(ctx context.Context) ([]UISetting, error)
	// Delete удаляет настройку по ключу.
	Delete(ctx context.Context, key string) error
}

// uiSettingsRepo — реализация UISettingsRepository.
type uiSettingsRepo struct {
	db DBTX
}

// NewUISettingsRepository создаёт репозиторий настроек Admin UI.
func NewUISettingsRepository(db DBTX) UISettingsRepository {
	return &uiSettingsRepo{db: db}
}

// Get возвращает настройку по ключу.
func (r *uiSettingsRepo) Get(ctx context.Context, key string) (*UISetting, error) {
	s := &UISetting{}
	err := r.db.QueryRow(ctx, `
		SELECT key, value, updated_at, updated_by
		FROM ui_settings
		WHERE key = $1`, key,
	).Scan(&s.Key, &s.Value, &s.UpdatedAt, &s.UpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения ui_settings[%s]: %w", key, err)
	}
	return s, nil
}

// Set создаёт или обновляет настройку (INSERT ... ON CONFLICT DO UPDATE).
func (r *uiSettingsRepo) Set(ctx context.Context, key, value, updatedBy string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO ui_settings (key, value, updated_by)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
			updated_by = EXCLUDED.updated_by,
			updated_at = NOW()`,
		key, value, updatedBy,
	)
	if err != nil {
		return fmt.Errorf("ошибка сохранения ui_settings[%s]: %w", key, err)
	}
	return nil
}

// List возвращает все настройки, отсортированные по ключу.
func (r *uiSettingsRepo) List(ctx context.Context) ([]UISetting, error) {
	rows, err := r.db.Query(ctx, `
		SELECT key, value, updated_at, updated_by
		FROM ui_settings
		ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка ui_settings: %w", err)
	}
	defer rows.Close()

	var settings []UISetting
	for rows.Next() {
		var s UISetting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt, &s.UpdatedBy); err != nil {
			return nil, fmt.Errorf("ошибка сканирования ui_settings: %w", err)
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// Delete удаляет настройку по ключу.
func (r *uiSettingsRepo) Delete(ctx context.Context, key string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM ui_settings WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("ошибка удаления ui_settings[%s]: %w", key, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
