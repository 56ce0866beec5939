// settings.go — сервис настроек административной панели.
// Типизированные геттеры параметров модерации, валидация ключей
// и CRUD-операции поверх локального хранилища.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/main-salman/haqnow/admin-module/internal/repository"
)

// Допустимые ключи настроек (dot-notation).
// Используется для валидации при Set.
var validSettingKeys = map[string]string{
	"moderation.page_size":             "Размер страницы очереди модерации",
	"moderation.auto_refresh_interval": "Интервал автообновления очереди (например, 30s)",
	"moderation.default_country":       "Страна по умолчанию в фильтре документов",
	"comments.flag_threshold_override": "Переопределение порога жалоб для автоскрытия",
}

// UISettingsService — сервис настроек административной панели.
type UISettingsService struct {
	repo   repository.UISettingsRepository
	logger *slog.Logger
}

// NewUISettingsService создаёт сервис настроек панели.
func NewUISettingsService(
	repo repository.UISettingsRepository,
	logger *slog.Logger,
) *UISettingsService {
	return &UISettingsService{
		repo:   repo,
		logger: logger.With(slog.String("component", "ui_settings_service")),
	}
}

// Get возвращает значение настройки по ключу.
// Возвращает ErrNotFound если настройка не существует.
func (s *UISettingsService) Get(ctx context.Context, key string) (*repository.UISetting, error) {
	setting, err := s.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения настройки %q: %w", key, err)
	}
	return setting, nil
}

// Set устанавливает значение настройки. Валидирует ключ и значение.
// updatedBy — администратор, выполняющий изменение.
func (s *UISettingsService) Set(ctx context.Context, key, value, updatedBy string) error {
	// Валидация ключа
	if _, ok := validSettingKeys[key]; !ok {
		return fmt.Errorf("%w: недопустимый ключ настройки %q", ErrValidation, key)
	}

	// Валидация значения по типу ключа
	if err := s.validateValue(key, value); err != nil {
		return err
	}

	if err := s.repo.Set(ctx, key, value, updatedBy); err != nil {
		return fmt.Errorf("ошибка сохранения настройки %q: %w", key, err)
	}

	s.logger.Info("Настройка обновлена",
		slog.String("key", key),
		slog.String("updated_by", updatedBy),
	)
	return nil
}

// List возвращает все настройки.
func (s *UISettingsService) List(ctx context.Context) ([]repository.UISetting, error) {
	settings, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка настроек: %w", err)
	}
	return settings, nil
}

// Delete удаляет настройку по ключу.
func (s *UISettingsService) Delete(ctx context.Context, key string) error {
	if err := s.repo.Delete(ctx, key); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("ошибка удаления настройки %q: %w", key, err)
	}

	s.logger.Info("Настройка удалена", slog.String("key", key))
	return nil
}

// --- Типизированные геттеры --- //

// GetModerationPageSize возвращает размер страницы очереди модерации.
// По умолчанию 25.
func (s *UISettingsService) GetModerationPageSize(ctx context.Context) int {
	setting, err := s.repo.Get(ctx, "moderation.page_size")
	if err != nil {
		return 25
	}
	n, err := strconv.Atoi(setting.Value)
	if err != nil || n < 1 {
		return 25
	}
	return n
}

// GetAutoRefreshInterval возвращает интервал автообновления очереди.
// По умолчанию 30 секунд.
func (s *UISettingsService) GetAutoRefreshInterval(ctx context.Context) time.Duration {
	setting, err := s.repo.Get(ctx, "moderation.auto_refresh_interval")
	if err != nil {
		return 30 * time.Second
	}
	d, err := time.ParseDuration(setting.Value)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// --- Валидация значений --- //

// validateValue проверяет корректность значения для указанного ключа.
func (s *UISettingsService) validateValue(key, value string) error {
	switch key {
	case "moderation.page_size":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > 500 {
			return fmt.Errorf("%w: %s должен быть целым числом от 1 до 500", ErrValidation, key)
		}
	case "moderation.auto_refresh_interval":
		if value != "" {
			if _, err := time.ParseDuration(value); err != nil {
				return fmt.Errorf("%w: %s — некорректная длительность: %s", ErrValidation, key, value)
			}
		}
	case "comments.flag_threshold_override":
		if value != "" {
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 {
				return fmt.Errorf("%w: %s должен быть положительным целым числом", ErrValidation, key)
			}
		}
	}
	return nil
}
