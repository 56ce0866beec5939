// errors.go — ошибки бизнес-логики сервисного слоя.
package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound — ресурс не найден.
	ErrNotFound = errors.New("ресурс не найден")
	// ErrValidation — ошибка валидации входных данных.
	ErrValidation = errors.New("ошибка валидации")
	// ErrConflict — конфликт (дублирующийся ресурс).
	ErrConflict = errors.New("конфликт — ресурс уже существует")
	// ErrSelfAction — администратор пытается применить действие к самому себе.
	ErrSelfAction = errors.New("действие над собственной учётной записью запрещено")
	// ErrOperationInFlight — над ресурсом уже выполняется операция.
	ErrOperationInFlight = errors.New("операция над ресурсом уже выполняется")
	// ErrBackendUnavailable — backend API недоступен.
	ErrBackendUnavailable = errors.New("backend API недоступен")
	// ErrUnauthorized — backend отклонил токен администратора.
	ErrUnauthorized = errors.New("backend отклонил токен администратора")
)

// TransitionError — частичный отказ модерации: метаданные сохранены,
// но смена статуса не прошла. Документ остаётся в исходном статусе
// с уже обновлёнными метаданными.
type TransitionError struct {
	// Saved — метаданные успели сохраниться до отказа.
	Saved bool
	// Err — исходная ошибка смены статуса.
	Err error
}

func (e *TransitionError) Error() string {
	if e.Saved {
		return fmt.Sprintf("метаданные сохранены, но смена статуса не прошла: %v", e.Err)
	}
	return fmt.Sprintf("смена статуса не прошла: %v", e.Err)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}
