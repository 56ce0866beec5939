// Пакет moderation — ядро модерации: переходы статусов документов,
// in-flight guards по id сущности и draft-редактирование метаданных.
// Backend авторитетен: переход считается состоявшимся только после
// повторного чтения канонического состояния.
package moderation

import (
	"errors"
	"fmt"
	"sync"

	"github.com/main-salman/haqnow/admin-module/internal/domain/model"
)

// Op — операция над сущностью, находящаяся в полёте.
// Tagged union вместо набора булевых флагов: одновременно возможна
// ровно одна операция на сущность.
type Op string

const (
	// OpIdle — операций нет.
	OpIdle Op = "idle"
	// OpSaving — сохранение метаданных.
	OpSaving Op = "saving"
	// OpApproving — одобрение.
	OpApproving Op = "approving"
	// OpRejecting — отклонение.
	OpRejecting Op = "rejecting"
	// OpDeleting — необратимое удаление.
	OpDeleting Op = "deleting"
)

// Ошибки ядра модерации.
var (
	// ErrOperationInFlight — по сущности уже выполняется операция.
	ErrOperationInFlight = errors.New("операция по сущности уже выполняется")
	// ErrSameStatus — сущность уже в целевом статусе (no-op).
	ErrSameStatus = errors.New("сущность уже находится в целевом статусе")
	// ErrUnknownStatus — неизвестный статус.
	ErrUnknownStatus = errors.New("неизвестный статус")
)

// CanTransition проверяет допустимость перехода документа from → to.
// Любой переход между валидными статусами разрешён (ни один статус
// не терминален для клиента); переход в текущий статус — no-op.
func CanTransition(from, to model.DocumentStatus) error {
	if !from.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, from)
	}
	if !to.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}
	if from == to {
		return ErrSameStatus
	}
	return nil
}

// Tracker — in-flight guard по числовому id сущности.
// Предотвращает дублирующиеся конкурентные операции над ОДНОЙ сущностью,
// не блокируя операции над другими.
type Tracker struct {
	mu  sync.Mutex
	ops map[int64]Op
}

// NewTracker создаёт пустой Tracker.
func NewTracker() *Tracker {
	return &Tracker{ops: make(map[int64]Op)}
}

// Begin регистрирует начало операции op над сущностью id.
// Если по id уже есть операция — ErrOperationInFlight.
func (t *Tracker) Begin(id int64, op Op) error {
	if op == OpIdle {
		return fmt.Errorf("некорректная операция: %q", op)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if current, ok := t.ops[id]; ok && current != OpIdle {
		return fmt.Errorf("%w: %s", ErrOperationInFlight, current)
	}
	t.ops[id] = op
	return nil
}

// End завершает операцию над сущностью id.
func (t *Tracker) End(id int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.ops, id)
}

// Current возвращает текущую операцию над сущностью id (OpIdle — нет).
func (t *Tracker) Current(id int64) Op {
	t.mu.Lock()
	defer t.mu.Unlock()

	if op, ok := t.ops[id]; ok {
		return op
	}
	return OpIdle
}
