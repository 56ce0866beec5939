// draft.go — draft-редактирование метаданных документа.
// Draft накладывает локальные правки администратора на последнее
// каноническое состояние; правки фиксируются одним обновлением
// перед переходом статуса (edit-then-transition).
package moderation

import (
	"errors"
	"strings"

	"github.com/main-salman/haqnow/admin-module/internal/domain/model"
)

// Ошибки редактирования тегов.
var (
	// ErrEmptyTag — пустой тег (после trim).
	ErrEmptyTag = errors.New("тег не может быть пустым")
	// ErrDuplicateTag — тег уже есть в наборе (без учёта регистра).
	ErrDuplicateTag = errors.New("тег уже существует")
)

// TagSet — упорядоченное множество тегов с case-insensitive уникальностью.
type TagSet struct {
	tags []string
}

// NewTagSet создаёт TagSet из канонического списка тегов.
// Входной список считается уже нормализованным (границей backend-клиента),
// дубликаты молча схлопываются с сохранением первого вхождения.
func NewTagSet(tags []string) *TagSet {
	ts := &TagSet{}
	for _, tag := range tags {
		_ = ts.Add(tag)
	}
	return ts
}

// Add добавляет тег. Пустой (после trim) или дублирующийся
// (без учёта регистра) тег отклоняется, набор не меняется.
func (ts *TagSet) Add(tag string) error {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ErrEmptyTag
	}
	if ts.Contains(tag) {
		return ErrDuplicateTag
	}
	ts.tags = append(ts.tags, tag)
	return nil
}

// Remove удаляет тег (без учёта регистра). Чистая set-difference:
// отсутствующий тег — no-op.
func (ts *TagSet) Remove(tag string) {
	lower := strings.ToLower(strings.TrimSpace(tag))
	for i, t := range ts.tags {
		if strings.ToLower(t) == lower {
			ts.tags = append(ts.tags[:i], ts.tags[i+1:]...)
			return
		}
	}
}

// Contains проверяет наличие тега без учёта регистра.
func (ts *TagSet) Contains(tag string) bool {
	lower := strings.ToLower(strings.TrimSpace(tag))
	for _, t := range ts.tags {
		if strings.ToLower(t) == lower {
			return true
		}
	}
	return false
}

// Strings возвращает копию тегов в порядке добавления.
func (ts *TagSet) Strings() []string {
	out := make([]string, len(ts.tags))
	copy(out, ts.tags)
	return out
}

// Len возвращает количество тегов.
func (ts *TagSet) Len() int { return len(ts.tags) }

// Draft — локальные правки метаданных поверх канонического документа.
// Правки не уходят в backend до явного commit (save/approve/reject).
type Draft struct {
	meta  model.DocumentMetadata
	tags  *TagSet
	dirty bool
}

// NewDraft создаёт Draft из канонического состояния документа.
func NewDraft(doc *model.Document) *Draft {
	return &Draft{
		meta: model.DocumentMetadata{
			Title:       doc.Title,
			Description: doc.Description,
			Country:     doc.Country,
			State:       doc.State,
			AdminLevel:  doc.AdminLevel,
		},
		tags: NewTagSet(doc.GeneratedTags),
	}
}

// SetTitle / SetDescription / SetCountry / SetState / SetAdminLevel
// записывают правку поля. Совпадающее значение не помечает draft как dirty.

func (d *Draft) SetTitle(v string) {
	if d.meta.Title != v {
		d.meta.Title = v
		d.dirty = true
	}
}

func (d *Draft) SetDescription(v string) {
	if d.meta.Description != v {
		d.meta.Description = v
		d.dirty = true
	}
}

func (d *Draft) SetCountry(v string) {
	if d.meta.Country != v {
		d.meta.Country = v
		d.dirty = true
	}
}

func (d *Draft) SetState(v string) {
	if d.meta.State != v {
		d.meta.State = v
		d.dirty = true
	}
}

func (d *Draft) SetAdminLevel(v string) {
	if d.meta.AdminLevel != v {
		d.meta.AdminLevel = v
		d.dirty = true
	}
}

// AddTag добавляет тег в draft-набор (правила TagSet.Add).
func (d *Draft) AddTag(tag string) error {
	if err := d.tags.Add(tag); err != nil {
		return err
	}
	d.dirty = true
	return nil
}

// RemoveTag удаляет тег из draft-набора.
func (d *Draft) RemoveTag(tag string) {
	before := d.tags.Len()
	d.tags.Remove(tag)
	if d.tags.Len() != before {
		d.dirty = true
	}
}

// ReplaceTags заменяет весь набор тегов новым списком.
// Список валидируется потегово: пустой или дублирующийся тег — ошибка,
// draft не меняется.
func (d *Draft) ReplaceTags(tags []string) error {
	ts := &TagSet{}
	for _, tag := range tags {
		if err := ts.Add(tag); err != nil {
			return err
		}
	}
	d.tags = ts
	d.dirty = true
	return nil
}

// Tags возвращает текущий draft-набор тегов.
func (d *Draft) Tags() []string { return d.tags.Strings() }

// Dirty сообщает, есть ли несохранённые правки.
func (d *Draft) Dirty() bool { return d.dirty }

// Metadata возвращает метаданные для атомарного сохранения.
func (d *Draft) Metadata() model.DocumentMetadata {
	meta := d.meta
	meta.Tags = d.tags.Strings()
	return meta
}
