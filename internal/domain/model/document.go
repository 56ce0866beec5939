// Пакет model — доменные модели Admin Module платформы HaqNow.
// Канонические данные принадлежат document-processing backend;
// модели здесь — нормализованное представление ответов его API.
package model

import "time"

// DocumentStatus — статус документа в жизненном цикле модерации.
type DocumentStatus string

const (
	// StatusPending — документ загружен, ожидает решения администратора.
	StatusPending DocumentStatus = "pending"
	// StatusApproved — документ одобрен и виден на публичном сайте.
	StatusApproved DocumentStatus = "approved"
	// StatusRejected — документ отклонён.
	StatusRejected DocumentStatus = "rejected"
)

// Valid проверяет, является ли статус одним из известных значений.
func (s DocumentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Document — документ платформы раскрытия.
// Поле GeneratedTags нормализуется на границе backend-клиента:
// API может вернуть массив, JSON-строку или null (см. backend.NormalizeTags).
type Document struct {
	// ID — идентификатор документа в backend.
	ID int64 `json:"id"`
	// Title — заголовок документа.
	Title string `json:"title"`
	// Description — описание документа.
	Description string `json:"description"`
	// Country — страна, к которой относится документ.
	Country string `json:"country"`
	// State — регион/штат (может быть пустым).
	State string `json:"state"`
	// AdminLevel — административный уровень (federal, state, municipal...).
	AdminLevel string `json:"admin_level"`
	// PDFURL — ссылка на файл документа (пустая — файл ещё не загружен).
	PDFURL string `json:"pdf_url"`
	// Status — текущий статус модерации.
	Status DocumentStatus `json:"status"`
	// GeneratedTags — упорядоченный набор тегов (после нормализации).
	GeneratedTags []string `json:"generated_tags"`
	// OCRText — распознанный текст (read-only, формируется backend pipeline).
	OCRText string `json:"ocr_text,omitempty"`
	// ApprovedBy — email администратора, одобрившего документ.
	ApprovedBy *string `json:"approved_by,omitempty"`
	// ApprovedAt — время одобрения.
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	// CreatedAt / UpdatedAt — серверные timestamps.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DocumentMetadata — редактируемые поля документа (draft edits клиента).
// Сохраняются одним атомарным обновлением перед сменой статуса.
type DocumentMetadata struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Country     string   `json:"country"`
	State       string   `json:"state"`
	AdminLevel  string   `json:"admin_level"`
	Tags        []string `json:"generated_tags"`
}
