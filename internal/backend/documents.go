// documents.go — операции document-processing API: список/чтение документов,
// атомарное обновление метаданных, смена статуса, удаление и запуск
// OCR/tagging pipeline.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/main-salman/haqnow/admin-module/internal/domain/model"
)

// rawDocument — документ в формате ответа backend.
// generated_tags приходит в одном из трёх видов: JSON-массив,
// JSON-закодированная строка или null — нормализуется на этой границе.
type rawDocument struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Country     string          `json:"country"`
	State       string          `json:"state"`
	AdminLevel  string          `json:"admin_level"`
	PDFURL      string          `json:"pdf_url"`
	Status      string          `json:"status"`
	Tags        json.RawMessage `json:"generated_tags"`
	OCRText     string          `json:"ocr_text"`
	ApprovedBy  *string         `json:"approved_by"`
	ApprovedAt  *time.Time      `json:"approved_at"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// documentListResponse — ответ GET /api/document-processing/documents.
type documentListResponse struct {
	Documents []rawDocument `json:"documents"`
	Total     int           `json:"total"`
}

// documentUpdateRequest — тело PUT для обновления документа.
// Указатели: nil-поле не отправляется и не меняется backend-ом.
type documentUpdateRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Country     *string   `json:"country,omitempty"`
	State       *string   `json:"state,omitempty"`
	AdminLevel  *string   `json:"admin_level,omitempty"`
	Tags        *[]string `json:"generated_tags,omitempty"`
	Status      *string   `json:"status,omitempty"`
	ApprovedBy  *string   `json:"approved_by,omitempty"`
}

// NormalizeTags приводит generated_tags к каноническому []string.
// Допустимые входы: null, JSON-массив строк, JSON-строка с закодированным
// массивом. Ошибка парсинга логируется и даёт пустой набор — тип-снифинг
// не расползается по компонентам.
func NormalizeTags(raw json.RawMessage, logger *slog.Logger) []string {
	if len(raw) == 0 || string(raw) == "null" {
		return []string{}
	}

	var tags []string
	if err := json.Unmarshal(raw, &tags); err == nil {
		return tags
	}

	// Возможно, массив закодирован строкой: "[\"a\",\"b\"]"
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err == nil {
		if encoded == "" {
			return []string{}
		}
		if err := json.Unmarshal([]byte(encoded), &tags); err == nil {
			return tags
		}
	}

	if logger != nil {
		logger.Warn("Не удалось разобрать generated_tags, используется пустой набор",
			slog.String("raw", truncate(string(raw), 256)),
		)
	}
	return []string{}
}

// truncate обрезает строку для логов.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// toDocument конвертирует rawDocument в доменную модель.
func (c *Client) toDocument(raw *rawDocument) *model.Document {
	return &model.Document{
		ID:            raw.ID,
		Title:         raw.Title,
		Description:   raw.Description,
		Country:       raw.Country,
		State:         raw.State,
		AdminLevel:    raw.AdminLevel,
		PDFURL:        raw.PDFURL,
		Status:        model.DocumentStatus(raw.Status),
		GeneratedTags: NormalizeTags(raw.Tags, c.logger),
		OCRText:       raw.OCRText,
		ApprovedBy:    raw.ApprovedBy,
		ApprovedAt:    raw.ApprovedAt,
		CreatedAt:     raw.CreatedAt,
		UpdatedAt:     raw.UpdatedAt,
	}
}

// ListDocuments возвращает документы в указанном статусе.
// GET /api/document-processing/documents?status={pending|approved|rejected}
func (c *Client) ListDocuments(ctx context.Context, status model.DocumentStatus) ([]*model.Document, error) {
	path := "/api/document-processing/documents?status=" + url.QueryEscape(string(status))

	var resp documentListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	docs := make([]*model.Document, 0, len(resp.Documents))
	for i := range resp.Documents {
		docs = append(docs, c.toDocument(&resp.Documents[i]))
	}
	return docs, nil
}

// GetDocument возвращает документ по id.
// GET /api/document-processing/documents/{id}
func (c *Client) GetDocument(ctx context.Context, id int64) (*model.Document, error) {
	var raw rawDocument
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/document-processing/documents/%d", id), nil, &raw); err != nil {
		return nil, err
	}
	return c.toDocument(&raw), nil
}

// UpdateDocumentMetadata сохраняет отредактированные метаданные одним
// атомарным обновлением. Статус не трогается.
// PUT /api/document-processing/documents/{id}
func (c *Client) UpdateDocumentMetadata(ctx context.Context, id int64, meta model.DocumentMetadata) error {
	tags := meta.Tags
	if tags == nil {
		tags = []string{}
	}
	req := documentUpdateRequest{
		Title:       &meta.Title,
		Description: &meta.Description,
		Country:     &meta.Country,
		State:       &meta.State,
		AdminLevel:  &meta.AdminLevel,
		Tags:        &tags,
	}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/document-processing/documents/%d", id), req, nil)
}

// UpdateDocumentStatus выполняет переход статуса. Серверный updated_at
// и approved_at проставляет backend.
// PUT /api/document-processing/documents/{id}
func (c *Client) UpdateDocumentStatus(ctx context.Context, id int64, status model.DocumentStatus, actor string) error {
	s := string(status)
	req := documentUpdateRequest{Status: &s}
	if status == model.StatusApproved && actor != "" {
		req.ApprovedBy = &actor
	}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/document-processing/documents/%d", id), req, nil)
}

// DeleteDocument необратимо удаляет документ.
// DELETE /api/document-processing/delete-document/{id}
func (c *Client) DeleteDocument(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/document-processing/delete-document/%d", id), nil, nil)
}

// processDocumentRequest — тело POST process-document.
type processDocumentRequest struct {
	DocumentID int64  `json:"document_id"`
	PDFURL     string `json:"pdf_url"`
}

// ProcessDocument запускает OCR/tagging pipeline для одобренного документа.
// Fire-and-forget с точки зрения модерации: ошибка сообщается, но одобрение
// не откатывается.
// POST /api/document-processing/process-document
func (c *Client) ProcessDocument(ctx context.Context, id int64, pdfURL string) error {
	req := processDocumentRequest{DocumentID: id, PDFURL: pdfURL}
	return c.do(ctx, http.MethodPost, "/api/document-processing/process-document", req, nil)
}

// CountryStat — статистика документов по стране (для публичной карты).
type CountryStat struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

// GetCountryStats возвращает статистику по странам.
// GET /api/document-processing/statistics/countries
func (c *Client) GetCountryStats(ctx context.Context) ([]CountryStat, error) {
	var resp struct {
		Countries []CountryStat `json:"countries"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/document-processing/statistics/countries", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Countries, nil
}
