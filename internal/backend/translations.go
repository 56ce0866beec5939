// translations.go — admin API переводов публичного сайта.
package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/main-salman/haqnow/admin-module/internal/domain/model"
)

// translationListResponse — ответ списка переводов языка.
type translationListResponse struct {
	Translations []model.Translation `json:"translations"`
}

// ListTranslations возвращает все переводы для языка (все секции).
// GET /api/translations/admin/{lang}
func (c *Client) ListTranslations(ctx context.Context, lang string) ([]model.Translation, error) {
	path := "/api/translations/admin/" + url.PathEscape(lang)
	var resp translationListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Translations, nil
}

// bulkUpdateRequest — тело bulk-обновления: только изменённые ключи.
type bulkUpdateRequest struct {
	Translations map[string]string `json:"translations"`
}

// BulkUpdateTranslations сохраняет изменённые ключи одной парой
// (language, section) за один запрос.
// PUT /api/translations/admin/bulk-update/{lang}/{section}
func (c *Client) BulkUpdateTranslations(ctx context.Context, lang, section string, changes map[string]string) error {
	path := fmt.Sprintf("/api/translations/admin/bulk-update/%s/%s",
		url.PathEscape(lang), url.PathEscape(section))
	return c.do(ctx, http.MethodPut, path, bulkUpdateRequest{Translations: changes}, nil)
}

// DeleteTranslation удаляет ключ перевода (используется для custom FAQ).
// DELETE /api/translations/admin/{lang}/{section}/{key}
func (c *Client) DeleteTranslation(ctx context.Context, lang, section, key string) error {
	path := fmt.Sprintf("/api/translations/admin/%s/%s/%s",
		url.PathEscape(lang), url.PathEscape(section), url.PathEscape(key))
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
