// adminmgmt.go — admin-management API: учётные записи администраторов
// и API-ключи.
package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/main-salman/haqnow/admin-module/internal/domain/model"
)

// adminListResponse — ответ списка администраторов.
type adminListResponse struct {
	Admins []model.AdminAccount `json:"admins"`
}

// ListAdmins возвращает все учётные записи администраторов.
// GET /api/admin-management/admins
func (c *Client) ListAdmins(ctx context.Context) ([]model.AdminAccount, error) {
	var resp adminListResponse
	if err := c.do(ctx, http.MethodGet, "/api/admin-management/admins", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Admins, nil
}

// createAdminRequest — тело создания администратора.
type createAdminRequest struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Password     string `json:"password"`
	IsSuperAdmin bool   `json:"is_super_admin"`
}

// CreateAdmin создаёт учётную запись администратора.
// POST /api/admin-management/admins
func (c *Client) CreateAdmin(ctx context.Context, email, name, password string, isSuperAdmin bool) (*model.AdminAccount, error) {
	req := createAdminRequest{Email: email, Name: name, Password: password, IsSuperAdmin: isSuperAdmin}
	var created model.AdminAccount
	if err := c.do(ctx, http.MethodPost, "/api/admin-management/admins", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// AdminUpdate — изменяемые поля администратора (nil — без изменений).
type AdminUpdate struct {
	Name         *string `json:"name,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
	IsSuperAdmin *bool   `json:"is_super_admin,omitempty"`
}

// UpdateAdmin обновляет учётную запись.
// PUT /api/admin-management/admins/{id}
func (c *Client) UpdateAdmin(ctx context.Context, id int64, update AdminUpdate) (*model.AdminAccount, error) {
	var updated model.AdminAccount
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/admin-management/admins/%d", id), update, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteAdmin удаляет учётную запись администратора.
// DELETE /api/admin-management/admins/{id}
func (c *Client) DeleteAdmin(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/admin-management/admins/%d", id), nil, nil)
}

// apiKeyListResponse — ответ списка API-ключей.
// Plaintext-ключа здесь нет и быть не может: backend возвращает только префикс.
type apiKeyListResponse struct {
	Keys []model.APIKey `json:"api_keys"`
}

// ListAPIKeys возвращает все API-ключи (только префиксы).
// GET /api/admin-management/api-keys
func (c *Client) ListAPIKeys(ctx context.Context) ([]model.APIKey, error) {
	var resp apiKeyListResponse
	if err := c.do(ctx, http.MethodGet, "/api/admin-management/api-keys", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Keys, nil
}

// createAPIKeyRequest — тело создания API-ключа.
type createAPIKeyRequest struct {
	Name   string              `json:"name"`
	Scopes []model.APIKeyScope `json:"scopes"`
}

// CreateAPIKey создаёт API-ключ. Ответ содержит plaintext-ключ —
// единственный раз, когда он доступен.
// POST /api/admin-management/api-keys
func (c *Client) CreateAPIKey(ctx context.Context, name string, scopes []model.APIKeyScope) (*model.CreatedAPIKey, error) {
	req := createAPIKeyRequest{Name: name, Scopes: scopes}
	var created model.CreatedAPIKey
	if err := c.do(ctx, http.MethodPost, "/api/admin-management/api-keys", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// apiKeyActiveRequest — тело переключения активности ключа.
type apiKeyActiveRequest struct {
	IsActive bool `json:"is_active"`
}

// SetAPIKeyActive включает/выключает ключ. Идемпотентно при повторе.
// PUT /api/admin-management/api-keys/{id}/active
func (c *Client) SetAPIKeyActive(ctx context.Context, id int64, active bool) error {
	req := apiKeyActiveRequest{IsActive: active}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/admin-management/api-keys/%d/active", id), req, nil)
}

// DeleteAPIKey удаляет ключ по id. Идемпотентно при повторе.
// DELETE /api/admin-management/api-keys/{id}
func (c *Client) DeleteAPIKey(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/admin-management/api-keys/%d", id), nil, nil)
}
