package model

import "time"

// AdminAccount — учётная запись администратора платформы.
type AdminAccount struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	// IsActive — может ли администратор входить в систему.
	IsActive bool `json:"is_active"`
	// IsSuperAdmin — доступ к управлению администраторами и API-ключами.
	IsSuperAdmin bool `json:"is_super_admin"`
	// CreatedBy — email администратора, создавшего запись.
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// APIKeyScope — scope API-ключа.
type APIKeyScope string

const (
	// ScopeUpload — загрузка документов через API.
	ScopeUpload APIKeyScope = "upload"
	// ScopeDownload — скачивание документов через API.
	ScopeDownload APIKeyScope = "download"
)

// ValidAPIKeyScope проверяет scope на допустимое значение.
func ValidAPIKeyScope(s APIKeyScope) bool {
	return s == ScopeUpload || s == ScopeDownload
}

// APIKey — API-ключ платформы. Полный ключ существует только в ответе
// на создание (CreatedAPIKey); все последующие ответы несут только префикс.
type APIKey struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	// KeyPrefix — отображаемый префикс ключа (например "hq_live_ab12").
	KeyPrefix  string        `json:"key_prefix"`
	Scopes     []APIKeyScope `json:"scopes"`
	IsActive   bool          `json:"is_active"`
	UsageCount int64         `json:"usage_count"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// CreatedAPIKey — результат создания ключа: полный plaintext-ключ
// возвращается ровно один раз и нигде не сохраняется на этой стороне.
type CreatedAPIKey struct {
	APIKey
	PlaintextKey string `json:"plaintext_key"`
}
