package model

import "time"

// CommentStatus — статус комментария в очереди модерации.
type CommentStatus string

const (
	// CommentPending — ожидает модерации.
	CommentPending CommentStatus = "pending"
	// CommentApproved — одобрен и виден на странице документа.
	CommentApproved CommentStatus = "approved"
	// CommentRejected — отклонён модератором.
	CommentRejected CommentStatus = "rejected"
	// CommentFlagged — скрыт backend-политикой после жалоб пользователей.
	CommentFlagged CommentStatus = "flagged"
)

// FlagAutoHideThreshold — порог жалоб, после которого backend скрывает
// комментарий автоматически. На клиенте порог используется только для
// отображения badge, не для принятия решений.
const FlagAutoHideThreshold = 3

// Comment — комментарий к документу.
type Comment struct {
	ID         int64 `json:"id"`
	DocumentID int64 `json:"document_id"`
	// ParentCommentID — id родительского комментария (nil — корневой).
	ParentCommentID *int64 `json:"parent_comment_id,omitempty"`
	CommentText     string        `json:"comment_text"`
	Status          CommentStatus `json:"status"`
	// FlagCount — количество жалоб (display-only).
	FlagCount int `json:"flag_count"`
	// ReplyCount — количество ответов.
	ReplyCount int       `json:"reply_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AutoFlagged сообщает, достиг ли комментарий порога автоскрытия.
// Используется только для badge в UI.
func (c *Comment) AutoFlagged() bool {
	return c.FlagCount >= FlagAutoHideThreshold
}

// DocumentComments — комментарии, сгруппированные по документу
// (режим «все комментарии» очереди модерации).
type DocumentComments struct {
	DocumentID    int64     `json:"document_id"`
	DocumentTitle string    `json:"document_title"`
	Comments      []Comment `json:"comments"`
}

// BannedWord — запись списка запрещённых слов.
// Чистое CRUD-множество, фильтрация выполняется backend-ом.
type BannedWord struct {
	ID       int64  `json:"id"`
	Word     string `json:"word"`
	Reason   string `json:"reason,omitempty"`
	BannedBy string `json:"banned_by"`
	CreatedAt time.Time `json:"created_at"`
}
