// comments.go — admin-операции API комментариев и запрещённых слов.
package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/main-salman/haqnow/admin-module/internal/domain/model"
)

// commentListResponse — ответ списочных endpoints комментариев.
type commentListResponse struct {
	Comments []model.Comment `json:"comments"`
	Total    int             `json:"total"`
}

// groupedCommentsResponse — ответ режима «все комментарии по документам».
type groupedCommentsResponse struct {
	Documents []model.DocumentComments `json:"documents"`
}

// ListAllComments возвращает все комментарии, сгруппированные по документам.
// GET /api/comments/admin/all
func (c *Client) ListAllComments(ctx context.Context) ([]model.DocumentComments, error) {
	var resp groupedCommentsResponse
	if err := c.do(ctx, http.MethodGet, "/api/comments/admin/all", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Documents, nil
}

// ListPendingComments возвращает комментарии в статусе pending.
// GET /api/comments/admin/pending
func (c *Client) ListPendingComments(ctx context.Context) ([]model.Comment, error) {
	var resp commentListResponse
	if err := c.do(ctx, http.MethodGet, "/api/comments/admin/pending", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Comments, nil
}

// commentStatusRequest — тело обновления статуса комментария.
type commentStatusRequest struct {
	Status string `json:"status"`
}

// UpdateCommentStatus переводит комментарий в указанный статус.
// PUT /api/comments/admin/{id}/status
func (c *Client) UpdateCommentStatus(ctx context.Context, id int64, status model.CommentStatus) error {
	req := commentStatusRequest{Status: string(status)}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/comments/admin/%d/status", id), req, nil)
}

// DeleteComment необратимо удаляет комментарий.
// DELETE /api/comments/admin/{id}
func (c *Client) DeleteComment(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/comments/admin/%d", id), nil, nil)
}

// bannedWordListResponse — ответ списка запрещённых слов.
type bannedWordListResponse struct {
	Words []model.BannedWord `json:"words"`
}

// ListBannedWords возвращает список запрещённых слов в серверном порядке.
// GET /api/comments/admin/banned-words
func (c *Client) ListBannedWords(ctx context.Context) ([]model.BannedWord, error) {
	var resp bannedWordListResponse
	if err := c.do(ctx, http.MethodGet, "/api/comments/admin/banned-words", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Words, nil
}

// bannedWordRequest — тело добавления запрещённого слова.
type bannedWordRequest struct {
	Word   string `json:"word"`
	Reason string `json:"reason,omitempty"`
}

// AddBannedWord добавляет слово в список.
// POST /api/comments/admin/banned-words
func (c *Client) AddBannedWord(ctx context.Context, word, reason string) (*model.BannedWord, error) {
	req := bannedWordRequest{Word: word, Reason: reason}
	var created model.BannedWord
	if err := c.do(ctx, http.MethodPost, "/api/comments/admin/banned-words", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteBannedWord удаляет слово по id.
// DELETE /api/comments/admin/banned-words/{id}
func (c *Client) DeleteBannedWord(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/comments/admin/banned-words/%d", id), nil, nil)
}
