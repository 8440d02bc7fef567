package handler

import (
	"net/http"

	"github.com/google/uuid"

	"matricare-api/internal/apperr"
	"matricare-api/internal/middleware"
	"matricare-api/internal/model"
)

type createPostRequest struct {
	Content  string   `json:"content"`
	Category []string `json:"category"`
}

// POST /post — a BellyTalk post authored by the caller.
func (h *Handler) postPost(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := decodeJSON(r, &req); err != nil || req.Content == "" {
		h.writeError(w, r, apperr.BadRequest("Content is required"))
		return
	}

	p := &model.Post{
		ID:         uuid.New().String(),
		AuthorID:   middleware.UserID(r.Context()),
		Content:    req.Content,
		Categories: req.Category,
	}
	if err := h.community.CreatePost(r.Context(), p); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"message": "Post Successfully Created",
		"post":    p,
	})
}

type createCommentRequest struct {
	PostID  string `json:"postId"`
	Content string `json:"content"`
}

// POST /post/comment — a reply on an existing post.
func (h *Handler) postCommentPost(w http.ResponseWriter, r *http.Request) {
	var req createCommentRequest
	if err := decodeJSON(r, &req); err != nil || req.Content == "" {
		h.writeError(w, r, apperr.BadRequest("Content is required"))
		return
	}
	if req.PostID == "" {
		h.writeError(w, r, apperr.BadRequest("Post identifier not found"))
		return
	}

	c := &model.Comment{
		ID:       uuid.New().String(),
		PostID:   req.PostID,
		AuthorID: middleware.UserID(r.Context()),
		Content:  req.Content,
	}
	if err := h.community.CreateComment(r.Context(), c); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"message": "Comment Successfully Created",
		"comment": c,
	})
}
