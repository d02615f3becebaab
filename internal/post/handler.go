package post

import (
	"net/http"
	"strconv"

	"ecolakbay-service/internal/comment"
	"ecolakbay-service/internal/like"
	"ecolakbay-service/internal/shared/httpx"
	"ecolakbay-service/internal/user"
)

type Handler struct {
	svc      Service
	likes    like.Service
	comments comment.Service
	users    user.Service
}

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

func (h *Handler) WithCounts(ls like.Service, cs comment.Service) {
	h.likes = ls
	h.comments = cs
}

func (h *Handler) WithUsers(us user.Service) { h.users = us }

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	in, err := httpx.Decode[CreateReq](r)
	if err != nil {
		return err
	}
	p, err := h.svc.Create(uid, in)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, p, http.StatusCreated)
	return nil
}

// List handles GET /posts. Each post is annotated with like and comment
// counts so the feed client gets the whole projection in one round trip.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	limit := httpx.QueryInt(r, "limit", 50)
	offset := httpx.QueryInt(r, "offset", 0)
	posts, err := h.svc.List(limit, offset)
	if err != nil {
		return err
	}
	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, h.annotate(p))
	}
	httpx.WriteJSON(w, map[string]any{
		"items": views, "limit": limit, "offset": offset,
	}, http.StatusOK)
	return nil
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) error {
	id, err := strconv.ParseUint(r.PathValue("post_id"), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err, "invalid_post_id")
		return nil
	}
	p, err := h.svc.Get(id)
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, err, "post_not_found")
		return nil
	}
	httpx.WriteJSON(w, h.annotate(*p), http.StatusOK)
	return nil
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	id, _ := strconv.ParseUint(r.PathValue("post_id"), 10, 64)
	in, err := httpx.Decode[UpdateReq](r)
	if err != nil {
		return err
	}
	isPrivileged := h.users != nil && h.users.CanModerate(uid)
	if err := h.svc.Update(uid, id, in, isPrivileged); err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	return nil
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	id, _ := strconv.ParseUint(r.PathValue("post_id"), 10, 64)
	isAdmin := h.users != nil && h.users.IsAdmin(uid)
	if err := h.svc.Delete(uid, id, isAdmin); err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	return nil
}

func (h *Handler) annotate(p Post) PostView {
	v := PostView{
		ID:        p.ID,
		UserID:    p.UserID,
		Title:     p.Title,
		Body:      p.Body,
		Category:  p.Category,
		CreatedAt: p.CreatedAt,
	}
	if h.likes != nil {
		if n, _, err := h.likes.Get(p.ID, ""); err == nil {
			v.Likes = n
		}
	}
	if h.comments != nil {
		if n, err := h.comments.Count(p.ID); err == nil {
			v.Comments = n
		}
	}
	return v
}
