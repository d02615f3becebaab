package comment

import (
	"net/http"
	"strconv"
	"time"

	"ecolakbay-service/internal/shared/httpx"
	"ecolakbay-service/internal/user"
)

type CommentView struct {
	ID         uint64    `json:"id"`
	PostID     uint64    `json:"post_id"`
	UserID     string    `json:"user_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

type Handler struct {
	svc      Service
	profiles user.Service
}

func NewHandler(s Service) *Handler             { return &Handler{svc: s} }
func (h *Handler) WithProfiles(us user.Service) { h.profiles = us }

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	pid, _ := strconv.ParseUint(r.PathValue("post_id"), 10, 64)
	in, err := httpx.Decode[CreateReq](r)
	if err != nil {
		return err
	}
	c, err := h.svc.Create(uid, pid, in)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, c, http.StatusCreated)
	return nil
}

func (h *Handler) ListByPost(w http.ResponseWriter, r *http.Request) error {
	pid, _ := strconv.ParseUint(r.PathValue("post_id"), 10, 64)
	limit := httpx.QueryInt(r, "limit", 100)
	offset := httpx.QueryInt(r, "offset", 0)
	items, err := h.svc.ListByPost(pid, limit, offset)
	if err != nil {
		return err
	}
	views := h.annotate(items)
	httpx.WriteJSON(w, map[string]any{
		"items": views, "limit": limit, "offset": offset,
	}, http.StatusOK)
	return nil
}

func (h *Handler) GetCounts(w http.ResponseWriter, r *http.Request) error {
	pid, _ := strconv.ParseUint(r.PathValue("post_id"), 10, 64)
	count, err := h.svc.Count(pid)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"post_id": pid, "comments": count}, http.StatusOK)
	return nil
}

func (h *Handler) annotate(items []PostComment) []CommentView {
	names := map[string]string{}
	if h.profiles != nil {
		seen := map[string]bool{}
		var ids []string
		for _, c := range items {
			if !seen[c.UserID] {
				seen[c.UserID] = true
				ids = append(ids, c.UserID)
			}
		}
		if profiles, err := h.profiles.ListPublic(ids); err == nil {
			for _, p := range profiles {
				names[p.UserID] = p.DisplayName
			}
		}
	}
	views := make([]CommentView, 0, len(items))
	for _, c := range items {
		views = append(views, CommentView{
			ID:         c.ID,
			PostID:     c.PostID,
			UserID:     c.UserID,
			AuthorName: names[c.UserID],
			Text:       c.Text,
			CreatedAt:  c.CreatedAt,
		})
	}
	return views
}
