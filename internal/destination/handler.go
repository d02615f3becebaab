package destination

import (
	"net/http"
	"strconv"

	"ecolakbay-service/internal/shared/httpx"
	"ecolakbay-service/internal/user"
)

type Handler struct {
	svc   Service
	users user.Service
}

func NewHandler(s Service, us user.Service) *Handler {
	return &Handler{svc: s, users: us}
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	in, err := httpx.Decode[CreateReq](r)
	if err != nil {
		return err
	}
	d, err := h.svc.Submit(uid, in)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, d, http.StatusCreated)
	return nil
}

// List handles GET /destinations. Admins may pass ?status=pending to review
// the moderation queue; everyone else sees approved listings only.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	limit := httpx.QueryInt(r, "limit", 50)
	offset := httpx.QueryInt(r, "offset", 0)

	status := r.URL.Query().Get("status")
	if status != "" && status != StatusApproved {
		uid, err := httpx.UserFromCtx(r)
		if err != nil || !h.users.IsAdmin(uid) {
			httpx.WriteError(w, http.StatusForbidden, ErrAdminsOnly, "admins_only")
			return nil
		}
		items, err := h.svc.ListByStatus(status, limit, offset)
		if err != nil {
			return err
		}
		httpx.WriteJSON(w, map[string]any{"items": items}, http.StatusOK)
		return nil
	}

	items, err := h.svc.ListApproved(limit, offset)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"items": items}, http.StatusOK)
	return nil
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) error {
	id, err := strconv.ParseUint(r.PathValue("destination_id"), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err, "invalid_destination_id")
		return nil
	}
	d, err := h.svc.Get(id)
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, err, "destination_not_found")
		return nil
	}
	httpx.WriteJSON(w, d, http.StatusOK)
	return nil
}

func (h *Handler) Moderate(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	if !h.users.IsAdmin(uid) {
		httpx.WriteError(w, http.StatusForbidden, ErrAdminsOnly, "admins_only")
		return nil
	}
	id, _ := strconv.ParseUint(r.PathValue("destination_id"), 10, 64)
	in, err := httpx.Decode[struct {
		Status string `json:"status"`
	}](r)
	if err != nil {
		return err
	}
	if err := h.svc.Moderate(id, in.Status); err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]string{"status": in.Status}, http.StatusOK)
	return nil
}
