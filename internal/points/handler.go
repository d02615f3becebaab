package points

import (
	"net/http"

	"ecolakbay-service/internal/shared/httpx"
)

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

func (h *Handler) GetTotal(w http.ResponseWriter, r *http.Request) error {
	uid := r.PathValue("user_id")
	total, err := h.svc.Total(uid)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"user_id": uid, "eco_points": total}, http.StatusOK)
	return nil
}
