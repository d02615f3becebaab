package carbon

import (
	"net/http"

	"ecolakbay-service/internal/shared/httpx"
)

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request) error {
	in, err := httpx.Decode[EstimateReq](r)
	if err != nil {
		return err
	}
	est, err := h.svc.Estimate(in)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, est, http.StatusOK)
	return nil
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	in, err := httpx.Decode[EstimateReq](r)
	if err != nil {
		return err
	}
	rec, err := h.svc.Save(uid, in)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, rec, http.StatusCreated)
	return nil
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	items, err := h.svc.ListByUser(uid)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"items": items}, http.StatusOK)
	return nil
}
