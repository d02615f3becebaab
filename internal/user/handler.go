package user

import (
	"net/http"
	"strings"

	"ecolakbay-service/internal/shared/httpx"
	"ecolakbay-service/internal/shared/jwt"
)

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) error {
	in, err := httpx.Decode[RegisterRequest](r)
	if err != nil {
		return err
	}
	u, err := h.svc.Register(in.Email, in.Password, in.DisplayName)
	if err != nil {
		return err
	}
	tok, err := jwt.Make(u.ID)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, AuthResponse{UserID: u.ID, Token: tok}, http.StatusCreated)
	return nil
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) error {
	in, err := httpx.Decode[LoginRequest](r)
	if err != nil {
		return err
	}
	u, err := h.svc.Login(in.Email, in.Password)
	if err != nil {
		httpx.WriteError(w, http.StatusUnauthorized, err, "bad_credentials")
		return nil
	}
	tok, err := jwt.Make(u.ID)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, AuthResponse{UserID: u.ID, Token: tok}, http.StatusOK)
	return nil
}

// ListProfiles handles GET /profiles?ids=a,b,c, the batched lookup the feed
// client uses to annotate posts with author names.
func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) error {
	raw := r.URL.Query().Get("ids")
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	profiles, err := h.svc.ListPublic(ids)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"items": profiles}, http.StatusOK)
	return nil
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) error {
	id := r.PathValue("user_id")
	profiles, err := h.svc.ListPublic([]string{id})
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		httpx.WriteError(w, http.StatusNotFound, nil, "profile_not_found")
		return nil
	}
	httpx.WriteJSON(w, profiles[0], http.StatusOK)
	return nil
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	in, err := httpx.Decode[UpdateProfileRequest](r)
	if err != nil {
		return err
	}
	if err := h.svc.UpdateProfile(uid, in); err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	return nil
}
