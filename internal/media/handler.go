package media

import (
	"net/http"
	"strconv"

	"ecolakbay-service/internal/shared/httpx"
)

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return err
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return err
	}
	defer file.Close()

	m, err := h.svc.Upload(r.Context(), uid, r.FormValue("kind"), file, header)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, m, http.StatusCreated)
	return nil
}

// GetURL handles GET /media/{media_id}/url and returns a short-lived signed
// link; permit documents are never served directly.
func (h *Handler) GetURL(w http.ResponseWriter, r *http.Request) error {
	id, err := strconv.ParseUint(r.PathValue("media_id"), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err, "invalid_media_id")
		return nil
	}
	url, err := h.svc.URL(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, err, "media_not_found")
		return nil
	}
	httpx.WriteJSON(w, map[string]string{"url": url}, http.StatusOK)
	return nil
}

func (h *Handler) PresignUpload(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	in, err := httpx.Decode[struct {
		FileName string `json:"file_name"`
	}](r)
	if err != nil {
		return err
	}
	key, url, err := h.svc.PresignUpload(r.Context(), uid, in.FileName)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]string{"object_key": key, "url": url}, http.StatusOK)
	return nil
}
