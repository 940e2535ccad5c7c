package httpapi

import (
	"encoding/json"
	"net/http"
)

type avatarUploadResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
}

type avatarConfirmRequest struct {
	Key string `json:"key"`
}

type avatarDownloadResponse struct {
	URL string `json:"url"`
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {

	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing token")
		return
	}

	user, err := s.users.Get(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// handleAvatarUploadURL hands out a presigned PUT URL. The client uploads
// directly to object storage, then confirms the key with a PUT /user/avatar.
func (s *Server) handleAvatarUploadURL(w http.ResponseWriter, r *http.Request) {

	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing token")
		return
	}

	key, url, err := s.avatars.UploadURL(r.Context(), userID)
	if err != nil {
		s.logger.Error(r.Context(), "presign upload failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, msgServerError)
		return
	}

	writeJSON(w, http.StatusOK, avatarUploadResponse{Key: key, UploadURL: url})
}

func (s *Server) handleAvatarConfirm(w http.ResponseWriter, r *http.Request) {

	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing token")
		return
	}

	var req avatarConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Key == "" {
		writeMessage(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	if err := s.users.SetAvatar(r.Context(), userID, req.Key); err != nil {
		writeServiceError(w, err)
		return
	}

	user, err := s.users.Get(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleAvatarDownloadURL(w http.ResponseWriter, r *http.Request) {

	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing token")
		return
	}

	user, err := s.users.Get(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if user.Avatar == "" {
		writeMessage(w, http.StatusNotFound, msgNotFound)
		return
	}

	url, err := s.avatars.DownloadURL(r.Context(), user.Avatar)
	if err != nil {
		s.logger.Error(r.Context(), "presign download failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, msgServerError)
		return
	}

	writeJSON(w, http.StatusOK, avatarDownloadResponse{URL: url})
}
