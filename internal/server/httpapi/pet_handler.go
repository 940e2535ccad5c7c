package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/fitleveling/fitleveling/internal/server/models"
	"github.com/gorilla/mux"
)

type createPetRequest struct {
	Name    string `json:"name"`
	Species string `json:"species"`
}

func (s *Server) handleCreatePet(w http.ResponseWriter, r *http.Request) {

	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing token")
		return
	}

	var req createPetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Species == "" {
		writeMessage(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	pet, err := s.pets.Create(r.Context(), userID, req.Name, req.Species)
	if err != nil {
		s.logger.Error(r.Context(), "pet creation failed", "error", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, pet)
}

func (s *Server) handleListPets(w http.ResponseWriter, r *http.Request) {

	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing token")
		return
	}

	pets, err := s.pets.List(r.Context(), userID)
	if err != nil {
		s.logger.Error(r.Context(), "pet list failed", "error", err)
		writeServiceError(w, err)
		return
	}
	if pets == nil {
		pets = []*models.Pet{}
	}

	writeJSON(w, http.StatusOK, pets)
}

func (s *Server) handleGetPet(w http.ResponseWriter, r *http.Request) {

	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing token")
		return
	}

	pet, err := s.pets.Get(r.Context(), mux.Vars(r)["id"], userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pet)
}
