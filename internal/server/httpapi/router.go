package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Router assembles the dispatch table. Each feature area owns a disjoint
// path prefix and mounts itself on its own subrouter; adding a new group
// never changes the behavior of an existing one, and mount order does not
// matter because the prefixes never overlap.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	s.mountLogin(r)
	s.mountRegister(r)
	s.mountUser(r)
	s.mountPet(r)
	return r
}

func (s *Server) mountLogin(r *mux.Router) {
	g := r.PathPrefix("/login").Subrouter()
	g.HandleFunc("", s.handleLogin).Methods(http.MethodPost)
}

func (s *Server) mountRegister(r *mux.Router) {
	g := r.PathPrefix("/register").Subrouter()
	g.HandleFunc("", s.handleRegister).Methods(http.MethodPost)
}

func (s *Server) mountUser(r *mux.Router) {
	g := r.PathPrefix("/user").Subrouter()
	g.Use(s.requireAuth)
	g.HandleFunc("/me", s.handleMe).Methods(http.MethodGet)
	g.HandleFunc("/avatar", s.handleAvatarUploadURL).Methods(http.MethodPost)
	g.HandleFunc("/avatar", s.handleAvatarConfirm).Methods(http.MethodPut)
	g.HandleFunc("/avatar", s.handleAvatarDownloadURL).Methods(http.MethodGet)
}

func (s *Server) mountPet(r *mux.Router) {
	g := r.PathPrefix("/pet").Subrouter()
	g.Use(s.requireAuth)
	g.HandleFunc("", s.handleCreatePet).Methods(http.MethodPost)
	g.HandleFunc("", s.handleListPets).Methods(http.MethodGet)
	g.HandleFunc("/{id}", s.handleGetPet).Methods(http.MethodGet)
}
