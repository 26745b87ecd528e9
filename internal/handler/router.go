package handler

import (
	"github.com/Dan9191/irpf-calculator/internal/middleware"
	"github.com/gorilla/mux"
)

// NewRouter wires the form pages and the JSON API
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Recover(h.log), middleware.Logging(h.log))

	r.HandleFunc("/", h.Index).Methods("GET")
	r.HandleFunc("/", h.Submit).Methods("POST")
	r.HandleFunc("/health", h.Health).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/countries", h.Countries).Methods("GET")
	api.HandleFunc("/calculate", h.Calculate).Methods("POST")
	api.HandleFunc("/rates", h.Rates).Methods("GET")

	return r
}
