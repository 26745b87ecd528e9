package handler

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/Dan9191/irpf-calculator/internal/models"
	"github.com/Dan9191/irpf-calculator/internal/service"
	"github.com/sirupsen/logrus"
)

//go:embed templates/index.html
var templates embed.FS

var indexTemplate = template.Must(template.ParseFS(templates, "templates/index.html"))

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

type pageData struct {
	Countries      []models.Country
	Currencies     []models.Currency
	ShowCurrencies bool
	Country        string
	Currency       string
	Gross          string
	Error          string
	Result         *service.Calculation
}

func (h *Handler) newPage() pageData {
	countries := h.svc.Countries()
	currencies := h.svc.AvailableCurrencies()
	return pageData{
		Countries:      countries,
		Currencies:     currencies,
		ShowCurrencies: len(currencies) > 1,
		Country:        countries[0].Code,
		Currency:       models.BaseCurrency.Code(),
		Gross:          "0",
	}
}

// Index renders the empty calculator form
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, h.newPage())
}

// Submit handles the form. Picking a country re-runs the calculation when an
// amount was already entered.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	page := h.newPage()
	page.Country = firstNonEmpty(r.PostForm.Get("country"), r.PostForm.Get("selected_country"), page.Country)
	page.Currency = firstNonEmpty(r.PostForm.Get("currency"), page.Currency)
	page.Gross = strings.TrimSpace(r.PostForm.Get("gross"))

	gross, _ := strconv.ParseFloat(page.Gross, 64)
	if r.PostForm.Get("calculate") == "" && gross == 0 {
		h.render(w, http.StatusOK, page)
		return
	}

	calc, err := h.svc.Calculate(r.Context(), service.CalculationRequest{
		Country:  page.Country,
		Currency: page.Currency,
		Gross:    gross,
	})
	if err != nil {
		page.Error = h.userMessage(err)
		h.render(w, http.StatusBadRequest, page)
		return
	}

	page.Result = calc
	h.render(w, http.StatusOK, page)
}

// Countries lists the supported countries
func (h *Handler) Countries(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.Countries())
}

// Calculate handles a JSON calculation request
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req service.CalculationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}

	calc, err := h.svc.Calculate(r.Context(), req)
	if err != nil {
		status := http.StatusBadRequest
		var userErr *models.UserError
		if !errors.As(err, &userErr) {
			status = http.StatusInternalServerError
		}
		h.writeJSON(w, status, map[string]string{"error": h.userMessage(err)})
		return
	}

	h.writeJSON(w, http.StatusOK, calc)
}

// Rates returns the exchange rates currently in use
func (h *Handler) Rates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.svc.Rates()
	if err != nil {
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}
	h.writeJSON(w, http.StatusOK, rates)
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) userMessage(err error) string {
	var userErr *models.UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	h.log.Errorf("Calculation failed: %v", err)
	return "Internal error"
}

func (h *Handler) render(w http.ResponseWriter, status int, page pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := indexTemplate.Execute(w, page); err != nil {
		h.log.Errorf("Failed to render page: %v", err)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
