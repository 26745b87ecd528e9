package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Dan9191/irpf-calculator/internal/models"
	"github.com/Dan9191/irpf-calculator/internal/service"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	rates *models.ExchangeRates
}

func (s staticSource) FetchRates(context.Context) (*models.ExchangeRates, error) {
	return s.rates, nil
}

func newTestRouter(t *testing.T, withRates bool) http.Handler {
	t.Helper()
	log, _ := test.NewNullLogger()

	cache := service.NewRateCache(staticSource{rates: &models.ExchangeRates{
		Date:   time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		EURUSD: 1.25,
		EURGBP: 0.8,
	}}, nil, log)
	if withRates {
		require.NoError(t, cache.Refresh(context.Background()))
	}

	return NewRouter(NewHandler(service.NewService(cache, log), log))
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t, false).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCountries(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t, false).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/countries", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var countries []models.Country
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &countries))
	require.Len(t, countries, 2)
	assert.Equal(t, "es", countries[0].Code)
	assert.Equal(t, "Italy", countries[1].Name)
}

func TestCalculateAPI(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		check      func(t *testing.T, body map[string]any)
	}{
		{
			name:       "spain in euros",
			body:       `{"country":"es","currency":"EUR","gross":50000}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				values := body["values"].(map[string]any)
				assert.Equal(t, "50.000,00 €", values["gross_income"])
				assert.Equal(t, "35.798,50 €", values["net_income"])
				assert.Equal(t, "EUR", body["currency"])
				assert.NotContains(t, body, "exchange_rate")
			},
		},
		{
			name:       "italy in dollars",
			body:       `{"country":"it","currency":"USD","gross":125000}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "$1.25 = 1€", body["exchange_rate"])
				assert.Equal(t, "USD", body["currency"])
				values := body["values"].(map[string]any)
				assert.Equal(t, "63.830,00 €", values["net_income"])
			},
		},
		{
			name:       "zero gross",
			body:       `{"country":"es","gross":0}`,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, service.GrossTooLowMessage, body["error"])
			},
		},
		{
			name:       "unsupported country",
			body:       `{"country":"fr","gross":1000}`,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Please choose a supported country", body["error"])
			},
		},
		{
			name:       "malformed json",
			body:       `{"country":`,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Invalid JSON", body["error"])
			},
		},
	}

	router := newTestRouter(t, true)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			tt.check(t, body)
		})
	}
}

func TestRatesEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t, false).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/rates", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	newTestRouter(t, true).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/rates", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var rates models.ExchangeRates
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rates))
	assert.Equal(t, 1.25, rates.EURUSD)
}

func TestIndexForm(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t, false).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "IRPF Calculator")
	assert.Contains(t, body, `value="es"`)
	assert.Contains(t, body, `value="it"`)
	// no rates: the currency selector is hidden
	assert.NotContains(t, body, `name="currency"`)

	rec = httptest.NewRecorder()
	newTestRouter(t, true).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, rec.Body.String(), `name="currency"`)
}

func postForm(t *testing.T, router http.Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSubmitForm(t *testing.T) {
	router := newTestRouter(t, true)

	rec := postForm(t, router, url.Values{
		"selected_country": {"es"},
		"currency":         {"GBP"},
		"gross":            {"40000"},
		"calculate":        {"1"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Net Income per Month")
	assert.Contains(t, body, "50.000,00 €")
	assert.Contains(t, body, "£0.80 = 1€")
}

func TestSubmitFormZeroGross(t *testing.T) {
	rec := postForm(t, newTestRouter(t, false), url.Values{
		"selected_country": {"it"},
		"gross":            {"0"},
		"calculate":        {"1"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), service.GrossTooLowMessage)
}

func TestSubmitFormCountrySwitch(t *testing.T) {
	router := newTestRouter(t, false)

	// switching country without an amount only re-renders the form
	rec := postForm(t, router, url.Values{"country": {"it"}, "gross": {"0"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Net Income")
	assert.Contains(t, rec.Body.String(), `name="selected_country" value="it"`)

	// with an amount the result is recalculated for the new country
	rec = postForm(t, router, url.Values{"country": {"it"}, "gross": {"100000"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "63.830,00 €")
}
