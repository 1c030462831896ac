package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/autocalc-backend/internal/jurisdictions"
	"github.com/angelmondragon/autocalc-backend/internal/quotes"
	"github.com/angelmondragon/autocalc-backend/internal/vehicles"
	"github.com/angelmondragon/autocalc-backend/pkg/config"
	"github.com/angelmondragon/autocalc-backend/pkg/vpic"
)

type stubDecoder struct{}

func (stubDecoder) DecodeVIN(ctx context.Context, vin string) (*vpic.Decoded, error) {
	gvwr := 7000
	return &vpic.Decoded{VIN: vin, Make: "FORD", VehicleType: "TRUCK", BodyClass: "Pickup", GVWRLbs: &gvwr}, nil
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

type fixture struct {
	registry *jurisdictions.Registry
	vehicles vehicles.Service
	quotes   quotes.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	reg, err := jurisdictions.LoadDefault("FL", "")
	require.NoError(t, err)
	vehicleSvc, err := vehicles.NewService(vehicles.ServiceParams{Decoder: stubDecoder{}, Engines: reg})
	require.NoError(t, err)
	quoteSvc, err := quotes.NewService(quotes.ServiceParams{Engines: reg, Weights: vehicleSvc})
	require.NoError(t, err)
	return fixture{registry: reg, vehicles: vehicleSvc, quotes: quoteSvc}
}

func serve(t *testing.T, handler http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestScenarioEvaluate(t *testing.T) {
	f := newFixture(t)
	body := `{
		"sale_price": "32000",
		"state_tax_rate_percent": 6,
		"county_tax_rate_percent": 1,
		"apr": "6.9",
		"term_months": 72,
		"overrides": {"tag_mode": "new_plate"},
		"vehicle": {"curb_weight_lbs": 3600}
	}`

	rec, env := serve(t, ScenarioEvaluate(f.quotes, nil), http.MethodPost, "/api/v1/scenarios/evaluate", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var quote struct {
		Jurisdiction     string   `json:"jurisdiction"`
		AppliedRuleIDs   []string `json:"applied_rule_ids"`
		WeightRequired   bool     `json:"weight_required"`
		DetectedScenario struct {
			Type string `json:"type"`
		} `json:"detected_scenario"`
		Totals struct {
			GovernmentFees string `json:"government_fees"`
			TotalFees      string `json:"total_fees"`
		} `json:"totals"`
		Financing *struct {
			Term struct {
				Normalized int `json:"normalized"`
			} `json:"term"`
		} `json:"financing"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &quote))
	assert.Equal(t, "FL", quote.Jurisdiction)
	assert.Equal(t, "financed_new_plate", quote.DetectedScenario.Type)
	assert.Equal(t, []string{"fl.title_fee", "fl.lien_recording_fee", "fl.registration_weight", "fl.plate_issuance_fee"}, quote.AppliedRuleIDs)
	// 75.25 + 2.00 + 32.50 + 28.00
	assert.Equal(t, "137.75", quote.Totals.GovernmentFees)
	// 137.75 + 1920 + 50
	assert.Equal(t, "2107.75", quote.Totals.TotalFees)
	assert.False(t, quote.WeightRequired)
	require.NotNil(t, quote.Financing)
	assert.Equal(t, 72, quote.Financing.Term.Normalized)
}

func TestScenarioEvaluateValidation(t *testing.T) {
	f := newFixture(t)

	rec, env := serve(t, ScenarioEvaluate(f.quotes, nil), http.MethodPost, "/", `{"term_months": -1, "vehicle": {"body_type": "boat"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Details, "term_months")
	assert.Contains(t, env.Error.Details, "vehicle.body_type")

	rec, env = serve(t, ScenarioEvaluate(f.quotes, nil), http.MethodPost, "/", `{"jurisdiction": "ZZ"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	rec, _ = serve(t, ScenarioEvaluate(nil, nil), http.MethodPost, "/", `{}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWeightResolve(t *testing.T) {
	f := newFixture(t)

	rec, env := serve(t, WeightResolve(f.vehicles, nil), http.MethodPost, "/", `{"vin": "1FTFW1E50PFA00001"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res struct {
		WeightSource     string `json:"weight_source"`
		BodyType         string `json:"body_type"`
		WeightBracketLbs *int   `json:"weight_bracket_lbs"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "gvwr_derived", res.WeightSource)
	assert.Equal(t, "truck", res.BodyType)
	require.NotNil(t, res.WeightBracketLbs)
	assert.Equal(t, 5000, *res.WeightBracketLbs)

	rec, env = serve(t, WeightResolve(f.vehicles, nil), http.MethodPost, "/", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "manual_required", res.WeightSource)
	assert.Nil(t, res.WeightBracketLbs)
}

func TestVehicleDecode(t *testing.T) {
	f := newFixture(t)
	router := chi.NewRouter()
	router.Get("/vehicles/{vin}", VehicleDecode(f.vehicles, nil))

	rec, env := serve(t, router, http.MethodGet, "/vehicles/1ftfw1e50pfa00001", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var profile vehicles.VehicleProfile
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "1FTFW1E50PFA00001", profile.VIN)
	assert.Equal(t, "truck", string(profile.BodyType))

	rec, env = serve(t, router, http.MethodGet, "/vehicles/1FTFW1E50PFA0000O", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestJurisdictions(t *testing.T) {
	f := newFixture(t)
	router := chi.NewRouter()
	router.Get("/jurisdictions", JurisdictionList(f.registry, nil))
	router.Get("/jurisdictions/{code}", JurisdictionGet(f.registry, nil))

	rec, env := serve(t, router, http.MethodGet, "/jurisdictions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Jurisdictions []jurisdictions.Summary `json:"jurisdictions"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Jurisdictions, 1)
	assert.Equal(t, "FL", list.Jurisdictions[0].Code)

	rec, env = serve(t, router, http.MethodGet, "/jurisdictions/fl", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var summary jurisdictions.Summary
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Len(t, summary.Rules, 7)

	rec, _ = serve(t, router, http.MethodGet, "/jurisdictions/tx", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoanTermNormalize(t *testing.T) {
	handler := LoanTermNormalize(nil)

	rec, env := serve(t, handler, http.MethodGet, "/?term=66", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var single struct {
		Term struct {
			Normalized  int  `json:"normalized"`
			WasModified bool `json:"was_modified"`
		} `json:"term"`
		Range struct {
			Label string `json:"term_label"`
		} `json:"range"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &single))
	assert.Equal(t, 60, single.Term.Normalized)
	assert.True(t, single.Term.WasModified)
	assert.Equal(t, "60 Months", single.Range.Label)

	rec, env = serve(t, handler, http.MethodGet, "/?min=37&max=60", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var ranged struct {
		Range struct {
			Min   int    `json:"term_range_min"`
			Max   int    `json:"term_range_max"`
			Label string `json:"term_label"`
		} `json:"range"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &ranged))
	assert.Equal(t, 36, ranged.Range.Min)
	assert.Equal(t, "36-60 Months", ranged.Range.Label)

	rec, _ = serve(t, handler, http.MethodGet, "/?min=72&max=60", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = serve(t, handler, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev"}}

	rec, _ := serve(t, HealthLive(cfg), http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dev", rec.Header().Get(envHeader))

	rec, env := serve(t, HealthReady(cfg, nil, nil), http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"redis":"disabled"`)

	rec, _ = serve(t, HealthReady(cfg, nil, stubPinger{}), http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = serve(t, HealthReady(cfg, nil, stubPinger{err: errors.New("down")}), http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "DEPENDENCY_ERROR", env.Error.Code)
}
