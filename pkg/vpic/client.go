// Package vpic is a client for the NHTSA vPIC VIN decoding API.
package vpic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/angelmondragon/autocalc-backend/pkg/errors"
)

const (
	defaultBaseURL              = "https://vpic.nhtsa.dot.gov/api"
	defaultTimeout              = 10 * time.Second
	responseBodyReadLimit int64 = 1024
)

var numberPattern = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

// Client wraps the vPIC DecodeVinValues endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the vPIC base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithTimeout sets the timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// NewClient builds a vPIC client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client
}

// Decoded holds the vPIC fields relevant to registration weight.
type Decoded struct {
	VIN           string `json:"vin"`
	Make          string `json:"make,omitempty"`
	Model         string `json:"model,omitempty"`
	ModelYear     string `json:"model_year,omitempty"`
	BodyClass     string `json:"body_class,omitempty"`
	VehicleType   string `json:"vehicle_type,omitempty"`
	CurbWeightLbs *int   `json:"curb_weight_lbs,omitempty"`
	GVWRLbs       *int   `json:"gvwr_lbs,omitempty"`
	GVWRClass     string `json:"gvwr_class,omitempty"`
	ErrorCode     string `json:"error_code,omitempty"`
	ErrorText     string `json:"error_text,omitempty"`
}

// Clean reports whether vPIC decoded the VIN without errors.
func (d Decoded) Clean() bool {
	code := strings.TrimSpace(d.ErrorCode)
	return code == "" || code == "0"
}

type decodeResponse struct {
	Count   int             `json:"Count"`
	Message string          `json:"Message"`
	Results []decodedValues `json:"Results"`
}

type decodedValues struct {
	VIN          string `json:"VIN"`
	Make         string `json:"Make"`
	Model        string `json:"Model"`
	ModelYear    string `json:"ModelYear"`
	BodyClass    string `json:"BodyClass"`
	VehicleType  string `json:"VehicleType"`
	CurbWeightLB string `json:"CurbWeightLB"`
	GVWR         string `json:"GVWR"`
	GVWRTo       string `json:"GVWR_to"`
	ErrorCode    string `json:"ErrorCode"`
	ErrorText    string `json:"ErrorText"`
}

// DecodeVIN decodes a single VIN. Validation of the VIN format is left to callers.
func (c *Client) DecodeVIN(ctx context.Context, vin string) (*Decoded, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "vpic client not configured")
	}
	trimmed := strings.TrimSpace(vin)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vin is required")
	}

	endpoint := fmt.Sprintf("%s/vehicles/DecodeVinValues/%s?format=json", strings.TrimRight(c.baseURL, "/"), url.PathEscape(trimmed))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build vin decode request")
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute vin decode request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "vin decode request failed")
	}

	var apiResp decodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode vin decode response")
	}
	if len(apiResp.Results) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vin decode returned no results")
	}

	values := apiResp.Results[0]
	decoded := &Decoded{
		VIN:           strings.ToUpper(trimmed),
		Make:          strings.TrimSpace(values.Make),
		Model:         strings.TrimSpace(values.Model),
		ModelYear:     strings.TrimSpace(values.ModelYear),
		BodyClass:     strings.TrimSpace(values.BodyClass),
		VehicleType:   strings.TrimSpace(values.VehicleType),
		CurbWeightLbs: ParsePounds(values.CurbWeightLB),
		GVWRClass:     strings.TrimSpace(values.GVWR),
		ErrorCode:     strings.TrimSpace(values.ErrorCode),
		ErrorText:     strings.TrimSpace(values.ErrorText),
	}
	decoded.GVWRLbs = ParseGVWR(values.GVWR)
	if decoded.GVWRLbs == nil {
		decoded.GVWRLbs = ParseGVWR(values.GVWRTo)
	}
	return decoded, nil
}

// ParsePounds reads a plain weight such as "4,069" or "4069.5". Blank or
// non-positive values yield nil.
func ParsePounds(raw string) *int {
	match := numberPattern.FindString(raw)
	if match == "" {
		return nil
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil || value <= 0 {
		return nil
	}
	lbs := int(math.Round(value))
	return &lbs
}

// ParseGVWR extracts the upper bound in pounds from a vPIC GVWR class string, e.g.
// "Class 2E: 6,001 - 7,000 lb (2,722 - 3,175 kg)" yields 7000. Open-ended classes
// ("33,001 lb and above") yield their lower bound.
func ParseGVWR(raw string) *int {
	text := raw
	if idx := strings.Index(text, "("); idx >= 0 {
		text = text[:idx]
	}
	if idx := strings.Index(text, ":"); idx >= 0 {
		text = text[idx+1:]
	}

	var upper *int
	for _, match := range numberPattern.FindAllString(text, -1) {
		value := ParsePounds(match)
		if value == nil {
			continue
		}
		if upper == nil || *value > *upper {
			upper = value
		}
	}
	return upper
}
