// Package quotes turns API deal requests into scenario evaluations.
package quotes

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/autocalc-backend/internal/scenario"
	"github.com/angelmondragon/autocalc-backend/internal/vehicles"
	pkgerrors "github.com/angelmondragon/autocalc-backend/pkg/errors"
	"github.com/angelmondragon/autocalc-backend/pkg/loanterms"
	"github.com/angelmondragon/autocalc-backend/pkg/logger"
	"github.com/angelmondragon/autocalc-backend/pkg/metrics"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// Service defines the behavior needed by the scenario controller.
type Service interface {
	Evaluate(ctx context.Context, req Request) (Quote, error)
}

type engineLookup interface {
	Engine(key string) (*scenario.Engine, error)
}

type weightResolver interface {
	ResolveWeight(ctx context.Context, req vehicles.WeightRequest) (scenario.WeightResolution, error)
}

type service struct {
	engines engineLookup
	weights weightResolver
	logg    *logger.Logger
	metrics *metrics.EngineMetrics
	now     func() time.Time
}

// ServiceParams bundles the dependencies required to build a quotes service.
type ServiceParams struct {
	Engines engineLookup
	Weights weightResolver
	Logger  *logger.Logger
	Metrics *metrics.EngineMetrics
}

// NewService constructs a quotes service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Engines == nil {
		return nil, fmt.Errorf("jurisdiction registry is required")
	}
	if params.Weights == nil {
		return nil, fmt.Errorf("weight resolver is required")
	}
	return &service{
		engines: params.Engines,
		weights: params.Weights,
		logg:    params.Logger,
		metrics: params.Metrics,
		now:     time.Now,
	}, nil
}

func (s *service) Evaluate(ctx context.Context, req Request) (Quote, error) {
	if err := validate.Struct(req); err != nil {
		return Quote{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid scenario request")
	}

	engine, err := s.engines.Engine(req.Jurisdiction)
	if err != nil {
		return Quote{}, err
	}
	code := engine.Catalog().Jurisdiction
	if s.logg != nil {
		ctx = s.logg.WithJurisdiction(ctx, code)
	}

	weightReq := vehicles.WeightRequest{}
	if req.Vehicle != nil {
		weightReq = *req.Vehicle
	}
	weightReq.Jurisdiction = code
	weight, err := s.weights.ResolveWeight(ctx, weightReq)
	if err != nil {
		return Quote{}, err
	}

	financing, err := financingFor(req)
	if err != nil {
		return Quote{}, err
	}

	started := s.now()
	result := engine.Evaluate(purchaseContext(req), req.Overrides, weight)
	s.metrics.ObserveEvaluation(code, string(result.DetectedScenario.Type), result.WeightRequired, s.now().Sub(started))

	if s.logg != nil {
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{
			"scenario":        string(result.DetectedScenario.Type),
			"applied_rules":   len(result.AppliedRuleIDs),
			"weight_source":   string(result.Weight.WeightSource),
			"weight_required": result.WeightRequired,
			"total_fees":      result.Totals.TotalFees.StringFixed(2),
		}), "scenario.evaluated")
	}

	return Quote{ScenarioResult: result, Financing: financing}, nil
}

// purchaseContext is the single place percentages become fractions.
func purchaseContext(req Request) scenario.PurchaseContext {
	return scenario.PurchaseContext{
		SalePrice:      req.SalePrice,
		CashDown:       req.CashDown,
		TradeAllowance: req.TradeAllowance,
		TradePayoff:    req.TradePayoff,
		DealerFees:     req.DealerFees,
		CustomerAddons: req.CustomerAddons,
		StateTaxRate:   scenario.RateFromPercent(req.StateTaxRatePercent),
		CountyTaxRate:  scenario.RateFromPercent(req.CountyTaxRatePercent),
		StateName:      strings.TrimSpace(req.StateName),
		CountyName:     strings.TrimSpace(req.CountyName),
		IsFinanced:     isFinanced(req),
		HasTradeIn:     hasTradeIn(req),
		TaxableBase:    req.TaxableBase,
	}
}

func isFinanced(req Request) bool {
	if req.IsFinanced != nil {
		return *req.IsFinanced
	}
	return req.APR.GreaterThan(decimal.Zero) && req.TermMonths > 0
}

func hasTradeIn(req Request) bool {
	if req.HasTradeIn != nil {
		return *req.HasTradeIn
	}
	return req.TradeAllowance.GreaterThan(decimal.Zero) || req.TradePayoff.GreaterThan(decimal.Zero)
}

func financingFor(req Request) (*Financing, error) {
	if !isFinanced(req) || req.TermMonths == 0 {
		return nil, nil
	}
	info, err := loanterms.Describe(req.TermMonths)
	if err != nil {
		return nil, err
	}
	return &Financing{APR: req.APR, Term: info}, nil
}
