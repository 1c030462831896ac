// Package vehicles decodes VINs and resolves registration weight for a jurisdiction.
package vehicles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/autocalc-backend/internal/scenario"
	"github.com/angelmondragon/autocalc-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/autocalc-backend/pkg/errors"
	"github.com/angelmondragon/autocalc-backend/pkg/logger"
	"github.com/angelmondragon/autocalc-backend/pkg/metrics"
	pkgredis "github.com/angelmondragon/autocalc-backend/pkg/redis"
	"github.com/angelmondragon/autocalc-backend/pkg/vpic"
)

const vinLength = 17

// Service defines the behavior needed by the vehicle controllers.
type Service interface {
	Decode(ctx context.Context, vin string) (VehicleProfile, error)
	ResolveWeight(ctx context.Context, req WeightRequest) (scenario.WeightResolution, error)
}

type decoder interface {
	DecodeVIN(ctx context.Context, vin string) (*vpic.Decoded, error)
}

type profileCache interface {
	GetVIN(ctx context.Context, vin string) ([]byte, error)
	SetVIN(ctx context.Context, vin string, payload []byte, ttl time.Duration) error
	DelVIN(ctx context.Context, vin string) error
}

type engineLookup interface {
	Engine(key string) (*scenario.Engine, error)
}

type service struct {
	decoder  decoder
	cache    profileCache
	engines  engineLookup
	logg     *logger.Logger
	metrics  *metrics.EngineMetrics
	cacheTTL time.Duration
}

// ServiceParams bundles the dependencies required to build a vehicles service.
// Cache, Logger and Metrics are optional.
type ServiceParams struct {
	Decoder  decoder
	Cache    profileCache
	Engines  engineLookup
	Logger   *logger.Logger
	Metrics  *metrics.EngineMetrics
	CacheTTL time.Duration
}

// NewService constructs a vehicles service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Decoder == nil {
		return nil, fmt.Errorf("vin decoder is required")
	}
	if params.Engines == nil {
		return nil, fmt.Errorf("jurisdiction registry is required")
	}
	return &service{
		decoder:  params.Decoder,
		cache:    params.Cache,
		engines:  params.Engines,
		logg:     params.Logger,
		metrics:  params.Metrics,
		cacheTTL: params.CacheTTL,
	}, nil
}

func (s *service) Decode(ctx context.Context, vin string) (VehicleProfile, error) {
	normalized, err := NormalizeVIN(vin)
	if err != nil {
		return VehicleProfile{}, err
	}
	if s.logg != nil {
		ctx = s.logg.WithVIN(ctx, normalized)
	}

	if profile, ok := s.cached(ctx, normalized); ok {
		return profile, nil
	}

	decoded, err := s.decoder.DecodeVIN(ctx, normalized)
	if err != nil {
		s.metrics.IncVINDecode("error")
		return VehicleProfile{}, err
	}
	s.metrics.IncVINDecode("success")

	profile := profileFromDecoded(normalized, decoded)
	s.store(ctx, profile)
	return profile, nil
}

func (s *service) ResolveWeight(ctx context.Context, req WeightRequest) (scenario.WeightResolution, error) {
	engine, err := s.engines.Engine(req.Jurisdiction)
	if err != nil {
		return scenario.WeightResolution{}, err
	}

	var identity scenario.VehicleIdentity
	if strings.TrimSpace(req.VIN) != "" && needsDecode(req) {
		profile, err := s.Decode(ctx, req.VIN)
		switch {
		case err == nil:
			identity = profile.Identity()
		case isValidation(err):
			return scenario.WeightResolution{}, err
		default:
			// Upstream failures degrade to whatever the caller supplied.
			if s.logg != nil {
				s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "vin decode unavailable, resolving weight without it")
			}
		}
	}

	if supplied(req.CurbWeightLbs) {
		identity.CurbWeightLbs = req.CurbWeightLbs
	}
	if supplied(req.GVWRLbs) {
		identity.GVWRLbs = req.GVWRLbs
	}
	if strings.TrimSpace(req.BodyType) != "" {
		bodyType, err := enums.ParseBodyType(req.BodyType)
		if err != nil {
			return scenario.WeightResolution{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid body_type")
		}
		identity.BodyType = bodyType
	}

	var manual *scenario.ManualWeight
	if req.ManualBracketLbs != nil {
		manual = &scenario.ManualWeight{BracketLbs: *req.ManualBracketLbs}
	}
	return engine.Weights().Resolve(identity, manual), nil
}

// NormalizeVIN upper-cases and validates a 17 character VIN. I, O and Q are never
// used in VINs.
func NormalizeVIN(vin string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(vin))
	if len(normalized) != vinLength {
		return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("vin must be %d characters", vinLength)).
			WithDetails(map[string]any{"vin": normalized})
	}
	for _, r := range normalized {
		switch {
		case r == 'I' || r == 'O' || r == 'Q':
			return "", pkgerrors.New(pkgerrors.CodeValidation, "vin must not contain I, O or Q").
				WithDetails(map[string]any{"vin": normalized})
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
		default:
			return "", pkgerrors.New(pkgerrors.CodeValidation, "vin must be alphanumeric").
				WithDetails(map[string]any{"vin": normalized})
		}
	}
	return normalized, nil
}

func (s *service) cached(ctx context.Context, vin string) (VehicleProfile, bool) {
	if s.cache == nil {
		return VehicleProfile{}, false
	}
	payload, err := s.cache.GetVIN(ctx, vin)
	if err != nil {
		s.metrics.IncVINCacheMiss()
		if !errors.Is(err, pkgredis.ErrCacheMiss) && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "vin cache read failed")
		}
		return VehicleProfile{}, false
	}

	var profile VehicleProfile
	if err := json.Unmarshal(payload, &profile); err != nil {
		s.metrics.IncVINCacheMiss()
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "vin cache entry unreadable")
		}
		if err := s.cache.DelVIN(ctx, vin); err != nil && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "vin cache eviction failed")
		}
		return VehicleProfile{}, false
	}
	s.metrics.IncVINCacheHit()
	return profile, true
}

func (s *service) store(ctx context.Context, profile VehicleProfile) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(profile)
	if err != nil {
		return
	}
	if err := s.cache.SetVIN(ctx, profile.VIN, payload, s.cacheTTL); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "vin cache write failed")
	}
}

func profileFromDecoded(vin string, decoded *vpic.Decoded) VehicleProfile {
	if decoded == nil {
		return VehicleProfile{VIN: vin, BodyType: enums.BodyTypeAuto}
	}
	profile := VehicleProfile{
		VIN:           vin,
		Make:          decoded.Make,
		Model:         decoded.Model,
		ModelYear:     decoded.ModelYear,
		BodyClass:     decoded.BodyClass,
		VehicleType:   decoded.VehicleType,
		BodyType:      classifyBodyType(decoded.VehicleType, decoded.BodyClass),
		CurbWeightLbs: decoded.CurbWeightLbs,
		GVWRLbs:       decoded.GVWRLbs,
		GVWRClass:     decoded.GVWRClass,
	}
	if !decoded.Clean() {
		profile.DecodeNote = decoded.ErrorText
	}
	return profile
}

func needsDecode(req WeightRequest) bool {
	return !supplied(req.CurbWeightLbs) || strings.TrimSpace(req.BodyType) == ""
}

// supplied treats a zero or negative weight as a cleared field.
func supplied(lbs *int) bool {
	return lbs != nil && *lbs > 0
}

func isValidation(err error) bool {
	typed := pkgerrors.As(err)
	return typed != nil && typed.Code() == pkgerrors.CodeValidation
}
