package scenario

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/autocalc-backend/pkg/enums"
)

// GVWRCurbRatio estimates curb weight from gross vehicle weight rating.
var GVWRCurbRatio = decimal.RequireFromString("0.70")

// WeightResolver picks a registration weight and bracket from whatever data exists.
type WeightResolver struct {
	schedules Schedules
}

// NewWeightResolver binds the resolver to a jurisdiction's weight schedules.
func NewWeightResolver(schedules Schedules) *WeightResolver {
	return &WeightResolver{schedules: schedules}
}

// Resolve applies the fallback chain: curb weight, then GVWR, then a manual bracket.
// With none of those the result is manual_required and carries no bracket.
func (r *WeightResolver) Resolve(identity VehicleIdentity, manual *ManualWeight) WeightResolution {
	bodyType := identity.BodyType.OrDefault()

	if curb, ok := positive(identity.CurbWeightLbs); ok {
		return r.withBracket(WeightResolution{
			EstimatedWeightLbs: intPtr(curb),
			WeightSource:       enums.WeightSourceNHTSAExact,
			BodyType:           bodyType,
		}, curb)
	}

	if gvwr, ok := positive(identity.GVWRLbs); ok {
		estimated := int(decimal.NewFromInt(int64(gvwr)).Mul(GVWRCurbRatio).Round(0).IntPart())
		return r.withBracket(WeightResolution{
			EstimatedWeightLbs: intPtr(estimated),
			WeightSource:       enums.WeightSourceGVWRDerived,
			BodyType:           bodyType,
		}, estimated)
	}

	if manual != nil && manual.BracketLbs > 0 {
		return r.withBracket(WeightResolution{
			WeightSource: enums.WeightSourceManual,
			BodyType:     bodyType,
		}, manual.BracketLbs)
	}

	return manualRequired(bodyType)
}

// WithBodyType re-runs bracket selection for a new body type.
func (r *WeightResolver) WithBodyType(res WeightResolution, bodyType enums.BodyType) WeightResolution {
	bodyType = bodyType.OrDefault()

	var weight int
	switch {
	case res.EstimatedWeightLbs != nil && *res.EstimatedWeightLbs > 0:
		weight = *res.EstimatedWeightLbs
	case res.WeightBracketLbs != nil && *res.WeightBracketLbs > 0:
		weight = *res.WeightBracketLbs
	default:
		return manualRequired(bodyType)
	}

	out := WeightResolution{
		WeightSource: res.WeightSource,
		BodyType:     bodyType,
	}
	if res.EstimatedWeightLbs != nil {
		out.EstimatedWeightLbs = intPtr(*res.EstimatedWeightLbs)
	}
	return r.withBracket(out, weight)
}

func (r *WeightResolver) withBracket(res WeightResolution, weightLbs int) WeightResolution {
	bracket, ok := r.schedules.For(res.BodyType).Select(weightLbs)
	if !ok {
		if res.WeightSource == enums.WeightSourceManual {
			return manualRequired(res.BodyType)
		}
		return res
	}
	res.WeightBracketLbs = intPtr(bracket.CeilingLbs)
	res.BracketLabel = bracket.Label
	return res
}

func manualRequired(bodyType enums.BodyType) WeightResolution {
	return WeightResolution{
		WeightSource: enums.WeightSourceManualRequired,
		BodyType:     bodyType,
	}
}

func positive(v *int) (int, bool) {
	if v == nil || *v <= 0 {
		return 0, false
	}
	return *v, true
}

func intPtr(v int) *int {
	return &v
}
