package vehicles

import (
	"github.com/angelmondragon/autocalc-backend/internal/scenario"
	"github.com/angelmondragon/autocalc-backend/pkg/enums"
)

// VehicleProfile is the decoded view of a VIN used for registration weight.
type VehicleProfile struct {
	VIN           string         `json:"vin"`
	Make          string         `json:"make,omitempty"`
	Model         string         `json:"model,omitempty"`
	ModelYear     string         `json:"model_year,omitempty"`
	BodyClass     string         `json:"body_class,omitempty"`
	VehicleType   string         `json:"vehicle_type,omitempty"`
	BodyType      enums.BodyType `json:"body_type"`
	CurbWeightLbs *int           `json:"curb_weight_lbs,omitempty"`
	GVWRLbs       *int           `json:"gvwr_lbs,omitempty"`
	GVWRClass     string         `json:"gvwr_class,omitempty"`
	DecodeNote    string         `json:"decode_note,omitempty"`
}

// Identity converts the profile into the weight resolver input.
func (p VehicleProfile) Identity() scenario.VehicleIdentity {
	return scenario.VehicleIdentity{
		VIN:           p.VIN,
		CurbWeightLbs: p.CurbWeightLbs,
		GVWRLbs:       p.GVWRLbs,
		BodyType:      p.BodyType,
	}
}

// WeightRequest combines an optional VIN with caller-supplied weight facts.
// Explicit positive weights and a body type take precedence over decoded values;
// a zero weight counts as not supplied.
type WeightRequest struct {
	Jurisdiction     string `json:"jurisdiction" validate:"omitempty,min=2,max=32"`
	VIN              string `json:"vin" validate:"omitempty,len=17,alphanum"`
	CurbWeightLbs    *int   `json:"curb_weight_lbs" validate:"omitempty,gte=0"`
	GVWRLbs          *int   `json:"gvwr_lbs" validate:"omitempty,gte=0"`
	BodyType         string `json:"body_type" validate:"omitempty,oneof=auto truck van other"`
	ManualBracketLbs *int   `json:"manual_bracket_lbs" validate:"omitempty,gt=0"`
}
