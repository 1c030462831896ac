package enums

// WeightSource records where a vehicle's registration weight came from.
type WeightSource string

const (
	WeightSourceNHTSAExact     WeightSource = "nhtsa_exact"
	WeightSourceGVWRDerived    WeightSource = "gvwr_derived"
	WeightSourceManual         WeightSource = "manual"
	WeightSourceManualRequired WeightSource = "manual_required"
)

var validWeightSources = []WeightSource{
	WeightSourceNHTSAExact,
	WeightSourceGVWRDerived,
	WeightSourceManual,
	WeightSourceManualRequired,
}

// String implements fmt.Stringer.
func (w WeightSource) String() string {
	return string(w)
}

// IsValid reports whether the value is a known WeightSource.
func (w WeightSource) IsValid() bool {
	for _, candidate := range validWeightSources {
		if candidate == w {
			return true
		}
	}
	return false
}

// HasBracket reports whether a bracket was selected for this source.
func (w WeightSource) HasBracket() bool {
	return w.IsValid() && w != WeightSourceManualRequired
}
