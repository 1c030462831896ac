package enums

// ScenarioType is the display classification of a resolved purchase scenario.
type ScenarioType string

const (
	ScenarioTypeManual              ScenarioType = "manual"
	ScenarioTypeCash                ScenarioType = "cash"
	ScenarioTypeFinanced            ScenarioType = "financed"
	ScenarioTypeCashNewPlate        ScenarioType = "cash_new_plate"
	ScenarioTypeCashTagTransfer     ScenarioType = "cash_tag_transfer"
	ScenarioTypeCashTempTag         ScenarioType = "cash_temp_tag"
	ScenarioTypeFinancedNewPlate    ScenarioType = "financed_new_plate"
	ScenarioTypeFinancedTagTransfer ScenarioType = "financed_tag_transfer"
	ScenarioTypeFinancedTempTag     ScenarioType = "financed_temp_tag"
)

// String implements fmt.Stringer.
func (s ScenarioType) String() string {
	return string(s)
}
