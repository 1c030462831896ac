package enums

// LineItemCategory groups fee line items on a scenario result.
type LineItemCategory string

const (
	LineItemCategoryGovernment LineItemCategory = "government"
	LineItemCategoryTax        LineItemCategory = "tax"
)

var validLineItemCategories = []LineItemCategory{
	LineItemCategoryGovernment,
	LineItemCategoryTax,
}

// String implements fmt.Stringer.
func (c LineItemCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is known.
func (c LineItemCategory) IsValid() bool {
	for _, candidate := range validLineItemCategories {
		if candidate == c {
			return true
		}
	}
	return false
}
