package vehicles

import (
	"strings"

	"github.com/angelmondragon/autocalc-backend/pkg/enums"
)

// classifyBodyType maps vPIC VehicleType/BodyClass values onto a registration schedule.
func classifyBodyType(vehicleType, bodyClass string) enums.BodyType {
	vt := strings.ToLower(strings.TrimSpace(vehicleType))
	bc := strings.ToLower(strings.TrimSpace(bodyClass))

	switch {
	case strings.Contains(bc, "pickup"), vt == "truck", strings.HasPrefix(vt, "truck"):
		return enums.BodyTypeTruck
	case strings.Contains(bc, "van") && !strings.Contains(bc, "minivan"):
		return enums.BodyTypeVan
	case vt == "passenger car", strings.Contains(vt, "multipurpose passenger vehicle"), strings.Contains(vt, "(mpv)"):
		return enums.BodyTypeAuto
	case vt == "" && bc == "":
		return enums.BodyTypeAuto
	default:
		return enums.BodyTypeOther
	}
}
