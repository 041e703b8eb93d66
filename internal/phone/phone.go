package phone

import (
	"github.com/nyaruka/phonenumbers"

	apperrors "authbase/internal/errors"
)

// Parsed is the structured form of a phone number plus the timezone the
// account inherits from it.
type Parsed struct {
	ISOCode             string
	CountryCode         int32
	InternationalNumber string
	Timezone            string
}

// Parse interprets a raw calling-code-prefixed number ("14155552671") and
// resolves the region's first timezone. Any gap in the result is reported as
// ErrInvalidPhoneNumber, distinct from schema validation failures.
func Parse(raw string) (*Parsed, error) {
	num, err := phonenumbers.Parse("+"+raw, "")
	if err != nil {
		return nil, apperrors.ErrInvalidPhoneNumber
	}

	iso := phonenumbers.GetRegionCodeForNumber(num)
	if iso == "" || iso == "ZZ" {
		return nil, apperrors.ErrInvalidPhoneNumber
	}

	zones, err := phonenumbers.GetTimezonesForNumber(num)
	if err != nil || len(zones) == 0 {
		return nil, apperrors.ErrInvalidPhoneNumber
	}

	return &Parsed{
		ISOCode:             iso,
		CountryCode:         num.GetCountryCode(),
		InternationalNumber: phonenumbers.Format(num, phonenumbers.INTERNATIONAL),
		Timezone:            zones[0],
	}, nil
}
