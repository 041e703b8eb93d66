package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "authbase/internal/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantISO     string
		wantCountry int32
		wantErr     bool
	}{
		{
			name:        "us number",
			raw:         "14155552671",
			wantISO:     "US",
			wantCountry: 1,
		},
		{
			name:        "uk number",
			raw:         "442071838750",
			wantISO:     "GB",
			wantCountry: 44,
		},
		{
			name:    "not a number",
			raw:     "hello",
			wantErr: true,
		},
		{
			name:    "empty input",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "too short to carry a region",
			raw:     "1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := Parse(tt.raw)

			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidPhoneNumber)
				assert.Nil(t, parsed)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantISO, parsed.ISOCode)
			assert.Equal(t, tt.wantCountry, parsed.CountryCode)
			assert.NotEmpty(t, parsed.InternationalNumber)
			assert.NotEmpty(t, parsed.Timezone)
		})
	}
}
