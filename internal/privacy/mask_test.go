package privacy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opsdeck/backoffice/internal/records"
)

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		name string
		addr string
		want string
	}{
		{"long local part keeps first and last char", "rajesh.sharma@gmail.com", "r••••a@gmail.com"},
		{"short local part fully masked", "ab@x.com", "••••@x.com"},
		{"single char local part fully masked", "a@x.com", "••••@x.com"},
		{"no at sign returned unchanged", "not-an-email", "not-an-email"},
		{"missing local part returned unchanged", "@x.com", "@x.com"},
		{"missing domain returned unchanged", "user@", "user@"},
		{"empty string returned unchanged", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MaskEmail(tc.addr))
		})
	}
}

func TestMaskPhone(t *testing.T) {
	tests := []struct {
		name   string
		digits string
		want   string
	}{
		{"ten digits keep edges", "9876543210", "98••••10"},
		{"short number fully masked", "123", "••••"},
		{"exactly four digits fully masked", "1234", "••••"},
		{"five digits keep edges", "12345", "12••••45"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MaskPhone(tc.digits))
		})
	}
}

func TestMaskAddress(t *testing.T) {
	t.Run("street pincode and landmark masked", func(t *testing.T) {
		masked := MaskAddress(records.Address{
			Street:   "42 MG Road",
			City:     "Bengaluru",
			State:    "Karnataka",
			Pincode:  "560001",
			Landmark: "Near Metro",
		})

		assert.Equal(t, "4•••••ad", masked.Street)
		assert.Equal(t, "Bengaluru", masked.City)
		assert.Equal(t, "Karnataka", masked.State)
		assert.Equal(t, "••••••", masked.Pincode)
		assert.Equal(t, "•••••", masked.Landmark)
	})

	t.Run("absent parts stay empty", func(t *testing.T) {
		masked := MaskAddress(records.Address{City: "Pune"})
		assert.Equal(t, "", masked.Street)
		assert.Equal(t, "Pune", masked.City)
		assert.Equal(t, "", masked.Pincode)
		assert.Equal(t, "", masked.Landmark)
	})
}

func TestMaskDateOfBirth(t *testing.T) {
	tests := []struct {
		name    string
		dateStr string
		want    string
	}{
		{"well-formed date hides the day", "15/06/1995", "••/06/1995"},
		{"malformed date fully masked", "bad-date", "••/••/••••"},
		{"too many parts fully masked", "1/2/3/4", "••/••/••••"},
		{"empty string fully masked", "", "••/••/••••"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MaskDateOfBirth(tc.dateStr))
		})
	}
}
