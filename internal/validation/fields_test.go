package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid", email: "user@example.com"},
		{name: "minimal", email: "a@b"},
		{name: "empty", email: "", wantErr: true},
		{name: "no at sign", email: "user.example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateContactEmail(t *testing.T) {
	assert.NoError(t, ValidateContactEmail("user@example.com"))
	assert.Error(t, ValidateContactEmail("a@b"))
	assert.Error(t, ValidateContactEmail("@example.com"))
	assert.Error(t, ValidateContactEmail("user@example."))
}

func TestValidateUPIID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "valid", id: "alice@bank"},
		{name: "with dots", id: "alice.b@okicici"},
		{name: "no at", id: "alicebank", wantErr: true},
		{name: "with space", id: "alice @bank", wantErr: true},
		{name: "empty handle", id: "@bank", wantErr: true},
		{name: "empty", id: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUPIID(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	v, err := ParseAmount(" 150 ")
	require.NoError(t, err)
	assert.InDelta(t, 150.0, v, 1e-9)

	for _, bad := range []string{"0", "-5", "abc", "", "NaN"} {
		_, err := ParseAmount(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseCoordinates(t *testing.T) {
	lat, err := ParseLatitude("-90")
	require.NoError(t, err)
	assert.InDelta(t, -90.0, lat, 1e-9)

	lon, err := ParseLongitude("180")
	require.NoError(t, err)
	assert.InDelta(t, 180.0, lon, 1e-9)

	_, err = ParseLatitude("90.0001")
	assert.Error(t, err)
	_, err = ParseLongitude("-181")
	assert.Error(t, err)
	_, err = ParseLatitude("north")
	assert.Error(t, err)
}

func TestNormalizeWhatsAppNumber(t *testing.T) {
	got, err := NormalizeWhatsAppNumber("+1 (555) 123-4567")
	require.NoError(t, err)
	assert.Equal(t, "+15551234567", got)

	_, err = NormalizeWhatsAppNumber("12-34")
	assert.Error(t, err)
}

func TestValidateHexColor(t *testing.T) {
	assert.NoError(t, ValidateHexColor("#fff"))
	assert.NoError(t, ValidateHexColor("#A1b2C3"))
	assert.Error(t, ValidateHexColor("fff"))
	assert.Error(t, ValidateHexColor("#ggg"))
	assert.Error(t, ValidateHexColor("#12345"))
}

func TestIsDataURL(t *testing.T) {
	assert.True(t, IsDataURL("data:image/png;base64,AAAA", "image/"))
	assert.False(t, IsDataURL("data:audio/mpeg;base64,AAAA", "image/"))
	assert.False(t, IsDataURL("https://example.com/a.png", "image/"))
	assert.False(t, IsDataURL("data:image/png", "image/"))
}
