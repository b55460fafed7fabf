package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"\t\n", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, IsEmpty(c.input), "IsEmpty(%q)", c.input)
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd", "ali.raza@corvitlabs.pk"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), "IsValidEmail(%q)", email)
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), "IsValidEmail(%q)", email)
	}
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2025-03-10")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), date)

	for _, s := range []string{"2025-02-30", "10-03-2025", "2025/03/10", "2025-03-10T00:00:00Z", ""} {
		_, ok := IsValidDate(s)
		assert.False(t, ok, "IsValidDate(%q)", s)
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"lunch", "prayer", "away"}
	assert.True(t, IsInSlice("prayer", slice))
	assert.False(t, IsInSlice("Prayer", slice))
	assert.False(t, IsInSlice("nap", slice))
	assert.False(t, IsInSlice("lunch", nil))
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "latitude", Message: "latitude is required"},
		{Field: "longitude", Message: "longitude must be between -180 and 180"},
	}
	assert.Equal(t, "latitude: latitude is required; longitude: longitude must be between -180 and 180", errs.Error())
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "email is required"},
		{Field: "password", Message: "password is required"},
	}
	assert.Equal(t, map[string]string{
		"email":    "email is required",
		"password": "password is required",
	}, errs.ToMap())
}
