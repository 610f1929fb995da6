package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTaxID(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"plain digits", "52998224725", "52998224725", true},
		{"masked", "529.982.247-25", "52998224725", true},
		{"surrounding spaces", "  11144477735 ", "11144477735", true},
		{"check digit zero", "39053344705", "39053344705", true},
		{"wrong first check digit", "52998224715", "", false},
		{"wrong second check digit", "52998224724", "", false},
		{"repeated digits", "11111111111", "", false},
		{"all zeros", "000.000.000-00", "", false},
		{"too short", "5299822472", "", false},
		{"too long", "529982247251", "", false},
		{"letters", "5299822472a", "", false},
		{"half masked", "529.98224725", "", false},
		{"empty", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NormalizeTaxID(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.ok, ValidTaxID(tc.in))
		})
	}
}
