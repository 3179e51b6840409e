package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Tax Advisory", "tax-advisory"},
		{"  GST & Compliance Services!  ", "gst-compliance-services"},
		{"--Already--Slugged--", "already-slugged"},
		{"Mergers, Acquisitions (M&A) 2026", "mergers-acquisitions-m-a-2026"},
		{"Café Déjà vu", "caf-d-j-vu"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.in))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "tax-advisory", Normalize("  Tax-Advisory "))
}
