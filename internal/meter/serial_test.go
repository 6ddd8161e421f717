package meter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kmutua/metertrack/internal/meter"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		name   string
		mode   meter.MatchMode
		serial string
		want   string
	}{
		{name: "NormalizedUppercases", mode: meter.MatchNormalized, serial: "a100", want: "A100"},
		{name: "NormalizedStripsLeadingZeros", mode: meter.MatchNormalized, serial: "007", want: "7"},
		{name: "NormalizedCollapsesEquivalents", mode: meter.MatchNormalized, serial: "07", want: "7"},
		{name: "NormalizedAllZeros", mode: meter.MatchNormalized, serial: "000", want: "0"},
		{name: "NormalizedTrimsWhitespace", mode: meter.MatchNormalized, serial: "  sn-42  ", want: "SN-42"},
		{name: "ExactKeepsCase", mode: meter.MatchExact, serial: "a100", want: "a100"},
		{name: "ExactKeepsLeadingZeros", mode: meter.MatchExact, serial: "007", want: "007"},
		{name: "ExactTrimsWhitespace", mode: meter.MatchExact, serial: " A100 ", want: "A100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, meter.Canonical(tt.mode, tt.serial))
		})
	}
}

func TestCanonical_ModesDisagreeOnPaddedSerials(t *testing.T) {
	// "007" and "07" are one identity under normalized matching but two
	// distinct serials under exact matching.
	assert.Equal(t,
		meter.Canonical(meter.MatchNormalized, "007"),
		meter.Canonical(meter.MatchNormalized, "07"),
	)
	assert.NotEqual(t,
		meter.Canonical(meter.MatchExact, "007"),
		meter.Canonical(meter.MatchExact, "07"),
	)
}
