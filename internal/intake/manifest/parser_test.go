package manifest_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmutua/metertrack/internal/intake/manifest"
	"github.com/kmutua/metertrack/internal/meter"
)

func TestParser_HexingFormat(t *testing.T) {
	input := `Delivery Note,DN-2026-014
Serial Number,Meter Type,Batch
58100123456,Split,B1
58100123457,Split Phase,B1
58100123458,DIN,B1

Total,3
`

	meters, err := manifest.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, meters, 3)
	assert.Equal(t, meter.NewMeter{SerialNumber: "58100123456", Type: "split"}, meters[0])
	assert.Equal(t, "split", meters[1].Type)
	assert.Equal(t, "integrated", meters[2].Type)
}

func TestParser_StronFormat(t *testing.T) {
	input := "Meter No.,Type\nSTR-9001,Integrated\nSTR-9002,SP\n"

	meters, err := manifest.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, meters, 2)
	assert.Equal(t, "integrated", meters[0].Type)
	assert.Equal(t, "split", meters[1].Type)
}

func TestParser_FixedTypeSemicolonFormat(t *testing.T) {
	input := "SERIAL_NO;BOX\n77001;12\n77002;12\n"

	meters, err := manifest.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, meters, 2)
	assert.Equal(t, "split", meters[0].Type)
	assert.Equal(t, "77001", meters[0].SerialNumber)
}

func TestParser_DuplicateSerialInFile(t *testing.T) {
	input := "Serial Number,Meter Type\nA100,Split\nA100,Split\n"

	_, err := manifest.NewParser().Parse(strings.NewReader(input))
	assert.ErrorContains(t, err, "already listed")
}

func TestParser_UnknownMeterType(t *testing.T) {
	input := "Serial Number,Meter Type\nA100,ThreePhase\n"

	_, err := manifest.NewParser().Parse(strings.NewReader(input))
	assert.ErrorContains(t, err, "unknown meter type")
}

func TestParser_NoMatchingFormat(t *testing.T) {
	input := "Foo,Bar\n1,2\n"

	_, err := manifest.NewParser().Parse(strings.NewReader(input))
	assert.ErrorContains(t, err, "no matching supplier format")
}

func TestParser_UTF8BOM(t *testing.T) {
	input := "\xEF\xBB\xBFSerial Number,Meter Type\nA100,Split\n"

	meters, err := manifest.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, meters, 1)
	assert.Equal(t, "A100", meters[0].SerialNumber)
}
