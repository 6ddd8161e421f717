package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmutua/metertrack/internal/encoding"
)

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "Serial Number,Meter Type\n58100123456,Split\n"
	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	// Windows-1252 encoded "Série;N°\n": é = 0xE9, ° = 0xB0.
	latin1Bytes := []byte{
		'S', 0xE9, 'r', 'i', 'e', ';', 'N', 0xB0, '\n',
	}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(latin1Bytes))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Série;N°\n", string(got))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	// Excel prepends a UTF-8 BOM; it must be stripped.
	bom := []byte{0xEF, 0xBB, 0xBF}
	content := []byte("Serial Number,Meter Type\n")
	input := append(bom, content...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Serial Number,Meter Type\n", string(got))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	// UTF-16 LE with BOM, as saved by Excel's "Unicode Text" export.
	input := []byte{0xFF, 0xFE, 'A', 0x00, '1', 0x00, '0', 0x00, '0', 0x00}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "A100", string(got))
}
