package intake

import (
	"io"

	"github.com/kmutua/metertrack/internal/meter"
)

type Parser interface {
	Parse(r io.Reader) ([]meter.NewMeter, error)
}
