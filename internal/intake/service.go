package intake

import (
	"fmt"
	"io"

	"github.com/kmutua/metertrack/internal/intake/manifest"
	"github.com/kmutua/metertrack/internal/meter"
)

type Service struct {
	manifestParser Parser
}

func NewService() *Service {
	return &Service{
		manifestParser: manifest.NewParser(),
	}
}

// Parse reads a supplier delivery manifest and returns the meters it lists,
// ready to be handed to the lifecycle engine's AddMeters.
func (s *Service) Parse(r io.Reader) ([]meter.NewMeter, error) {
	meters, err := s.manifestParser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	return meters, nil
}
