package agent

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("agent not found")

// Agent is a consignment partner holding meters on our behalf.
type Agent struct {
	ID        uuid.UUID
	Name      string
	Phone     string
	Location  string
	County    string
	Active    bool
	CreatedBy uuid.UUID
	CreatedAt time.Time
}
