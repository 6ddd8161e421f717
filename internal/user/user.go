package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("profile not found")

// Profile represents an acting user of the system. Every mutation is
// attributed to a profile, and deactivated profiles are refused before
// any table is touched.
type Profile struct {
	ID        uuid.UUID
	Name      string
	Phone     string
	Active    bool
	CreatedAt time.Time
}
