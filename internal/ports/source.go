package ports

import (
	"context"

	"debloat/internal/domain"
)

// Device is one attached target reported by the enumeration backend
type Device struct {
	ID    string // serial, e.g. "emulator-5554"
	Model string // e.g. "Pixel_7"
	State string // "device", "offline", "unauthorized"
}

// Notification is the sum type of asynchronous enumeration events. The
// backend is not required to serialize the three kinds relative to each
// other; consumers resolve ordering with session tokens, not arrival order.
type Notification interface {
	notification() // marker method
}

// Chunk carries a partial batch of enumerated packages. A chunk may
// re-deliver an ID from an earlier chunk; the newer copy wins.
type Chunk struct {
	Packages   []domain.Package
	TotalSoFar int
}

// Progress reports enumeration status. Expected is the backend's count of
// packages it intends to deliver, or 0 when unknown. Err is non-empty when
// the stream terminated abnormally; packages already delivered stay valid.
type Progress struct {
	Status   string
	Expected int
	Complete bool
	Err      string
}

// Done signals that the enumeration finished with Total unique packages.
type Done struct {
	Total     int
	FromCache bool
}

func (Chunk) notification()    {}
func (Progress) notification() {}
func (Done) notification()     {}

// PackageSource enumerates and manages packages on attached devices.
type PackageSource interface {
	// Devices lists attached devices
	Devices(ctx context.Context) ([]Device, error)

	// Enumerate starts one enumeration of the given device and returns the
	// notification stream for it. The channel is closed after the terminal
	// notification (Done, or a Progress carrying an error). There is no
	// abort call; callers that lose interest simply stop draining and
	// cancel the context.
	Enumerate(ctx context.Context, deviceID string) (<-chan Notification, error)

	// Uninstall removes a package for the current user
	Uninstall(ctx context.Context, deviceID, packageID string) error
}
