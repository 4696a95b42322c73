package delivery

import (
	"time"

	"parts-dispatch/internal/domain"
	"parts-dispatch/internal/vrp"
)

const (
	// DueFallback is the delivery horizon for orders without a required-by date.
	DueFallback = 24 * time.Hour

	depotHorizon   = 24 * time.Hour
	minDropoffSpan = time.Hour
	minPickupSpan  = 30 * time.Minute
)

// Windows are the planning bounds of one assignment. Pickup and Dropoff are offsets
// from the plan start in seconds; Start and Due bound the persisted stop windows.
type Windows struct {
	Start   time.Time
	Due     time.Time
	Pickup  vrp.Window
	Dropoff vrp.Window
}

type defaultWindowFactory struct{}

// NewWindowFactory - creates a new WindowFactory.
func NewWindowFactory() WindowFactory {
	return defaultWindowFactory{}
}

// Windows opens both stops at now. The dropoff closes at the due time but no sooner than
// an hour out; the pickup closes lead time earlier but no sooner than half an hour out.
func (defaultWindowFactory) Windows(c domain.AssignmentContext, now time.Time) Windows {
	due := c.DueBy(now, DueFallback)
	dropoff := max(minDropoffSpan, due.Sub(now))
	pickup := max(minPickupSpan, dropoff-time.Duration(c.LeadTimeHours)*time.Hour)
	return Windows{
		Start:   now,
		Due:     due,
		Pickup:  vrp.Window{End: pickup.Seconds()},
		Dropoff: vrp.Window{End: dropoff.Seconds()},
	}
}

func depotWindow() vrp.Window {
	return vrp.Window{End: depotHorizon.Seconds()}
}
