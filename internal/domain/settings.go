package domain

import "context"

// Canonical fallbacks applied whenever the settings document is missing a
// value. One default per knob, used at every call site.
const (
	DefaultPointValue       = 0.10 // currency per point
	DefaultPointsPercentage = 1.0  // percent of spend earned as points
	DefaultDeliveryCost     = 0.0
)

// StoreSettings is external read-only config for the pricing core.
type StoreSettings struct {
	PointValue       *float64 `json:"pointValue"`
	PointsPercentage *float64 `json:"pointsPercentage"`
	DeliveryCost     *float64 `json:"deliveryCost"`
}

// Resolved settings with defaults filled in. The core only ever consumes
// this form.
type Settings struct {
	PointValue       float64 `json:"pointValue"`
	PointsPercentage float64 `json:"pointsPercentage"`
	DeliveryCost     float64 `json:"deliveryCost"`
}

// Normalized tolerates absent values with the documented defaults.
func (s StoreSettings) Normalized() Settings {
	out := Settings{
		PointValue:       DefaultPointValue,
		PointsPercentage: DefaultPointsPercentage,
		DeliveryCost:     DefaultDeliveryCost,
	}
	if s.PointValue != nil {
		out.PointValue = *s.PointValue
	}
	if s.PointsPercentage != nil {
		out.PointsPercentage = *s.PointsPercentage
	}
	if s.DeliveryCost != nil {
		out.DeliveryCost = *s.DeliveryCost
	}
	return out
}

// DefaultSettings is what Normalized yields for an empty document.
func DefaultSettings() Settings {
	return StoreSettings{}.Normalized()
}

type SettingsRepository interface {
	Get(ctx context.Context) (*StoreSettings, error)
	Update(ctx context.Context, s *StoreSettings) error
}
