package availability

import "context"

type AvailabilityService interface {
	// SavePreference stores a month of availability for the calling employee.
	// With overwrite, the whole month is replaced; otherwise only the
	// submitted dates are replaced and other dates keep their slots.
	SavePreference(ctx context.Context, req SavePreferenceRequest) (PreferenceResponse, error)
	GetMyPreference(ctx context.Context, workplaceID string, year, month int) (PreferenceResponse, error)
}
