package domain

import (
	"time"

	"github.com/laia-platform/LAIA-SchedulingService/pkg/types"
)

// WorkingHours is the opening schedule of a tenant for one weekday (0 = Sunday).
// At most one record exists per (tenant, weekday); a missing record means the
// tenant is closed on that weekday (fail-safe default, not an error).
type WorkingHours struct {
	TenantID     int64
	Weekday      int
	IsOpen       bool
	StartMinutes types.MinuteOfDay
	EndMinutes   types.MinuteOfDay

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClosedDay returns the fail-safe schedule used when no record exists
func ClosedDay(tenantID int64, weekday int) WorkingHours {
	return WorkingHours{TenantID: tenantID, Weekday: weekday, IsOpen: false}
}

// Window returns the open interval of the day; empty when closed
func (w WorkingHours) Window() Interval {
	if !w.IsOpen {
		return Interval{}
	}
	return Interval{Start: w.StartMinutes, End: w.EndMinutes}
}

// BlockedSlot is an admin-declared ad-hoc closure, either a whole day
// (no time range) or a [StartMinutes, EndMinutes) range within the day.
type BlockedSlot struct {
	ID       int64
	TenantID int64
	Date     types.Date
	// Both nil means the entire day is blocked.
	StartMinutes *types.MinuteOfDay
	EndMinutes   *types.MinuteOfDay
	Reason       string

	CreatedAt time.Time
}

// IsAllDay reports whether the block covers the whole day
func (b *BlockedSlot) IsAllDay() bool {
	return b.StartMinutes == nil || b.EndMinutes == nil
}

// Interval returns the blocked interval; a full-day block is {0, 1440}
func (b *BlockedSlot) Interval() Interval {
	if b.IsAllDay() {
		return Interval{Start: 0, End: types.MinutesPerDay}
	}
	return Interval{Start: *b.StartMinutes, End: *b.EndMinutes}
}

// TenantSettings holds the per-tenant scheduling knobs.
// A missing record resolves to the defaults in constants.go.
type TenantSettings struct {
	ID       int64
	TenantID int64
	// GranularityMinutes is the step between candidate slot starts.
	GranularityMinutes int
	// LeadTimeMinutes is the minimum notice between "now" and the earliest
	// bookable slot on the current day. 0 = no lead time.
	LeadTimeMinutes int
	// AdvanceBookingDays limits how far ahead a booking may be made. 0 = unlimited.
	AdvanceBookingDays int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasAdvanceBookingLimit returns true if bookings are limited to a horizon
func (s *TenantSettings) HasAdvanceBookingLimit() bool {
	return s.AdvanceBookingDays > 0
}

// DefaultTenantSettings returns the settings used when a tenant has none stored
func DefaultTenantSettings(tenantID int64) *TenantSettings {
	return &TenantSettings{
		TenantID:           tenantID,
		GranularityMinutes: DefaultGranularityMinutes,
		LeadTimeMinutes:    DefaultLeadTimeMinutes,
		AdvanceBookingDays: DefaultAdvanceBookingDays,
	}
}
