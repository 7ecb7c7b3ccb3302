package domain

import "time"

// TimePeriod is a fixed payroll window. Periods are owned by the registry:
// the engine only ever reads them, never writes.
type TimePeriod struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Label        string    `json:"period_name" bson:"period_name"`
	StartDate    time.Time `json:"start_date" bson:"-"`
	EndDate      time.Time `json:"end_date" bson:"-"`
	DeadlineDate time.Time `json:"deadline_date" bson:"-"`
	PaydayDate   time.Time `json:"payday_date" bson:"-"`
	Year         int       `json:"year" bson:"year"`
	Sequence     int       `json:"period_number" bson:"period_number"`
}

// Contains reports whether d falls within [StartDate, EndDate] inclusive.
// Comparison is at day granularity; callers pass dates normalised to UTC midnight.
func (p *TimePeriod) Contains(d time.Time) bool {
	return !d.Before(p.StartDate) && !d.After(p.EndDate)
}

// DeadlinePassed reports whether the submission deadline is behind today.
func (p *TimePeriod) DeadlinePassed(today time.Time) bool {
	return today.After(p.DeadlineDate)
}
