// Package models defines client-side data models used by the timecard CLI.
package models

// Day is a single row of a timecard.
//
// Day holds the positional label ("1st Day"), which is re-derived whenever the
// list changes shape. HoursWorked is computed by the remote service and is
// never edited locally.
type Day struct {
	Day         string `json:"day"`
	TimeIn      string `json:"time_in"`
	TimeOut     string `json:"time_out"`
	HoursWorked string `json:"hours_worked,omitempty"`
}

// Timecard is one worker's set of day entries plus the service-computed total.
type Timecard struct {
	Name             string `json:"name"`
	Days             []Day  `json:"days"`
	TotalHoursWorked string `json:"total_hours_worked"`
}

// Clone returns a deep copy of t.
func (t Timecard) Clone() Timecard {
	t.Days = CloneDays(t.Days)
	return t
}

// EditResult is the recalculation response. It replaces the local days and
// total of the edited card as a whole.
type EditResult struct {
	Entries          []Day  `json:"entries"`
	TotalHoursWorked string `json:"total_hours_worked"`
}

// EditRequestDay is the wire shape of a day submitted for recalculation.
type EditRequestDay struct {
	Day     string `json:"day"`
	TimeIn  string `json:"time_in"`
	TimeOut string `json:"time_out"`
}

// BlankDay returns an entry with empty clock fields. Its label is assigned by
// the day list on insertion.
func BlankDay() Day {
	return Day{}
}

// CloneDays copies a slice of days. A nil input yields nil.
func CloneDays(days []Day) []Day {
	if days == nil {
		return nil
	}
	out := make([]Day, len(days))
	copy(out, days)
	return out
}

// CloneTimecards deep-copies a slice of timecards.
func CloneTimecards(cards []Timecard) []Timecard {
	if cards == nil {
		return nil
	}
	out := make([]Timecard, len(cards))
	for i, c := range cards {
		out[i] = c.Clone()
	}
	return out
}
