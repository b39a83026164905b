package pricing

import (
	"time"

	"github.com/manpreet1462/bookit/internal/model"
)

const (
	isoDateLayout     = "2006-01-02"
	displayDateLayout = "Jan 2"
)

// accepted slot date formats, tried in order
var slotDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	isoDateLayout,
}

// DateOption is one selectable day: a short label and its YYYY-MM-DD key.
type DateOption struct {
	Display string `json:"display"`
	ISO     string `json:"iso"`
}

func parseSlotDate(raw string) (time.Time, bool) {
	for _, layout := range slotDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// NormalizeDate reduces a slot date to its UTC calendar day (YYYY-MM-DD),
// discarding the time of day.  ok is false when raw is not a recognised date.
func NormalizeDate(raw string) (string, bool) {
	t, ok := parseSlotDate(raw)
	if !ok {
		return "", false
	}
	return t.Format(isoDateLayout), true
}

// FilterSlotsByDate returns the slots falling on isoDate, in their original
// order.  isoDate may itself be a full timestamp; it is normalised the same
// way as the slot dates.  Slots with unparseable dates never match.
func FilterSlotsByDate(slots []model.Slot, isoDate string) []model.Slot {
	want, ok := NormalizeDate(isoDate)
	if !ok {
		want = isoDate
	}
	out := make([]model.Slot, 0, len(slots))
	if want == "" {
		return out
	}
	for _, s := range slots {
		if day, ok := NormalizeDate(s.Date); ok && day == want {
			out = append(out, s)
		}
	}
	return out
}

// UniqueDates lists each distinct slot day once, in first-seen order.
func UniqueDates(slots []model.Slot) []DateOption {
	seen := make(map[string]struct{}, len(slots))
	out := make([]DateOption, 0, len(slots))
	for _, s := range slots {
		t, ok := parseSlotDate(s.Date)
		if !ok {
			continue
		}
		iso := t.Format(isoDateLayout)
		if _, dup := seen[iso]; dup {
			continue
		}
		seen[iso] = struct{}{}
		out = append(out, DateOption{Display: t.Format(displayDateLayout), ISO: iso})
	}
	return out
}

// FirstDate is the day preselected when a detail view opens: the day of the
// first slot with a readable date, or "" when there is none.
func FirstDate(slots []model.Slot) string {
	for _, s := range slots {
		if day, ok := NormalizeDate(s.Date); ok {
			return day
		}
	}
	return ""
}
