package customer

import (
	"encoding/json"
	"strings"

	"github.com/juju/errors"
)

// Weekdays lists the delivery-day tokens in calendar order.
var Weekdays = [7]string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func weekdayIndex(day string) (int, bool) {
	day = strings.ToLower(strings.TrimSpace(day))
	for i, d := range Weekdays {
		if d == day {
			return i, true
		}
	}
	return 0, false
}

// DeliveryDays is the set of weekdays a store accepts deliveries on. It
// encodes as a list in calendar order regardless of the order days were
// picked in.
type DeliveryDays [7]bool

// DaysOf returns the set holding days.
func DaysOf(days ...string) (DeliveryDays, error) {
	var dd DeliveryDays
	for _, day := range days {
		i, ok := weekdayIndex(day)
		if !ok {
			return DeliveryDays{}, errors.NotValidf("delivery day %q", day)
		}
		dd[i] = true
	}
	return dd, nil
}

// Toggle adds day to the set when absent and removes it when present.
func (dd *DeliveryDays) Toggle(day string) error {
	i, ok := weekdayIndex(day)
	if !ok {
		return errors.NotValidf("delivery day %q", day)
	}
	(*dd)[i] = !(*dd)[i]
	return nil
}

// Has reports whether day is in the set.
func (dd DeliveryDays) Has(day string) bool {
	i, ok := weekdayIndex(day)
	return ok && dd[i]
}

// Len returns the number of days in the set.
func (dd DeliveryDays) Len() int {
	n := 0
	for _, on := range dd {
		if on {
			n++
		}
	}
	return n
}

// Days returns the days in calendar order.
func (dd DeliveryDays) Days() []string {
	days := make([]string, 0, 7)
	for i, on := range dd {
		if on {
			days = append(days, Weekdays[i])
		}
	}
	return days
}

func (dd DeliveryDays) MarshalJSON() ([]byte, error) { return json.Marshal(dd.Days()) }

func (dd *DeliveryDays) UnmarshalJSON(data []byte) error {
	var days []string
	if err := json.Unmarshal(data, &days); err != nil {
		return err
	}
	parsed, err := DaysOf(days...)
	if err != nil {
		return err
	}
	*dd = parsed
	return nil
}
