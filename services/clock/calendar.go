// services/clock/calendar.go
package clock

// Gregorian date, advanced once per midnight crossing. Volatile like the
// rest of the device state; the epoch is simply the value at power-on.

// daysInMonth is indexed by month-1. February is patched per year.
var daysInMonth = [12]uint8{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

type Date struct {
	Day   uint8  // 1–31
	Month uint8  // 1–12
	Year  uint16 // >= 1970
}

// NewDate returns the power-on epoch, 1 January 1970.
func NewDate() Date { return Date{Day: 1, Month: 1, Year: 1970} }

// IsLeap implements the Gregorian rule: every fourth year, except
// centuries not divisible by 400.
func IsLeap(year uint16) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth for a 1-based month.
func DaysInMonth(month uint8, year uint16) uint8 {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 2 && IsLeap(year) {
		return 29
	}
	return daysInMonth[month-1]
}

// Advance moves to the next day, carrying through month and year ends.
// Called exactly once per hour rollover flag (midnight).
func (d *Date) Advance() {
	d.Day++
	if d.Day > DaysInMonth(d.Month, d.Year) {
		d.Day = 1
		d.Month++
		if d.Month > 12 {
			d.Month = 1
			d.Year++
		}
	}
}
