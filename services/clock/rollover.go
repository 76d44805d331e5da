// services/clock/rollover.go
package clock

// Flags are the cascading rollover events for one tick. Each flag means
// that unit itself wrapped: Hundredth is 99→00 (one second elapsed),
// Second is 59→00 (one minute elapsed), and so on up to Hour, which is
// 23→00 (midnight).
type Flags struct {
	Hundredth bool
	Second    bool
	Minute    bool
	Hour      bool
}

// Detect compares the current snapshot with the previous tick's. A
// sub-unit has rolled over when its new value is numerically below the
// old one. The checks cascade: seconds can only roll when the hundredths
// just rolled, minutes only when the seconds did, hours only when the
// minutes did, so each comparison is skipped unless the flag below it
// fired. The short circuit is not just an optimisation — it stops a
// mid-cycle decrease (e.g. the time being set backwards) from
// registering as a spurious hour roll.
func Detect(cur, prev Snapshot) Flags {
	var f Flags
	f.Hundredth = cur.Hundredths < prev.Hundredths
	if f.Hundredth {
		f.Second = cur.Seconds < prev.Seconds
	}
	if f.Second {
		f.Minute = cur.Minutes < prev.Minutes
	}
	if f.Minute {
		f.Hour = cur.Hours < prev.Hours
	}
	return f
}
