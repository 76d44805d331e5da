// services/panel/render.go
package panel

import (
	"nixieclock-go/drivers/nixie"
	"nixieclock-go/services/clock"
	"nixieclock-go/x/conv"
	"nixieclock-go/x/mathx"
)

// Digit-position table for clock mode.
const (
	PosHundredthsLo = iota
	PosHundredthsHi
	PosSecondsLo
	PosSecondsHi
	PosMinutesLo
	PosMinutesHi
	PosHoursLo
	PosHoursHi
)

// Render draws the active mode onto the digit bank. A pending mode
// change forces a full redraw; otherwise each mode repaints only what
// moved this tick.
func (p *Panel) Render(d *nixie.Display, cur clock.Snapshot, f clock.Flags, date clock.Date) error {
	changed := p.modeChanged
	p.modeChanged = false

	switch p.mode {
	case ModeClock:
		if changed {
			return drawTime(d, cur)
		}
		// The hundredths pair moves every tick. Each higher pair changes
		// exactly when the unit below it wraps — the seconds tubes move
		// once per second, i.e. on the hundredths rollover — so its
		// repaint is keyed on the flag one level down.
		if err := d.SetPair(PosHundredthsLo, cur.Hundredths); err != nil {
			return err
		}
		if f.Hundredth {
			if err := d.SetPair(PosSecondsLo, cur.Seconds); err != nil {
				return err
			}
		}
		if f.Second {
			if err := d.SetPair(PosMinutesLo, cur.Minutes); err != nil {
				return err
			}
		}
		if f.Minute {
			if err := d.SetPair(PosHoursLo, cur.Hours); err != nil {
				return err
			}
		}
		return nil

	case ModeCalendar:
		// The date only moves at midnight.
		if changed || f.Hour {
			return drawDate(d, date)
		}
		return nil

	case ModeCalculator:
		if changed || p.dirty {
			p.dirty = false
			return drawCalc(d, p)
		}
		return nil
	}
	return nil
}

func drawTime(d *nixie.Display, cur clock.Snapshot) error {
	if err := d.SetPair(PosHundredthsLo, cur.Hundredths); err != nil {
		return err
	}
	if err := d.SetPair(PosSecondsLo, cur.Seconds); err != nil {
		return err
	}
	if err := d.SetPair(PosMinutesLo, cur.Minutes); err != nil {
		return err
	}
	return d.SetPair(PosHoursLo, cur.Hours)
}

// drawDate lays the date out as YYYY on positions 0–3, MM on 4–5 and DD
// on 6–7, so day and month land on the same tubes as hours and minutes.
func drawDate(d *nixie.Display, date clock.Date) error {
	var digits [nixie.Positions]uint8
	conv.FillDigits(digits[0:4], uint32(date.Year))
	digits[4] = date.Month % 10
	digits[5] = date.Month / 10
	digits[6] = date.Day % 10
	digits[7] = date.Day / 10
	return d.SetAll(digits)
}

// drawCalc shows the value being entered, or the running result. The
// tubes have no sign or blanking, so negative values show as magnitude
// and a latched error shows as all nines.
func drawCalc(d *nixie.Display, p *Panel) error {
	var digits [nixie.Positions]uint8
	if p.calc.Err() != "" {
		for i := range digits {
			digits[i] = 9
		}
		return d.SetAll(digits)
	}
	conv.FillDigits(digits[:], uint32(mathx.Abs(p.calc.DisplayValue())))
	return d.SetAll(digits)
}
