package pcf8563

import (
	"time"
)

// DateTime holds the seven date and time registers.
type DateTime struct {
	Year    uint8 // 0-99
	Month   uint8 // 1-12
	Weekday uint8 // 0-6
	Day     uint8 // 1-31
	Hours   uint8 // 0-23
	Minutes uint8 // 0-59
	Seconds uint8 // 0-59
}

// Validate returns ErrInvalidInput if any field is out of range.
func (dt DateTime) Validate() error {
	if dt.Year > 99 ||
		dt.Month < 1 || dt.Month > 12 ||
		dt.Weekday > 6 ||
		dt.Day < 1 || dt.Day > 31 {
		return ErrInvalidInput
	}
	return Time{Hours: dt.Hours, Minutes: dt.Minutes, Seconds: dt.Seconds}.Validate()
}

// Time holds only the time registers, for clocks that do not use the calendar.
type Time struct {
	Hours   uint8 // 0-23
	Minutes uint8 // 0-59
	Seconds uint8 // 0-59
}

// Validate returns ErrInvalidInput if any field is out of range.
func (t Time) Validate() error {
	if t.Hours > 23 || t.Minutes > 59 || t.Seconds > 59 {
		return ErrInvalidInput
	}
	return nil
}

// GetDateTime reads all seven date and time registers in a single transaction. The chip latches the counters during
// the read, so the result is one consistent instant.
func (d *Device) GetDateTime() (DateTime, error) {
	buf := [7]byte{}
	err := d.bus.Tx(Address, []byte{VLSeconds}, buf[:])
	if err != nil {
		return DateTime{}, &BusError{Op: "read", Register: VLSeconds, Err: err}
	}

	return DateTime{
		Seconds: decodeBCD(buf[0] & maskSeconds),
		Minutes: decodeBCD(buf[1] & maskMinutes),
		Hours:   decodeBCD(buf[2] & maskHours),
		Day:     decodeBCD(buf[3] & maskDays),
		Weekday: decodeBCD(buf[4] & maskWeekdays),
		Month:   decodeBCD(buf[5] & maskMonths),
		Year:    decodeBCD(buf[6]),
	}, nil
}

// SetDateTime writes all seven date and time registers in a single transaction. The write also clears the century
// flag and the voltage-low flag, since they share registers with the month and the seconds; use SetCentury afterwards
// if needed.
func (d *Device) SetDateTime(dt DateTime) error {
	if err := dt.Validate(); err != nil {
		return err
	}

	buf := []byte{
		VLSeconds,
		encodeBCD(dt.Seconds),
		encodeBCD(dt.Minutes),
		encodeBCD(dt.Hours),
		encodeBCD(dt.Day),
		encodeBCD(dt.Weekday),
		encodeBCD(dt.Month),
		encodeBCD(dt.Year),
	}
	err := d.bus.Tx(Address, buf, nil)
	if err != nil {
		return &BusError{Op: "write", Register: VLSeconds, Err: err}
	}
	return nil
}

// SetTime writes the seconds, minutes and hours registers only, leaving the date untouched.
func (d *Device) SetTime(t Time) error {
	if err := t.Validate(); err != nil {
		return err
	}

	buf := []byte{
		VLSeconds,
		encodeBCD(t.Seconds),
		encodeBCD(t.Minutes),
		encodeBCD(t.Hours),
	}
	err := d.bus.Tx(Address, buf, nil)
	if err != nil {
		return &BusError{Op: "write", Register: VLSeconds, Err: err}
	}
	return nil
}

// Century reads the century flag: 0 for century N, 1 for century N+1. The chip toggles it when the year wraps from
// 99 to 00.
func (d *Device) Century() (uint8, error) {
	set, err := d.isBitSet(CenturyMonths, FlagC)
	if err != nil {
		return 0, err
	}
	if set {
		return 1, nil
	}
	return 0, nil
}

// SetCentury sets the century flag to 0 or 1, keeping the month.
func (d *Device) SetCentury(century uint8) error {
	switch century {
	case 0:
		return d.clearBits(CenturyMonths, FlagC)
	case 1:
		return d.setBits(CenturyMonths, FlagC)
	default:
		return ErrInvalidInput
	}
}

// Now reads the current time. Years are mapped to 2000-2099 with the century flag cleared, and to 2100-2199 with it
// set.
func (d *Device) Now() (time.Time, error) {
	dt, err := d.GetDateTime()
	if err != nil {
		return time.Time{}, err
	}
	century, err := d.Century()
	if err != nil {
		return time.Time{}, err
	}

	year := 2000 + 100*int(century) + int(dt.Year)
	return time.Date(year, time.Month(dt.Month), int(dt.Day), int(dt.Hours), int(dt.Minutes), int(dt.Seconds), 0,
		time.UTC), nil
}

// Set writes t, converted to UTC, to the clock. Only years 2000-2199 can be represented.
func (d *Device) Set(t time.Time) error {
	t = t.UTC()
	if t.Year() < 2000 || t.Year() > 2199 {
		return ErrInvalidInput
	}

	err := d.SetDateTime(DateTime{
		Year:    uint8(t.Year() % 100),
		Month:   uint8(t.Month()),
		Weekday: uint8(t.Weekday()),
		Day:     uint8(t.Day()),
		Hours:   uint8(t.Hour()),
		Minutes: uint8(t.Minute()),
		Seconds: uint8(t.Second()),
	})
	if err != nil {
		return err
	}
	return d.SetCentury(uint8((t.Year() - 2000) / 100))
}
