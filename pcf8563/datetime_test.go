package pcf8563

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

func TestSetDateTime(t *testing.T) {
	c := qt.New(t)
	bus := newFakeBus(c)
	dev := New(bus)

	err := dev.SetDateTime(DateTime{Year: 21, Month: 4, Weekday: 0, Day: 4, Hours: 7, Minutes: 15, Seconds: 0})
	c.Assert(err, qt.IsNil)
	c.Assert(bus.txs, qt.DeepEquals, []tx{
		{W: []byte{VLSeconds, 0x00, 0x15, 0x07, 0x04, 0x00, 0x04, 0x21}},
	})
}

func TestGetDateTimeMasksFlags(t *testing.T) {
	c := qt.New(t)
	bus := newFakeBus(c)
	dev := New(bus)
	copy(bus.regs[VLSeconds:], []byte{
		FlagVL | 0x59, // voltage low
		0x80 | 0x34,   // unused bit
		0xC0 | 0x23,   // unused bits
		0xC0 | 0x31,   // unused bits
		0xF8 | 0x06,   // unused bits
		FlagC | 0x12,  // century
		0x99,
	})

	dt, err := dev.GetDateTime()
	c.Assert(err, qt.IsNil)
	c.Assert(dt, qt.Equals, DateTime{Year: 99, Month: 12, Weekday: 6, Day: 31, Hours: 23, Minutes: 34, Seconds: 59})
	c.Assert(bus.txs, qt.DeepEquals, []tx{{W: []byte{VLSeconds}, R: 7}})
}

func TestDateTimeRoundTrip(t *testing.T) {
	c := qt.New(t)
	bus := newFakeBus(c)
	dev := New(bus)

	var n int
	for year := uint8(0); year <= 99; year += 11 {
		for month := uint8(1); month <= 12; month++ {
			for seconds := uint8(0); seconds <= 59; seconds += 7 {
				n++
				want := DateTime{
					Year:    year,
					Month:   month,
					Weekday: uint8(n % 7),
					Day:     uint8(n%31 + 1),
					Hours:   uint8(n % 24),
					Minutes: uint8(n % 60),
					Seconds: seconds,
				}
				err := dev.SetDateTime(want)
				c.Assert(err, qt.IsNil)
				got, err := dev.GetDateTime()
				c.Assert(err, qt.IsNil)
				c.Assert(got, qt.Equals, want)
			}
		}
	}
}

func TestSetDateTimeInvalid(t *testing.T) {
	valid := DateTime{Year: 24, Month: 2, Weekday: 4, Day: 29, Hours: 12, Minutes: 30, Seconds: 45}
	tests := []struct {
		name   string
		modify func(*DateTime)
	}{
		{"year", func(dt *DateTime) { dt.Year = 100 }},
		{"month zero", func(dt *DateTime) { dt.Month = 0 }},
		{"month 13", func(dt *DateTime) { dt.Month = 13 }},
		{"weekday", func(dt *DateTime) { dt.Weekday = 7 }},
		{"day zero", func(dt *DateTime) { dt.Day = 0 }},
		{"day 32", func(dt *DateTime) { dt.Day = 32 }},
		{"hours", func(dt *DateTime) { dt.Hours = 24 }},
		{"minutes", func(dt *DateTime) { dt.Minutes = 60 }},
		{"seconds", func(dt *DateTime) { dt.Seconds = 60 }},
	}

	c := qt.New(t)
	c.Assert(valid.Validate(), qt.IsNil)
	for _, test := range tests {
		c.Run(test.name, func(c *qt.C) {
			bus := newFakeBus(c)
			dev := New(bus)
			dt := valid
			test.modify(&dt)

			err := dev.SetDateTime(dt)
			c.Assert(err, qt.ErrorIs, ErrInvalidInput)
			c.Assert(bus.txs, qt.HasLen, 0)
		})
	}
}

func TestSetTime(t *testing.T) {
	c := qt.New(t)
	bus := newFakeBus(c)
	dev := New(bus)
	copy(bus.regs[Days:], []byte{0x18, 0x05, 0x10, 0x26})

	err := dev.SetTime(Time{Hours: 23, Minutes: 59, Seconds: 58})
	c.Assert(err, qt.IsNil)
	c.Assert(bus.txs, qt.DeepEquals, []tx{{W: []byte{VLSeconds, 0x58, 0x59, 0x23}}})

	dt, err := dev.GetDateTime()
	c.Assert(err, qt.IsNil)
	c.Assert(dt, qt.Equals, DateTime{Year: 26, Month: 10, Weekday: 5, Day: 18, Hours: 23, Minutes: 59, Seconds: 58})

	bus.reset()
	for _, tm := range []Time{{Hours: 24}, {Minutes: 60}, {Seconds: 60}} {
		err = dev.SetTime(tm)
		c.Assert(err, qt.ErrorIs, ErrInvalidInput)
	}
	c.Assert(bus.txs, qt.HasLen, 0)
}

func TestCentury(t *testing.T) {
	c := qt.New(t)
	bus := newFakeBus(c)
	dev := New(bus)
	bus.regs[CenturyMonths] = 0x12

	century, err := dev.Century()
	c.Assert(err, qt.IsNil)
	c.Assert(century, qt.Equals, uint8(0))

	err = dev.SetCentury(1)
	c.Assert(err, qt.IsNil)
	c.Assert(bus.regs[CenturyMonths], qt.Equals, uint8(FlagC|0x12))
	century, err = dev.Century()
	c.Assert(err, qt.IsNil)
	c.Assert(century, qt.Equals, uint8(1))

	// the month is unaffected by the flag
	dt, err := dev.GetDateTime()
	c.Assert(err, qt.IsNil)
	c.Assert(dt.Month, qt.Equals, uint8(12))

	err = dev.SetCentury(0)
	c.Assert(err, qt.IsNil)
	c.Assert(bus.regs[CenturyMonths], qt.Equals, uint8(0x12))

	bus.reset()
	err = dev.SetCentury(2)
	c.Assert(err, qt.ErrorIs, ErrInvalidInput)
	c.Assert(bus.txs, qt.HasLen, 0)
}

func TestNowAndSet(t *testing.T) {
	c := qt.New(t)
	bus := newFakeBus(c)
	dev := New(bus)

	for _, want := range []time.Time{
		time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC),
		time.Date(2099, 12, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2150, 7, 14, 0, 0, 0, 0, time.UTC),
	} {
		err := dev.Set(want)
		c.Assert(err, qt.IsNil)
		got, err := dev.Now()
		c.Assert(err, qt.IsNil)
		c.Assert(got, qt.Equals, want)

		dt, err := dev.GetDateTime()
		c.Assert(err, qt.IsNil)
		c.Assert(dt.Weekday, qt.Equals, uint8(want.Weekday()))
	}

	// converted to UTC first
	loc := time.FixedZone("UTC+2", 2*60*60)
	err := dev.Set(time.Date(2030, 6, 1, 1, 30, 0, 0, loc))
	c.Assert(err, qt.IsNil)
	got, err := dev.Now()
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, time.Date(2030, 5, 31, 23, 30, 0, 0, time.UTC))

	bus.reset()
	err = dev.Set(time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC))
	c.Assert(err, qt.ErrorIs, ErrInvalidInput)
	err = dev.Set(time.Date(2200, 1, 1, 0, 0, 0, 0, time.UTC))
	c.Assert(err, qt.ErrorIs, ErrInvalidInput)
	c.Assert(bus.txs, qt.HasLen, 0)
}
