package pcf8563

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestTimer(t *testing.T) {
	c := qt.New(t)
	bus := newFakeBus(c)
	dev := New(bus)

	err := dev.SetTimer(30)
	c.Assert(err, qt.IsNil)
	v, err := dev.Timer()
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, uint8(30))

	err = dev.EnableTimer()
	c.Assert(err, qt.IsNil)
	err = dev.SetTimerFrequency(Timer1Hz)
	c.Assert(err, qt.IsNil)
	c.Assert(bus.regs[TimerControl], qt.Equals, uint8(FlagTE|0b10))
	freq, err := dev.TimerFrequency()
	c.Assert(err, qt.IsNil)
	c.Assert(freq, qt.Equals, Timer1Hz)
	on, err := dev.TimerEnabled()
	c.Assert(err, qt.IsNil)
	c.Assert(on, qt.IsTrue)

	err = dev.DisableTimer()
	c.Assert(err, qt.IsNil)
	c.Assert(bus.regs[TimerControl], qt.Equals, uint8(0b10))
	on, err = dev.TimerEnabled()
	c.Assert(err, qt.IsNil)
	c.Assert(on, qt.IsFalse)

	bus.reset()
	err = dev.SetTimerFrequency(Timer1_60Hz + 1)
	c.Assert(err, qt.ErrorIs, ErrInvalidInput)
	c.Assert(bus.txs, qt.HasLen, 0)
}

func TestTimerInterrupt(t *testing.T) {
	c := qt.New(t)
	bus := newFakeBus(c)
	dev := New(bus)
	bus.regs[ControlStatus2] = FlagTF

	err := dev.EnableTimerInterrupt()
	c.Assert(err, qt.IsNil)
	on, err := dev.TimerInterruptEnabled()
	c.Assert(err, qt.IsNil)
	c.Assert(on, qt.IsTrue)

	fired, err := dev.TimerFlag()
	c.Assert(err, qt.IsNil)
	c.Assert(fired, qt.IsTrue)
	err = dev.ClearTimerFlag()
	c.Assert(err, qt.IsNil)
	c.Assert(bus.regs[ControlStatus2], qt.Equals, uint8(FlagTIE))

	err = dev.SetInterruptOutput(InterruptPulsating)
	c.Assert(err, qt.IsNil)
	mode, err := dev.InterruptOutputMode()
	c.Assert(err, qt.IsNil)
	c.Assert(mode, qt.Equals, InterruptPulsating)
	err = dev.SetInterruptOutput(InterruptContinuous)
	c.Assert(err, qt.IsNil)
	mode, err = dev.InterruptOutputMode()
	c.Assert(err, qt.IsNil)
	c.Assert(mode, qt.Equals, InterruptContinuous)

	err = dev.DisableTimerInterrupt()
	c.Assert(err, qt.IsNil)
	c.Assert(bus.regs[ControlStatus2], qt.Equals, uint8(0))

	bus.reset()
	err = dev.SetInterruptOutput(InterruptPulsating + 1)
	c.Assert(err, qt.ErrorIs, ErrInvalidInput)
	c.Assert(bus.txs, qt.HasLen, 0)
}
