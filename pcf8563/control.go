package pcf8563

// the STOP bit halts the clock when set
var clockRunning = flag{reg: ControlStatus1, mask: FlagStop, activeLow: true}

// Init puts the chip in a known state: both control registers zeroed (clock running, all interrupts and test modes
// off), the voltage-low flag cleared, all alarm components disabled, and the timer switched to its lowest power
// frequency. Date and time are left alone.
func (d *Device) Init() error {
	err := d.writeRegister(ControlStatus1, 0)
	if err != nil {
		return err
	}
	err = d.writeRegister(ControlStatus2, 0)
	if err != nil {
		return err
	}
	err = d.ClearVoltageLow()
	if err != nil {
		return err
	}
	err = d.DisableAllAlarms()
	if err != nil {
		return err
	}
	return d.SetTimerFrequency(Timer1_60Hz)
}

// StartClock resumes the time counters.
func (d *Device) StartClock() error {
	return d.enable(clockRunning)
}

// StopClock halts the time counters and resets the prescaler, so that the next StartClock begins a full second.
func (d *Device) StopClock() error {
	return d.disable(clockRunning)
}

func (d *Device) ClockRunning() (bool, error) {
	return d.enabled(clockRunning)
}

// VoltageLow reports whether the supply dropped low enough for the time to be unreliable. The flag stays set until
// cleared, or until the time is written.
func (d *Device) VoltageLow() (bool, error) {
	return d.isBitSet(VLSeconds, FlagVL)
}

func (d *Device) ClearVoltageLow() error {
	return d.clearBits(VLSeconds, FlagVL)
}

// SetExternalClockTestMode switches the EXT_CLK test mode on or off. Keep it off in normal operation.
func (d *Device) SetExternalClockTestMode(on bool) error {
	return d.control(flag{reg: ControlStatus1, mask: FlagTest1}, on)
}

// SetPowerOnResetOverride switches the power-on reset override on or off. Keep it off in normal operation.
func (d *Device) SetPowerOnResetOverride(on bool) error {
	return d.control(flag{reg: ControlStatus1, mask: FlagTestC}, on)
}
