package pcf8563

// TimerFrequency is the source clock of the countdown timer.
type TimerFrequency uint8

const (
	Timer4096Hz TimerFrequency = iota
	Timer64Hz
	Timer1Hz
	Timer1_60Hz // lowest power, use it while the timer is off
)

// InterruptOutput selects how the timer drives the INT pin.
type InterruptOutput uint8

const (
	// InterruptContinuous keeps INT active while the timer flag is set.
	InterruptContinuous InterruptOutput = iota
	// InterruptPulsating pulses INT once per countdown, independently of the timer flag.
	InterruptPulsating
)

var (
	timerEnable    = flag{reg: TimerControl, mask: FlagTE}
	timerInterrupt = flag{reg: ControlStatus2, mask: FlagTIE}
)

// SetTimer sets the countdown value [0-255]. The countdown period is value divided by the timer frequency.
func (d *Device) SetTimer(value uint8) error {
	return d.writeRegister(Timer, value)
}

// Timer reads the current countdown value.
func (d *Device) Timer() (uint8, error) {
	return d.readRegister(Timer)
}

// SetTimerFrequency sets the timer source clock, keeping the timer enabled or disabled as it was.
func (d *Device) SetTimerFrequency(freq TimerFrequency) error {
	if freq > Timer1_60Hz {
		return ErrInvalidInput
	}
	return d.updateBits(TimerControl, maskFreq, uint8(freq))
}

func (d *Device) TimerFrequency() (TimerFrequency, error) {
	val, err := d.readRegister(TimerControl)
	return TimerFrequency(val & maskFreq), err
}

func (d *Device) EnableTimer() error {
	return d.enable(timerEnable)
}

func (d *Device) DisableTimer() error {
	return d.disable(timerEnable)
}

func (d *Device) TimerEnabled() (bool, error) {
	return d.enabled(timerEnable)
}

// EnableTimerInterrupt makes the INT pin go active when the countdown ends. The pin is shared with the alarm
// interrupt.
func (d *Device) EnableTimerInterrupt() error {
	return d.enable(timerInterrupt)
}

func (d *Device) DisableTimerInterrupt() error {
	return d.disable(timerInterrupt)
}

func (d *Device) TimerInterruptEnabled() (bool, error) {
	return d.enabled(timerInterrupt)
}

// TimerFlag reports whether the countdown has ended since the flag was last cleared.
func (d *Device) TimerFlag() (bool, error) {
	return d.isBitSet(ControlStatus2, FlagTF)
}

func (d *Device) ClearTimerFlag() error {
	return d.clearBits(ControlStatus2, FlagTF)
}

func (d *Device) SetInterruptOutput(mode InterruptOutput) error {
	switch mode {
	case InterruptContinuous:
		return d.clearBits(ControlStatus2, FlagTITP)
	case InterruptPulsating:
		return d.setBits(ControlStatus2, FlagTITP)
	default:
		return ErrInvalidInput
	}
}

func (d *Device) InterruptOutputMode() (InterruptOutput, error) {
	set, err := d.isBitSet(ControlStatus2, FlagTITP)
	if err != nil || !set {
		return InterruptContinuous, err
	}
	return InterruptPulsating, nil
}
