package pcf8563

// AlarmComponent selects one of the four alarm registers. The alarm fires when every enabled component matches the
// current time.
type AlarmComponent uint8

const (
	AlarmMinute AlarmComponent = iota
	AlarmHour
	AlarmDay
	AlarmWeekday
)

var alarmRegisters = [...]uint8{
	AlarmMinute:  MinuteAlarm,
	AlarmHour:    HourAlarm,
	AlarmDay:     DayAlarm,
	AlarmWeekday: WeekdayAlarm,
}

var alarmInterrupt = flag{reg: ControlStatus2, mask: FlagAIE}

// the AE bit disables its component when set
func (c AlarmComponent) bit() (flag, bool) {
	if int(c) >= len(alarmRegisters) {
		return flag{}, false
	}
	return flag{reg: alarmRegisters[c], mask: FlagAE, activeLow: true}, true
}

// SetAlarmMinutes sets the alarm minutes [0-59], keeping the component enabled or disabled as it was.
func (d *Device) SetAlarmMinutes(minutes uint8) error {
	if minutes > 59 {
		return ErrInvalidInput
	}
	return d.updateBits(MinuteAlarm, ^uint8(FlagAE), encodeBCD(minutes))
}

// SetAlarmHours sets the alarm hours [0-23], keeping the component enabled or disabled as it was.
func (d *Device) SetAlarmHours(hours uint8) error {
	if hours > 23 {
		return ErrInvalidInput
	}
	return d.updateBits(HourAlarm, ^uint8(FlagAE), encodeBCD(hours))
}

// SetAlarmDay sets the alarm day of the month [1-31], keeping the component enabled or disabled as it was.
func (d *Device) SetAlarmDay(day uint8) error {
	if day < 1 || day > 31 {
		return ErrInvalidInput
	}
	return d.updateBits(DayAlarm, ^uint8(FlagAE), encodeBCD(day))
}

// SetAlarmWeekday sets the alarm weekday [0-6], keeping the component enabled or disabled as it was.
func (d *Device) SetAlarmWeekday(weekday uint8) error {
	if weekday > 6 {
		return ErrInvalidInput
	}
	return d.updateBits(WeekdayAlarm, ^uint8(FlagAE), encodeBCD(weekday))
}

func (d *Device) AlarmMinutes() (uint8, error) {
	return d.readBCD(MinuteAlarm, maskMinutes)
}

func (d *Device) AlarmHours() (uint8, error) {
	return d.readBCD(HourAlarm, maskHours)
}

func (d *Device) AlarmDay() (uint8, error) {
	return d.readBCD(DayAlarm, maskDays)
}

func (d *Device) AlarmWeekday() (uint8, error) {
	return d.readBCD(WeekdayAlarm, maskWeekdays)
}

func (d *Device) readBCD(reg, mask uint8) (uint8, error) {
	val, err := d.readRegister(reg)
	if err != nil {
		return 0, err
	}
	return decodeBCD(val & mask), nil
}

// EnableAlarm makes the component take part in alarm matching.
func (d *Device) EnableAlarm(c AlarmComponent) error {
	f, ok := c.bit()
	if !ok {
		return ErrInvalidInput
	}
	return d.enable(f)
}

// DisableAlarm excludes the component from alarm matching.
func (d *Device) DisableAlarm(c AlarmComponent) error {
	f, ok := c.bit()
	if !ok {
		return ErrInvalidInput
	}
	return d.disable(f)
}

func (d *Device) AlarmEnabled(c AlarmComponent) (bool, error) {
	f, ok := c.bit()
	if !ok {
		return false, ErrInvalidInput
	}
	return d.enabled(f)
}

// DisableAllAlarms disables the minute, hour, day and weekday components, in that order.
func (d *Device) DisableAllAlarms() error {
	for c := AlarmMinute; c <= AlarmWeekday; c++ {
		err := d.DisableAlarm(c)
		if err != nil {
			return err
		}
	}
	return nil
}

// EnableAlarmInterrupt makes the INT pin go active when the alarm flag is set.
func (d *Device) EnableAlarmInterrupt() error {
	return d.enable(alarmInterrupt)
}

func (d *Device) DisableAlarmInterrupt() error {
	return d.disable(alarmInterrupt)
}

func (d *Device) AlarmInterruptEnabled() (bool, error) {
	return d.enabled(alarmInterrupt)
}

// AlarmFlag reports whether the alarm has fired since the flag was last cleared.
func (d *Device) AlarmFlag() (bool, error) {
	return d.isBitSet(ControlStatus2, FlagAF)
}

func (d *Device) ClearAlarmFlag() error {
	return d.clearBits(ControlStatus2, FlagAF)
}
