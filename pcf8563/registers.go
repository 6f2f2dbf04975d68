package pcf8563

const Address = 0x51 // I2C address for PCF8563

// Registers
const (
	ControlStatus1 = 0x00 // Control and status register 1
	ControlStatus2 = 0x01 // Control and status register 2
	VLSeconds      = 0x02 // Seconds, also holds the voltage-low flag
	Minutes        = 0x03
	Hours          = 0x04
	Days           = 0x05
	Weekdays       = 0x06
	CenturyMonths  = 0x07 // Months, also holds the century flag
	Years          = 0x08
	MinuteAlarm    = 0x09
	HourAlarm      = 0x0A
	DayAlarm       = 0x0B
	WeekdayAlarm   = 0x0C
	ClkoutControl  = 0x0D // CLKOUT enable and frequency
	TimerControl   = 0x0E // Timer enable and source clock frequency
	Timer          = 0x0F // Timer countdown value
)

// Bit flags in ControlStatus1
const (
	FlagTest1 = 0b1000_0000 // external clock test mode
	FlagStop  = 0b0010_0000 // clock stopped
	FlagTestC = 0b0000_1000 // power-on reset override
)

// Bit flags in ControlStatus2
const (
	FlagTITP = 0b0001_0000 // timer interrupt pulses instead of following TF
	FlagAF   = 0b0000_1000 // alarm flag
	FlagTF   = 0b0000_0100 // timer flag
	FlagAIE  = 0b0000_0010 // alarm interrupt enable
	FlagTIE  = 0b0000_0001 // timer interrupt enable
)

// Bit flags sharing bit 7 of data registers
const (
	FlagVL = 0b1000_0000 // voltage low, in VLSeconds
	FlagC  = 0b1000_0000 // century, in CenturyMonths
	FlagAE = 0b1000_0000 // alarm disable, in each of the four alarm registers
	FlagFE = 0b1000_0000 // clock output enable, in ClkoutControl
	FlagTE = 0b1000_0000 // timer enable, in TimerControl
)

// Masks isolating the BCD digits of each time register.
const (
	maskSeconds  = 0x7F
	maskMinutes  = 0x7F
	maskHours    = 0x3F
	maskDays     = 0x3F
	maskWeekdays = 0x07
	maskMonths   = 0x1F
	maskFreq     = 0x03
)
