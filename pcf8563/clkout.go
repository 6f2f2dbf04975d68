package pcf8563

// ClkoutFrequency is the frequency of the square wave on the open-drain CLKOUT pin.
type ClkoutFrequency uint8

const (
	Clkout32768Hz ClkoutFrequency = iota // power-on default
	Clkout1024Hz
	Clkout32Hz
	Clkout1Hz
)

var clkoutEnable = flag{reg: ClkoutControl, mask: FlagFE}

// SetClkoutFrequency sets the clock output frequency, keeping the output enabled or disabled as it was.
func (d *Device) SetClkoutFrequency(freq ClkoutFrequency) error {
	if freq > Clkout1Hz {
		return ErrInvalidInput
	}
	return d.updateBits(ClkoutControl, maskFreq, uint8(freq))
}

func (d *Device) ClkoutFrequency() (ClkoutFrequency, error) {
	val, err := d.readRegister(ClkoutControl)
	return ClkoutFrequency(val & maskFreq), err
}

// EnableClkout starts the clock output. It is enabled after power-on.
func (d *Device) EnableClkout() error {
	return d.enable(clkoutEnable)
}

// DisableClkout sets the CLKOUT pin to high impedance.
func (d *Device) DisableClkout() error {
	return d.disable(clkoutEnable)
}

func (d *Device) ClkoutEnabled() (bool, error) {
	return d.enabled(clkoutEnable)
}
