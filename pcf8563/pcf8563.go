// Package pcf8563 implements a driver for the PCF8563 Real-Time Clock (RTC): date and time, the four-component alarm,
// the countdown timer, the programmable clock output, and the control flags of the two status registers.
//
// Every method performs its bus transactions synchronously and returns before the next one may start. A Device must
// not be used from more than one goroutine at a time.
//
// Datasheet: https://www.nxp.com/docs/en/data-sheet/PCF8563.pdf
package pcf8563

import (
	"tinygo.org/x/drivers"
)

type Device struct {
	bus drivers.I2C
}

// New creates a new driver on the specified preconfigured I2C bus. The chip supports up to 400 kHz. The device address
// is fixed at 0x51.
func New(bus drivers.I2C) Device {
	return Device{
		bus: bus,
	}
}

// Destroy releases the bus and returns it to the caller. The Device must not be used afterwards.
func (d *Device) Destroy() drivers.I2C {
	bus := d.bus
	d.bus = nil
	return bus
}

func (d *Device) readRegister(reg uint8) (uint8, error) {
	buf := [1]byte{}
	err := d.bus.Tx(Address, []byte{reg}, buf[:])
	if err != nil {
		return 0, &BusError{Op: "read", Register: reg, Err: err}
	}
	return buf[0], nil
}

func (d *Device) writeRegister(reg, val uint8) error {
	err := d.bus.Tx(Address, []byte{reg, val}, nil)
	if err != nil {
		return &BusError{Op: "write", Register: reg, Err: err}
	}
	return nil
}

// isBitSet reports whether any of the bits in mask are set.
func (d *Device) isBitSet(reg, mask uint8) (bool, error) {
	val, err := d.readRegister(reg)
	if err != nil {
		return false, err
	}
	return val&mask != 0, nil
}

// setBits sets the bits in mask. The write is skipped when they are all set already.
func (d *Device) setBits(reg, mask uint8) error {
	val, err := d.readRegister(reg)
	if err != nil {
		return err
	}
	if val&mask == mask {
		return nil
	}
	return d.writeRegister(reg, val|mask)
}

// clearBits clears the bits in mask. The write is skipped when none of them is set.
func (d *Device) clearBits(reg, mask uint8) error {
	val, err := d.readRegister(reg)
	if err != nil {
		return err
	}
	if val&mask == 0 {
		return nil
	}
	return d.writeRegister(reg, val&^mask)
}

// updateBits replaces the bits in mask with val, keeping the rest of the register.
func (d *Device) updateBits(reg, mask, val uint8) error {
	old, err := d.readRegister(reg)
	if err != nil {
		return err
	}
	return d.writeRegister(reg, old&^mask|val&mask)
}

// flag describes a single feature bit. activeLow flags disable their feature when set, like the AE bit of the alarm
// registers.
type flag struct {
	reg       uint8
	mask      uint8
	activeLow bool
}

func (d *Device) enable(f flag) error {
	if f.activeLow {
		return d.clearBits(f.reg, f.mask)
	}
	return d.setBits(f.reg, f.mask)
}

func (d *Device) disable(f flag) error {
	if f.activeLow {
		return d.setBits(f.reg, f.mask)
	}
	return d.clearBits(f.reg, f.mask)
}

func (d *Device) enabled(f flag) (bool, error) {
	set, err := d.isBitSet(f.reg, f.mask)
	if err != nil {
		return false, err
	}
	return set != f.activeLow, nil
}

func (d *Device) control(f flag, on bool) error {
	if on {
		return d.enable(f)
	}
	return d.disable(f)
}

// decodeBCD converts BCD to decimal. Callers mask flag bits first; only the year register uses all eight bits.
func decodeBCD(bcd uint8) uint8 {
	return 10*(bcd>>4) + bcd&0x0F
}

// encodeBCD converts decimal to BCD. dec must not exceed 99.
func encodeBCD(dec uint8) uint8 {
	return (dec/10)<<4 | dec%10
}
