package main

import (
	"fmt"
	"log/slog"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
	"tinygo.org/x/drivers"
)

// periphBus adapts a periph.io I2C bus to drivers.I2C.
type periphBus struct {
	i2c.BusCloser
}

func (b periphBus) ReadRegister(addr uint8, r uint8, buf []byte) error {
	return b.Tx(uint16(addr), []byte{r}, buf)
}

func (b periphBus) WriteRegister(addr uint8, r uint8, buf []byte) error {
	return b.Tx(uint16(addr), append([]byte{r}, buf...), nil)
}

// openBus opens the named I2C bus, or the first one available if name is empty.
func openBus(name string) (periphBus, error) {
	if _, err := host.Init(); err != nil {
		return periphBus{}, fmt.Errorf("could not initialize host drivers: %w", err)
	}
	bus, err := i2creg.Open(name)
	if err != nil {
		return periphBus{}, fmt.Errorf("could not open I2C bus %q: %w", name, err)
	}
	return periphBus{bus}, nil
}

// tracingBus logs every transaction at debug level.
type tracingBus struct {
	drivers.I2C
	log *slog.Logger
}

func (b tracingBus) Tx(addr uint16, w, r []byte) error {
	err := b.I2C.Tx(addr, w, r)
	b.log.Debug("i2c tx",
		slog.String("addr", fmt.Sprintf("0x%02X", addr)),
		slog.String("w", fmt.Sprintf("% X", w)),
		slog.String("r", fmt.Sprintf("% X", r)),
		slog.Any("err", err),
	)
	return err
}
