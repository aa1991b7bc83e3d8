// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/rotary_encoder/internal/as5600"
	"github.com/relabs-tech/rotary_encoder/internal/config"
)

// EncoderManager owns the I2C bus and the AS5600 handle shared by the app
// handlers. The sensor's registers remain the source of truth; the manager
// holds no mirrored configuration state.
type EncoderManager struct {
	mu  sync.Mutex
	bus i2c.BusCloser
	raw i2c.Dev // direct register access for the debug tool
	dev *as5600.Dev
}

var (
	manager     *EncoderManager
	managerOnce sync.Once
)

// GetEncoderManager returns the process-wide encoder manager.
func GetEncoderManager() *EncoderManager {
	managerOnce.Do(func() {
		manager = &EncoderManager{}
	})
	return manager
}

// Init brings up the periph host, opens the configured I2C bus and verifies
// the encoder responds. Safe to call more than once; later calls are no-ops
// once initialization succeeded.
func (m *EncoderManager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.dev != nil {
		return nil
	}

	cfg := config.Get()

	if _, err := host.Init(); err != nil {
		return fmt.Errorf("encoder: periph host init: %w", err)
	}

	bus, err := i2creg.Open(cfg.EncoderI2CBus)
	if err != nil {
		return fmt.Errorf("encoder: i2c open (%s): %w", cfg.EncoderI2CBus, err)
	}

	addr := cfg.EncoderI2CAddr
	if addr == 0 {
		addr = as5600.DefaultAddr
	}

	dev, err := as5600.New(bus, as5600.Opts{Addr: addr})
	if err != nil {
		bus.Close()
		return err
	}

	m.bus = bus
	m.raw = i2c.Dev{Addr: addr, Bus: bus}
	m.dev = dev
	return nil
}

// Device returns the driver handle, initializing on first use.
func (m *EncoderManager) Device() (*as5600.Dev, error) {
	if err := m.Init(); err != nil {
		return nil, err
	}
	return m.dev, nil
}

// Close releases the I2C bus.
func (m *EncoderManager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.bus == nil {
		return nil
	}
	err := m.bus.Close()
	m.bus = nil
	m.dev = nil
	return err
}

// ReadRegister reads one raw register byte, for the register debug tool.
func (m *EncoderManager) ReadRegister(addr byte) (byte, error) {
	if err := m.Init(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var buf [1]byte
	if err := m.raw.Tx([]byte{addr}, buf[:]); err != nil {
		return 0, fmt.Errorf("encoder: read register 0x%02X: %w", addr, err)
	}
	return buf[0], nil
}

// WriteRegister writes one raw register byte, for the register debug tool.
// Range policy is enforced by the caller, not here.
func (m *EncoderManager) WriteRegister(addr, value byte) error {
	if err := m.Init(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.raw.Tx([]byte{addr, value}, nil); err != nil {
		return fmt.Errorf("encoder: write register 0x%02X: %w", addr, err)
	}
	return nil
}

// ReadAllRegisters reads every register named in the AS5600 register map.
func (m *EncoderManager) ReadAllRegisters() (map[byte]byte, error) {
	values := make(map[byte]byte)
	for _, info := range GetAS5600RegisterMap() {
		var addr byte
		if _, err := fmt.Sscanf(info.Address, "0x%X", &addr); err != nil {
			continue
		}
		v, err := m.ReadRegister(addr)
		if err != nil {
			return nil, err
		}
		values[addr] = v
	}
	return values, nil
}

// GetRegisterMap returns the AS5600 register metadata for the debug tool.
func (m *EncoderManager) GetRegisterMap() []RegisterInfo {
	return GetAS5600RegisterMap()
}
