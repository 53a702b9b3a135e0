// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl345

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// ErrTimeout is returned when a transaction does not complete within the
// timeout given to it.
var ErrTimeout = errors.New("transaction timeout")

// Transport is the register level access the driver needs from the bus.
//
// Each call carries its own timeout. A timeout <= 0 means the call is
// unbounded.
type Transport interface {
	// ReadRegisters fills b with len(b) bytes starting at reg.
	ReadRegisters(reg byte, b []byte, timeout time.Duration) error
	// WriteRegisters writes b starting at reg in one transaction.
	WriteRegisters(reg byte, b []byte, timeout time.Duration) error
	// Ready probes the device once.
	Ready(timeout time.Duration) error
	String() string
}

// withTimeout runs tx against a private buffer of n bytes. The buffer is
// handed back only if tx returned before the timeout, so a late transfer
// never writes into memory owned by the caller.
//
// busy holds one token per transfer on the bus. A transfer abandoned on
// timeout keeps it until the bus returns, so later calls wait for it instead
// of overlapping, and give up without starting a transfer if it does not come
// back in time.
func withTimeout(busy chan struct{}, n int, timeout time.Duration, tx func(r []byte) error) ([]byte, error) {
	r := make([]byte, n)
	if timeout <= 0 {
		busy <- struct{}{}
		defer func() { <-busy }()
		return r, tx(r)
	}
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case busy <- struct{}{}:
	case <-t.C:
		return nil, fmt.Errorf("%w after %s", ErrTimeout, timeout)
	}
	done := make(chan error, 1)
	go func() {
		defer func() { <-busy }()
		done <- tx(r)
	}()
	select {
	case err := <-done:
		return r, err
	case <-t.C:
		return nil, fmt.Errorf("%w after %s", ErrTimeout, timeout)
	}
}

// I2CTransport talks to the device over I²C. The register address is sent
// first and the device auto-increments for multi-byte accesses.
type I2CTransport struct {
	d    *i2c.Dev
	busy chan struct{}
}

// NewI2CTransport returns a Transport for the device at addr on b.
func NewI2CTransport(b i2c.Bus, addr uint16) *I2CTransport {
	return &I2CTransport{d: &i2c.Dev{Bus: b, Addr: addr}, busy: make(chan struct{}, 1)}
}

func (t *I2CTransport) ReadRegisters(reg byte, b []byte, timeout time.Duration) error {
	r, err := withTimeout(t.busy, len(b), timeout, func(r []byte) error {
		return t.d.Tx([]byte{reg}, r)
	})
	if err != nil {
		return err
	}
	copy(b, r)
	return nil
}

func (t *I2CTransport) WriteRegisters(reg byte, b []byte, timeout time.Duration) error {
	w := make([]byte, 0, len(b)+1)
	w = append(w, reg)
	w = append(w, b...)
	_, err := withTimeout(t.busy, 0, timeout, func([]byte) error {
		return t.d.Tx(w, nil)
	})
	return err
}

// Ready does a single byte read, which fails when nobody acknowledges the
// address.
func (t *I2CTransport) Ready(timeout time.Duration) error {
	_, err := withTimeout(t.busy, 1, timeout, func(r []byte) error {
		return t.d.Tx(nil, r)
	})
	return err
}

func (t *I2CTransport) String() string {
	return t.d.String()
}

// SPI settings used by NewSPITransport.
var (
	SpiFrequency = physic.KiloHertz * 50
	SpiMode      = spi.Mode3 // Defines the base clock signal, along with the polarity and phase of the data signal.
	SpiBits      = 8
)

const (
	spiRead      = 0x80
	spiMultiByte = 0x40
)

// SPITransport talks to the device over 4-wire SPI.
type SPITransport struct {
	c    spi.Conn
	busy chan struct{}
}

// NewSPITransport connects p with SpiFrequency, SpiMode and SpiBits.
func NewSPITransport(p spi.Port) (*SPITransport, error) {
	c, err := p.Connect(SpiFrequency, SpiMode, SpiBits)
	if err != nil {
		return nil, fmt.Errorf("adxl345: %w", err)
	}
	return &SPITransport{c: c, busy: make(chan struct{}, 1)}, nil
}

// ReadRegisters sends the address byte with bit 7 set to indicate a read,
// and bit 6 set when more than one byte follows. The first received byte is
// clocked out while the address is sent and is dropped.
func (t *SPITransport) ReadRegisters(reg byte, b []byte, timeout time.Duration) error {
	tx := make([]byte, len(b)+1)
	tx[0] = reg | spiRead
	if len(b) > 1 {
		tx[0] |= spiMultiByte
	}
	rx, err := withTimeout(t.busy, len(tx), timeout, func(rx []byte) error {
		return t.c.Tx(tx, rx)
	})
	if err != nil {
		return err
	}
	copy(b, rx[1:])
	return nil
}

func (t *SPITransport) WriteRegisters(reg byte, b []byte, timeout time.Duration) error {
	tx := make([]byte, 0, len(b)+1)
	tx = append(tx, reg)
	if len(b) > 1 {
		tx[0] |= spiMultiByte
	}
	tx = append(tx, b...)
	// The device clocks back don't care bytes.
	_, err := withTimeout(t.busy, len(tx), timeout, func(rx []byte) error {
		return t.c.Tx(tx, rx)
	})
	return err
}

// Ready reads the DeviceID register. SPI has no acknowledge, so this only
// checks that the transfer goes through.
func (t *SPITransport) Ready(timeout time.Duration) error {
	var id [1]byte
	return t.ReadRegisters(DeviceID, id[:], timeout)
}

func (t *SPITransport) String() string {
	return t.c.String()
}

// Serialize returns a Transport that runs one transaction at a time. Use it
// when the same device is reached from more than one goroutine.
func Serialize(t Transport) Transport {
	return &serialized{t: t}
}

type serialized struct {
	mu sync.Mutex
	t  Transport
}

func (s *serialized) ReadRegisters(reg byte, b []byte, timeout time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.ReadRegisters(reg, b, timeout)
}

func (s *serialized) WriteRegisters(reg byte, b []byte, timeout time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.WriteRegisters(reg, b, timeout)
}

func (s *serialized) Ready(timeout time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.Ready(timeout)
}

func (s *serialized) String() string {
	return s.t.String()
}

var _ Transport = &I2CTransport{}
var _ Transport = &SPITransport{}
