// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl345

import (
	"encoding/binary"
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/spi"
)

// I²C addresses. The device answers on AlternateAddress when SDO is pulled
// high.
const (
	DefaultAddress   uint16 = 0x53
	AlternateAddress uint16 = 0x1D
)

// Sensitivity is the scale factor in g/LSB applied to raw samples.
const Sensitivity = 0.0078

const (
	writeTimeout    = 100 * time.Millisecond
	registerTimeout = 100 * time.Millisecond
	sampleTimeout   = 10 * time.Millisecond
)

// DebugF the debug function type.
type DebugF func(string, ...interface{})

func noop(string, ...interface{}) {}

// Opts holds the configuration options for the device.
type Opts struct {
	// StartupDelay is waited by Init before probing the bus.
	StartupDelay time.Duration
	// ProbeTimeout bounds the presence probe done by Init.
	ProbeTimeout time.Duration
	// LiteralIDCheck makes Init reject a device reporting ExpectedDeviceID,
	// like the firmware this driver replaces did. Leave false to reject
	// anything but ExpectedDeviceID.
	LiteralIDCheck bool
	// Debug receives a trace of failed transactions. Default is no output.
	Debug DebugF
}

// DefaultOpts holds the default configuration options for the device.
var DefaultOpts = Opts{
	StartupDelay: 10 * time.Millisecond,
	ProbeTimeout: 20 * time.Second,
}

// Acceleration is a sample in g.
type Acceleration struct {
	X float64
	Y float64
	Z float64
}

// String returns a string representation of the Acceleration
func (a Acceleration) String() string {
	return fmt.Sprintf("X:%.4fg Y:%.4fg Z:%.4fg", a.X, a.Y, a.Z)
}

// Raw is an unscaled sample as found in the data registers.
type Raw struct {
	X int16
	Y int16
	Z int16
}

// Acceleration scales r by Sensitivity.
func (r Raw) Acceleration() Acceleration {
	return Acceleration{
		X: float64(r.X) * Sensitivity,
		Y: float64(r.Y) * Sensitivity,
		Z: float64(r.Z) * Sensitivity,
	}
}

func (r Raw) String() string {
	return fmt.Sprintf("X:%d Y:%d Z:%d", r.X, r.Y, r.Z)
}

// Dev is a driver for the ADXL345 accelerometer.
//
// Dev is not safe for concurrent use. Only Init reports a failure that
// callers have to act on: the other methods return the transaction error for
// diagnostics, along with whatever was decoded.
type Dev struct {
	t     Transport
	opts  Opts
	debug DebugF
}

// New returns a Dev using t. No bus traffic happens until Init or another
// method is called. The Opts can be nil.
func New(t Transport, opts *Opts) *Dev {
	if opts == nil {
		opts = &DefaultOpts
	}
	d := &Dev{t: t, opts: *opts, debug: opts.Debug}
	if d.debug == nil {
		d.debug = noop
	}
	return d
}

// NewI2C returns an initialized Dev on bus b at addr.
func NewI2C(b i2c.Bus, addr uint16, opts *Opts) (*Dev, error) {
	d := New(NewI2CTransport(b, addr), opts)
	if err := d.Init(); err != nil {
		return nil, err
	}
	return d, nil
}

// NewSPI returns an initialized Dev on SPI port p.
func NewSPI(p spi.Port, opts *Opts) (*Dev, error) {
	t, err := NewSPITransport(p)
	if err != nil {
		return nil, err
	}
	d := New(t, opts)
	if err := d.Init(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("ADXL345{%s}", d.t)
}

// Init waits for the device to power up, checks it is present and is an
// ADXL345, then resets the data format and puts it in standby.
//
// It returns a *NotReadyError when the probe fails, in which case the
// identity is not read, and an *IdentityError when the identity check
// fails. Failures writing the data format and power control are only traced.
func (d *Dev) Init() error {
	time.Sleep(d.opts.StartupDelay)

	if err := d.t.Ready(d.opts.ProbeTimeout); err != nil {
		d.debug("adxl345: probe %s: %v", d.t, err)
		return &NotReadyError{Err: err}
	}

	id, err := d.DeviceID()
	if d.rejectID(id) {
		return &IdentityError{Got: id, Expected: ExpectedDeviceID, Literal: d.opts.LiteralIDCheck, Err: err}
	}

	if err := d.SetDataFormat(0x00); err != nil {
		d.debug("adxl345: init: %v", err)
	}
	if err := d.SetSleep(true); err != nil {
		d.debug("adxl345: init: %v", err)
	}
	return nil
}

func (d *Dev) rejectID(id byte) bool {
	if d.opts.LiteralIDCheck {
		return id == ExpectedDeviceID
	}
	return id != ExpectedDeviceID
}

// DeviceID returns the content of the DeviceID register.
func (d *Dev) DeviceID() (byte, error) {
	var b [1]byte
	err := d.read(DeviceID, b[:], registerTimeout)
	return b[0], err
}

// SetSleep puts the device in standby when enabled is true, and in
// measurement mode otherwise.
func (d *Dev) SetSleep(enabled bool) error {
	v := Measure
	if enabled {
		v = standby
	}
	return d.write(PowerCtl, []byte{v}, writeTimeout)
}

// Mode returns true when the device is in measurement mode.
func (d *Dev) Mode() (bool, error) {
	var b [1]byte
	err := d.read(PowerCtl, b[:], registerTimeout)
	return b[0]&Measure != 0, err
}

// SetDataFormat writes format to the DataFormat register as is. See the
// Range0 to SelfTest bits.
func (d *Dev) SetDataFormat(format byte) error {
	return d.write(DataFormat, []byte{format}, writeTimeout)
}

// SetRange changes the range bits of DataFormat and leaves the others
// untouched. Samples are still scaled by Sensitivity.
func (d *Dev) SetRange(r Range) error {
	switch r {
	case S2G, S4G, S8G, S16G:
	default:
		return fmt.Errorf("adxl345: invalid range: %d. Valid values are S2G, S4G, S8G, S16G", r)
	}
	var b [1]byte
	if err := d.read(DataFormat, b[:], registerTimeout); err != nil {
		return err
	}
	return d.SetDataFormat(b[0]&^rangeMask | byte(r))
}

// SetRate sets the output data rate, optionally OR'ed with LowPower.
func (d *Dev) SetRate(r Rate) error {
	return d.write(BwRate, []byte{byte(r)}, writeTimeout)
}

// Sense reads the three axes in one transaction and overwrites a.
func (d *Dev) Sense(a *Acceleration) error {
	var r Raw
	err := d.SenseRaw(&r)
	*a = r.Acceleration()
	return err
}

// Position returns the current acceleration.
func (d *Dev) Position() (Acceleration, error) {
	var a Acceleration
	err := d.Sense(&a)
	return a, err
}

// SenseRaw reads DataX0 to DataZ1 in one transaction and overwrites r with
// the unscaled values.
func (d *Dev) SenseRaw(r *Raw) error {
	var b [6]byte
	err := d.read(DataX0, b[:], sampleTimeout)
	r.X = decode(b[0:2])
	r.Y = decode(b[2:4])
	r.Z = decode(b[4:6])
	return err
}

// AxisRaw reads the data register pair starting at reg, one of DataX0,
// DataY0 or DataZ0.
func (d *Dev) AxisRaw(reg byte) (int16, error) {
	var b [2]byte
	err := d.read(reg, b[:], sampleTimeout)
	return decode(b[:]), err
}

// Halt puts the device in standby. Implements conn.Resource.
func (d *Dev) Halt() error {
	return d.SetSleep(true)
}

// decode combines a low and high byte into a signed 16 bit value.
func decode(b []byte) int16 {
	return int16(binary.LittleEndian.Uint16(b))
}

func (d *Dev) read(reg byte, b []byte, timeout time.Duration) error {
	if err := d.t.ReadRegisters(reg, b, timeout); err != nil {
		d.debug("adxl345: read %#x (%d bytes): %v", reg, len(b), err)
		return fmt.Errorf("adxl345: read register %#x: %w", reg, err)
	}
	return nil
}

func (d *Dev) write(reg byte, b []byte, timeout time.Duration) error {
	if err := d.t.WriteRegisters(reg, b, timeout); err != nil {
		d.debug("adxl345: write %#x %#v: %v", reg, b, err)
		return fmt.Errorf("adxl345: write register %#x: %w", reg, err)
	}
	return nil
}

var _ conn.Resource = &Dev{}
