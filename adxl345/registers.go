// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl345

const (
	DeviceID = 0x00 // Device ID, expected to be 0xE5 when using ADXL345

	// 0x01 to 0x1C are reserved.

	ThreshTap    = 0x1D // Tap threshold
	OfsX         = 0x1E // X-axis offset
	OfsY         = 0x1F // Y-axis offset
	OfsZ         = 0x20 // Z-axis offset
	Dur          = 0x21 // Tap duration
	Latent       = 0x22 // Tap latency
	Window       = 0x23 // Tap window
	ThreshAct    = 0x24 // Activity threshold
	ThreshInact  = 0x25 // Inactivity threshold
	TimeInact    = 0x26 // Inactivity time
	ActInactCtl  = 0x27 // Axis control for activity/inactivity detection
	ThreshFf     = 0x28 // Free-fall threshold
	TimeFf       = 0x29 // Free-fall time
	TapAxes      = 0x2A // Axis control for single tap/double tap
	ActTapStatus = 0x2B // Source of single tap/double tap

	// Control registers

	BwRate     = 0x2C // Data rate and power mode control
	PowerCtl   = 0x2D // Power saving features control
	IntEnable  = 0x2E // Interrupt enable control
	IntMap     = 0x2F // Interrupt mapping control
	IntSource  = 0x30 // Source of interrupts
	DataFormat = 0x31 // Data format control

	// Data registers
	DataX0 = 0x32 // X-Axis Data 0
	DataX1 = 0x33 // X-Axis Data 1
	DataY0 = 0x34 // Y-Axis Data 0
	DataY1 = 0x35 // Y-Axis Data 1
	DataZ0 = 0x36 // Z-Axis Data 0
	DataZ1 = 0x37 // Z-Axis Data 1

	// FIFO control
	FifoCtl    = 0x38 // FIFO control
	FifoStatus = 0x39 // FIFO status
)

// ExpectedDeviceID is the fixed content of the DeviceID register.
const ExpectedDeviceID byte = 0xE5

// PowerCtl bits.
const (
	Wakeup0 byte = 1 << 0 // Wake up frequency, bit 0
	Wakeup1 byte = 1 << 1 // Wake up frequency, bit 1
	Sleep   byte = 1 << 2 // Sleep mode
	Measure byte = 1 << 3 // Measurement mode
	AutoSlp byte = 1 << 4 // Auto sleep
	LinkBit byte = 1 << 5 // Link activity and inactivity
)

const (
	standby   byte = 0x00
	rangeMask byte = Range0 | Range1
)

// IntEnable, IntMap and IntSource bits.
const (
	Overrun    byte = 1 << 0
	Watermark  byte = 1 << 1
	FreeFall   byte = 1 << 2
	Inactivity byte = 1 << 3
	Activity   byte = 1 << 4
	DoubleTap  byte = 1 << 5
	SingleTap  byte = 1 << 6
	DataReady  byte = 1 << 7
)

// DataFormat bits.
const (
	Range0    byte = 1 << 0
	Range1    byte = 1 << 1
	Justify   byte = 1 << 2 // Left justified (MSB) mode
	FullRes   byte = 1 << 3 // Full resolution mode
	IntInvert byte = 1 << 5 // Interrupts active low
	SPI3Wire  byte = 1 << 6 // 3-wire SPI mode
	SelfTest  byte = 1 << 7 // Apply self-test force
)

// Range is the g range selected by the two low bits of DataFormat.
type Range byte

const (
	S2G  Range = 0x00 // ±2g
	S4G  Range = 0x01 // ±4g
	S8G  Range = 0x02 // ±8g
	S16G Range = 0x03 // ±16g
)

func (r Range) String() string {
	switch r {
	case S2G:
		return "±2g"
	case S4G:
		return "±4g"
	case S8G:
		return "±8g"
	case S16G:
		return "±16g"
	}
	return "invalid"
}

// Rate is the output data rate code written to BwRate.
type Rate byte

const (
	Rate3200Hz Rate = 0x0F
	Rate1600Hz Rate = 0x0E
	Rate800Hz  Rate = 0x0D
	Rate400Hz  Rate = 0x0C
	Rate200Hz  Rate = 0x0B
	Rate100Hz  Rate = 0x0A // Power on default
	Rate50Hz   Rate = 0x09
	Rate25Hz   Rate = 0x08

	// LowPower is OR'ed with a rate to select reduced power operation.
	LowPower Rate = 1 << 4
)
