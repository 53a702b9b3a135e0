// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl345

import (
	"math"
	"time"
)

// CalibrationSamples is the number of raw reads averaged per axis.
const CalibrationSamples = 100

// calibrationInterval paces the reads to the output data rate.
const calibrationInterval = time.Millisecond

// The offset registers have a 15.6 mg/LSB scale, 4 times the data registers.
const offsetScale = 4

// Offsets holds the X, Y and Z values of the OfsX, OfsY and OfsZ registers.
// The device adds them to every sample.
type Offsets [3]int8

// CalibratedAxisOffset averages CalibrationSamples reads of the data
// register pair at reg and returns the offset register value that cancels
// the average. The device must be still and measuring.
//
// This blocks for at least CalibrationSamples milliseconds. A failed read
// does not stop the loop; the first error is returned with the result.
func (d *Dev) CalibratedAxisOffset(reg byte) (int8, error) {
	var first error
	sum := int64(0)
	for i := 0; i < CalibrationSamples; i++ {
		v, err := d.AxisRaw(reg)
		if err != nil && first == nil {
			first = err
		}
		sum += int64(v)
		time.Sleep(calibrationInterval)
	}
	return axisOffset(sum, CalibrationSamples), first
}

// axisOffset converts the sum of n raw samples to an offset register value,
// truncated toward zero and clamped to the int8 range.
func axisOffset(sum int64, n int) int8 {
	o := math.Trunc(-(float64(sum) / float64(n)) / offsetScale)
	if o > math.MaxInt8 {
		return math.MaxInt8
	}
	if o < math.MinInt8 {
		return math.MinInt8
	}
	return int8(o)
}

// CalibratedOffsets runs CalibratedAxisOffset for X, Y then Z.
func (d *Dev) CalibratedOffsets() (Offsets, error) {
	var o Offsets
	var first error
	for i, reg := range [...]byte{DataX0, DataY0, DataZ0} {
		v, err := d.CalibratedAxisOffset(reg)
		if err != nil && first == nil {
			first = err
		}
		o[i] = v
	}
	return o, first
}

// SetOffsets writes o to OfsX, OfsY and OfsZ in one transaction.
func (d *Dev) SetOffsets(o Offsets) error {
	return d.write(OfsX, []byte{byte(o[0]), byte(o[1]), byte(o[2])}, writeTimeout)
}

// Offsets reads back OfsX, OfsY and OfsZ.
func (d *Dev) Offsets() (Offsets, error) {
	var b [3]byte
	err := d.read(OfsX, b[:], registerTimeout)
	return Offsets{int8(b[0]), int8(b[1]), int8(b[2])}, err
}

// Calibrate clears the offset registers, measures new offsets and writes
// them. The offsets are only written when every read succeeded.
//
// Every axis is driven to zero, including the one aligned with gravity.
func (d *Dev) Calibrate() (Offsets, error) {
	if err := d.SetOffsets(Offsets{}); err != nil {
		return Offsets{}, err
	}
	o, err := d.CalibratedOffsets()
	if err != nil {
		return o, err
	}
	return o, d.SetOffsets(o)
}
