// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl345

import (
	"testing"

	"periph.io/x/conn/v3/i2c/i2ctest"
)

// samples returns n reads of the register pair at reg, each returning v.
func samples(reg byte, v int16, n int) []i2ctest.IO {
	u := uint16(v)
	ops := make([]i2ctest.IO, 0, n)
	for i := 0; i < n; i++ {
		ops = append(ops, i2ctest.IO{Addr: addr, W: []byte{reg}, R: []byte{byte(u), byte(u >> 8)}})
	}
	return ops
}

func TestCalibratedAxisOffset(t *testing.T) {
	tests := []struct {
		raw      int16
		expected int8
	}{
		{0, 0},
		{40, -10},
		{-40, 10},
		{42, -10}, // -10.5 truncates toward zero
		{256, -64},
		{-511, 127},
		{32767, -128},
		{-32768, 127},
	}
	for _, test := range tests {
		pb := newPlayback(samples(DataX0, test.raw, CalibrationSamples))
		o, err := newDev(pb, &testOpts).CalibratedAxisOffset(DataX0)
		if err != nil {
			t.Fatal(err)
		}
		if o != test.expected {
			t.Errorf("raw %d: offset %d, expected %d", test.raw, o, test.expected)
		}
		if err := pb.Close(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestCalibratedAxisOffsetBestEffort(t *testing.T) {
	// Only half of the reads are answered; the others decode as zero.
	pb := newPlayback(samples(DataZ0, 40, CalibrationSamples/2))
	o, err := newDev(pb, &testOpts).CalibratedAxisOffset(DataZ0)
	if err == nil {
		t.Error("expected the first transaction error")
	}
	if o != -5 {
		t.Errorf("offset %d, expected -5", o)
	}
}

func TestAxisOffset(t *testing.T) {
	if o := axisOffset(0, CalibrationSamples); o != 0 {
		t.Errorf("axisOffset(0) = %d, expected 0", o)
	}
	if o := axisOffset(-100*400, CalibrationSamples); o != 100 {
		t.Errorf("axisOffset(-40000) = %d, expected 100", o)
	}
}

func TestCalibratedOffsets(t *testing.T) {
	pb := newPlayback(
		samples(DataX0, 12, CalibrationSamples),
		samples(DataY0, -20, CalibrationSamples),
		samples(DataZ0, 256, CalibrationSamples),
	)
	o, err := newDev(pb, &testOpts).CalibratedOffsets()
	if err != nil {
		t.Fatal(err)
	}
	if expected := (Offsets{-3, 5, -64}); o != expected {
		t.Errorf("CalibratedOffsets() = %v, expected %v", o, expected)
	}
	if err := pb.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestSetOffsets(t *testing.T) {
	pb := newPlayback([]i2ctest.IO{{Addr: addr, W: []byte{OfsX, 0xf6, 0x05, 0x80}}})
	if err := newDev(pb, &testOpts).SetOffsets(Offsets{-10, 5, -128}); err != nil {
		t.Fatal(err)
	}
	if err := pb.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestOffsets(t *testing.T) {
	pb := newPlayback([]i2ctest.IO{{Addr: addr, W: []byte{OfsX}, R: []byte{0xf6, 0x05, 0x7f}}})
	o, err := newDev(pb, &testOpts).Offsets()
	if err != nil {
		t.Fatal(err)
	}
	if expected := (Offsets{-10, 5, 127}); o != expected {
		t.Errorf("Offsets() = %v, expected %v", o, expected)
	}
	if err := pb.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestCalibrate(t *testing.T) {
	pb := newPlayback(
		[]i2ctest.IO{{Addr: addr, W: []byte{OfsX, 0, 0, 0}}},
		samples(DataX0, 8, CalibrationSamples),
		samples(DataY0, -8, CalibrationSamples),
		samples(DataZ0, 0, CalibrationSamples),
		[]i2ctest.IO{{Addr: addr, W: []byte{OfsX, 0xfe, 0x02, 0x00}}},
	)
	o, err := newDev(pb, &testOpts).Calibrate()
	if err != nil {
		t.Fatal(err)
	}
	if expected := (Offsets{-2, 2, 0}); o != expected {
		t.Errorf("Calibrate() = %v, expected %v", o, expected)
	}
	if err := pb.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestCalibrateDoesNotWriteOnFailure(t *testing.T) {
	pb := newPlayback(
		[]i2ctest.IO{{Addr: addr, W: []byte{OfsX, 0, 0, 0}}},
		samples(DataX0, 8, CalibrationSamples),
	)
	if _, err := newDev(pb, &testOpts).Calibrate(); err == nil {
		t.Fatal("expected an error")
	}
	if pb.Count != 1+CalibrationSamples {
		t.Errorf("unexpected transaction count %d", pb.Count)
	}
}
