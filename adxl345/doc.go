// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package adxl345 controls an ADXL345 3-axis accelerometer over I²C or SPI.
//
// The driver covers the device handshake, power control, data format, raw
// and scaled sample reads and a software calibration that derives per-axis
// offsets and writes them back to the OFSX/OFSY/OFSZ registers.
//
// Samples are scaled with a fixed sensitivity of 0.0078 g/LSB, the value for
// the default ±2g range with full resolution off.
//
// # Identity check
//
// The historical firmware this driver replaces rejected the device when the
// DEVID register read back 0xE5, which is the value every ADXL345 reports.
// Init uses the corrected rule by default. Set Opts.LiteralIDCheck to get the
// historical behavior.
//
// # Concurrency
//
// Dev holds no lock. Callers sharing a Transport between goroutines wrap it
// with Serialize.
//
// # Datasheet
//
// http://www.analog.com/media/en/technical-documentation/data-sheets/ADXL345.pdf
package adxl345
