// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// example calibrates an ADXL345 on the default I²C bus, writes the offsets
// to the device and prints the acceleration every 30ms.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/GermanBionicSystems/devices/adxl345"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

func mainImpl() error {
	busName := flag.String("bus", "", "I²C bus to use")
	addr := flag.Uint("addr", uint(adxl345.DefaultAddress), "I²C address of the device")
	calibrate := flag.Bool("calibrate", false, "measure and write offsets before sampling")
	duration := flag.Duration("d", 3*time.Second, "sampling duration")
	verbose := flag.Bool("v", false, "trace failed transactions")
	flag.Parse()

	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		return err
	}

	p, err := i2creg.Open(*busName)
	if err != nil {
		return err
	}
	defer p.Close()

	opts := adxl345.DefaultOpts
	if *verbose {
		opts.Debug = log.Printf
	}
	d, err := adxl345.NewI2C(p, uint16(*addr), &opts)
	if err != nil {
		return err
	}
	// Leave the device in standby on every exit path.
	defer d.Halt()

	if err := d.SetSleep(false); err != nil {
		return err
	}
	if *calibrate {
		fmt.Fprintln(os.Stderr, "calibrating, keep the device still")
		o, err := d.Calibrate()
		if err != nil {
			return err
		}
		fmt.Printf("offsets X:%d Y:%d Z:%d\n", o[0], o[1], o[2])
	}

	fmt.Println(d.String())

	// use a ticker to read the acceleration values every 30ms
	ticker := time.NewTicker(30 * time.Millisecond)
	defer ticker.Stop()
	stop := time.After(*duration)

	var a adxl345.Acceleration
	for {
		select {
		case <-stop:
			return nil
		case <-ticker.C:
			if err := d.Sense(&a); err != nil {
				log.Println(err)
				continue
			}
			fmt.Println(a)
		}
	}
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "example: %s.\n", err)
		os.Exit(1)
	}
}
