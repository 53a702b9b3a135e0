// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl345

import "fmt"

// NotReadyError is returned by Init when the presence probe fails.
type NotReadyError struct {
	Err error
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("adxl345: device not ready: %v", e.Err)
}

func (e *NotReadyError) Unwrap() error {
	return e.Err
}

// IdentityError is returned by Init when the DeviceID register fails the
// identity check. Err holds the read error, if any.
type IdentityError struct {
	Got      byte
	Expected byte
	Literal  bool
	Err      error
}

func (e *IdentityError) Error() string {
	if e.Literal {
		return fmt.Sprintf("adxl345: device id %#x rejected by literal id check", e.Got)
	}
	if e.Err != nil {
		return fmt.Sprintf("adxl345: wrong device connected, got %#x, expected %#x: %v", e.Got, e.Expected, e.Err)
	}
	return fmt.Sprintf("adxl345: wrong device connected, got %#x, expected %#x", e.Got, e.Expected)
}

func (e *IdentityError) Unwrap() error {
	return e.Err
}
