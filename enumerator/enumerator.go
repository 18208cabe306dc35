//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package enumerator

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

//go:generate go run golang.org/x/sys/windows/mkwinsyscall -output zsyscall_windows.go syscall_windows.go

// Class is a device-interface class identifier in GUID text form,
// for example "{86E0D1E0-8089-11D0-9CE4-08003E301F73}".
type Class string

// SerialPortClass is the device-interface class of serial ports
// (GUID_DEVINTERFACE_COMPORT).
const SerialPortClass Class = "{86E0D1E0-8089-11D0-9CE4-08003E301F73}"

// ErrInvalidClass is returned when a Class is not a well formed GUID.
var ErrInvalidClass = errors.New("invalid device-interface class")

// ErrUnsupportedClass is returned by a Host that can't enumerate the
// requested class.
var ErrUnsupportedClass = errors.New("unsupported device-interface class")

// Validate checks that the class identifier is a well formed GUID.
func (c Class) Validate() error {
	if _, err := uuid.Parse(string(c)); err != nil {
		return ErrInvalidClass
	}
	return nil
}

// Equal reports whether two classes identify the same GUID, regardless
// of letter case and braces.
func (c Class) Equal(other Class) bool {
	a, err := uuid.Parse(string(c))
	if err != nil {
		return false
	}
	b, err := uuid.Parse(string(other))
	if err != nil {
		return false
	}
	return a == b
}

// DeviceRecord contains the information discovered for one device of the
// enumerated class. Use GetDeviceList function to retrieve it.
type DeviceRecord struct {
	// Index is the position of the device in the enumeration.
	Index int `json:"index" yaml:"index"`

	// FriendlyName is the human readable label of the device, empty if the
	// property is unset or can't be read.
	FriendlyName string `json:"friendlyName,omitempty" yaml:"friendlyName,omitempty"`

	// PortName is the logical port identifier (e.g. "COM3" or "/dev/ttyUSB0"),
	// empty if the device configuration doesn't provide one.
	PortName string `json:"portName,omitempty" yaml:"portName,omitempty"`

	// Interfaces is the number of interface instances of the enumerated
	// class registered for the device.
	Interfaces int `json:"interfaces" yaml:"interfaces"`
}

// String renders the fields that are present, omitting the absent ones.
func (r *DeviceRecord) String() string {
	var parts []string
	if r.FriendlyName != "" {
		parts = append(parts, r.FriendlyName)
	}
	if r.PortName != "" {
		parts = append(parts, r.PortName)
	}
	return strings.Join(parts, " | ")
}

// GetDeviceList retrieve the serial port devices present on the host
// together with their port name and friendly name.
func GetDeviceList() ([]*DeviceRecord, error) {
	e := &Enumerator{}
	return e.Enumerate()
}

// PortEnumerationError is the error type for serial ports enumeration
type PortEnumerationError struct {
	causedBy error
}

// Error returns the complete error code with details on the cause of the error
func (e PortEnumerationError) Error() string {
	reason := "Error while enumerating serial ports"
	if e.causedBy != nil {
		reason += ": " + e.causedBy.Error()
	}
	return reason
}

// Unwrap returns the cause of the error
func (e PortEnumerationError) Unwrap() error {
	return e.causedBy
}
