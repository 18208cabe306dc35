//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package enumerator

import (
	"io"
	"log/slog"
)

// DefaultMaxValueSize is the largest value, in bytes, accepted for the port
// name and the friendly name. Larger values are reported as absent.
const DefaultMaxValueSize = 1024

// Enumerator discovers the devices of a class. The zero value enumerates
// the serial ports of the native host.
type Enumerator struct {
	// Host is the device registry to query, nil means the native one.
	Host Host

	// Class is the device-interface class to enumerate, empty means
	// SerialPortClass.
	Class Class

	// MaxValueSize limits the size of values read from devices, zero
	// means DefaultMaxValueSize.
	MaxValueSize int

	// Logger receives the soft failures at debug level, nil discards them.
	Logger *slog.Logger
}

func (e *Enumerator) host() Host {
	if e.Host != nil {
		return e.Host
	}
	return nativeHost()
}

func (e *Enumerator) class() Class {
	if e.Class != "" {
		return e.Class
	}
	return SerialPortClass
}

func (e *Enumerator) maxValueSize() int {
	if e.MaxValueSize > 0 {
		return e.MaxValueSize
	}
	return DefaultMaxValueSize
}

func (e *Enumerator) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Walk enumerates the devices and calls fn with the record of each one, in
// the order assigned by the host. Returning false from fn stops the walk.
// The only error returned is a PortEnumerationError raised when the device
// set can't be obtained, in that case fn is never called.
func (e *Enumerator) Walk(fn func(*DeviceRecord) bool) error {
	class := e.class()
	if err := class.Validate(); err != nil {
		return &PortEnumerationError{causedBy: err}
	}

	set, err := e.host().OpenDeviceSet(class)
	if err != nil {
		return &PortEnumerationError{causedBy: err}
	}
	defer set.Close()

	r := &resolver{
		class:   class,
		decoder: set.TextEncoding().NewDecoder(),
		limit:   e.maxValueSize(),
		log:     e.logger().With("class", string(class)),
	}
	for i := 0; ; i++ {
		dev, ok := set.Device(i)
		if !ok {
			break
		}
		if !fn(r.resolve(i, dev)) {
			break
		}
	}
	return nil
}

// Enumerate returns the records of all the devices found.
func (e *Enumerator) Enumerate() ([]*DeviceRecord, error) {
	var res []*DeviceRecord
	err := e.Walk(func(rec *DeviceRecord) bool {
		res = append(res, rec)
		return true
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
