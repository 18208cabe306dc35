//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package enumerator

import (
	"errors"

	"golang.org/x/text/encoding"
)

// ErrBufferTooSmall is returned by bounded reads when the caller buffer
// can't hold the value. The returned size is the one required.
var ErrBufferTooSmall = errors.New("buffer too small")

// Host is the device class registry of the operating system.
type Host interface {
	// OpenDeviceSet returns the devices currently present that expose an
	// interface of the given class. The set must be closed by the caller.
	OpenDeviceSet(class Class) (DeviceSet, error)
}

// DeviceSet is a snapshot of the devices of a class. Devices obtained from
// a set are valid until the set is closed. A DeviceSet is not safe for
// concurrent use.
type DeviceSet interface {
	// Device returns the device at the given index, ok is false when the
	// enumeration is over.
	Device(index int) (dev Device, ok bool)

	// TextEncoding is the encoding of the values and properties read
	// from the devices of the set.
	TextEncoding() encoding.Encoding

	Close() error
}

// Property identifies a device property.
type Property int

const (
	// FriendlyNameProperty is the human readable label of a device.
	FriendlyNameProperty Property = iota
)

func (p Property) String() string {
	switch p {
	case FriendlyNameProperty:
		return "FriendlyName"
	default:
		return "Unknown"
	}
}

// Device is one entry of a DeviceSet.
type Device interface {
	// OpenStore opens the class-specific configuration store of the device.
	OpenStore() (Store, error)

	// ReadProperty copies the raw value of the property into buf and
	// returns its size. If buf is too small ErrBufferTooSmall is returned
	// together with the required size. A nil buf may be used to query the size.
	ReadProperty(prop Property, buf []byte) (int, error)

	// HasInterface reports whether the device registers an interface
	// instance of class at the given index.
	HasInterface(class Class, index int) bool
}

// Store is the configuration store of a device.
type Store interface {
	// ReadValue copies the raw value named name into buf with the same
	// contract of Device.ReadProperty.
	ReadValue(name string, buf []byte) (int, error)

	Close() error
}

// FillBuffer implements the bounded read contract for hosts that already
// hold value in memory: value is copied into buf if it fits, otherwise
// ErrBufferTooSmall is returned with the required size.
func FillBuffer(buf, value []byte) (int, error) {
	if len(buf) < len(value) {
		return len(value), ErrBufferTooSmall
	}
	return copy(buf, value), nil
}
