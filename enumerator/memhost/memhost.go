//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Package memhost is an in-memory device registry implementing
// enumerator.Host. It is meant for tests and demos: devices are declared
// up front and every handle acquisition and release is counted.
package memhost

import (
	"errors"
	"sync"

	"github.com/abakum/serialenum/enumerator"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// ErrStoreUnavailable is returned by OpenStore for devices declared with
// StoreFails.
var ErrStoreUnavailable = errors.New("device store unavailable")

// ErrNotFound is returned when a value or property is not set.
var ErrNotFound = errors.New("not found")

// Device describes a device of the registry.
type Device struct {
	// Values is the content of the configuration store.
	Values map[string]string

	// FriendlyName is the friendly-name property, empty if unset.
	FriendlyName string

	// StoreFails makes OpenStore fail for this device.
	StoreFails bool

	// Interfaces is the number of interface instances of the class.
	Interfaces int

	// PropertyLimit, if positive, is the largest buffer the property
	// accessor can fill. Larger values fail with ErrBufferTooSmall
	// whatever the size of the caller buffer.
	PropertyLimit int
}

// Host is an in-memory enumerator.Host holding the devices of one class.
type Host struct {
	Class   enumerator.Class
	Devices []Device

	// OpenErr, if set, is returned by OpenDeviceSet.
	OpenErr error

	mu           sync.Mutex
	setsOpened   int
	setsClosed   int
	storesOpened int
	storesClosed int
}

// New returns a host with the given serial port devices.
func New(devices ...Device) *Host {
	return &Host{Class: enumerator.SerialPortClass, Devices: devices}
}

// OpenDeviceSet implements enumerator.Host.
func (h *Host) OpenDeviceSet(class enumerator.Class) (enumerator.DeviceSet, error) {
	if h.OpenErr != nil {
		return nil, h.OpenErr
	}
	if !class.Equal(h.Class) {
		return nil, enumerator.ErrUnsupportedClass
	}
	h.mu.Lock()
	h.setsOpened++
	h.mu.Unlock()

	devices := make([]Device, len(h.Devices))
	copy(devices, h.Devices)
	return &deviceSet{host: h, class: class, devices: devices}, nil
}

// Stats reports how many handles were acquired and released.
type Stats struct {
	SetsOpened, SetsClosed     int
	StoresOpened, StoresClosed int
}

// Stats returns the handle counters of the host.
func (h *Host) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Stats{
		SetsOpened:   h.setsOpened,
		SetsClosed:   h.setsClosed,
		StoresOpened: h.storesOpened,
		StoresClosed: h.storesClosed,
	}
}

type deviceSet struct {
	host    *Host
	class   enumerator.Class
	devices []Device
	closed  bool
}

func (s *deviceSet) Device(index int) (enumerator.Device, bool) {
	if s.closed || index < 0 || index >= len(s.devices) {
		return nil, false
	}
	return &device{set: s, Device: s.devices[index]}, true
}

func (s *deviceSet) TextEncoding() encoding.Encoding {
	return unicode.UTF8
}

func (s *deviceSet) Close() error {
	if s.closed {
		return errors.New("device set already closed")
	}
	s.closed = true
	s.host.mu.Lock()
	s.host.setsClosed++
	s.host.mu.Unlock()
	return nil
}

type device struct {
	Device
	set *deviceSet
}

func (d *device) OpenStore() (enumerator.Store, error) {
	if d.StoreFails {
		return nil, ErrStoreUnavailable
	}
	d.set.host.mu.Lock()
	d.set.host.storesOpened++
	d.set.host.mu.Unlock()
	return &store{host: d.set.host, values: d.Values}, nil
}

func (d *device) ReadProperty(prop enumerator.Property, buf []byte) (int, error) {
	if prop != enumerator.FriendlyNameProperty || d.FriendlyName == "" {
		return 0, ErrNotFound
	}
	if d.PropertyLimit > 0 && len(d.FriendlyName) > d.PropertyLimit {
		return len(d.FriendlyName), enumerator.ErrBufferTooSmall
	}
	return enumerator.FillBuffer(buf, []byte(d.FriendlyName))
}

func (d *device) HasInterface(class enumerator.Class, index int) bool {
	return class.Equal(d.set.class) && index >= 0 && index < d.Interfaces
}

type store struct {
	host   *Host
	values map[string]string
	closed bool
}

func (s *store) ReadValue(name string, buf []byte) (int, error) {
	v, ok := s.values[name]
	if !ok {
		return 0, ErrNotFound
	}
	return enumerator.FillBuffer(buf, []byte(v))
}

func (s *store) Close() error {
	if s.closed {
		return errors.New("store already closed")
	}
	s.closed = true
	s.host.mu.Lock()
	s.host.storesClosed++
	s.host.mu.Unlock()
	return nil
}
