//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package enumerator

import (
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// portInfo is one entry of a ports list.
type portInfo struct {
	Name    string
	Product string
}

// portsListHost adapts a ports list to the Host interface. Each port is a
// device with a single interface, its name is the PortName value and its
// product string the friendly name.
type portsListHost struct {
	list func() ([]portInfo, error)
}

func (h portsListHost) OpenDeviceSet(class Class) (DeviceSet, error) {
	if !class.Equal(SerialPortClass) {
		return nil, ErrUnsupportedClass
	}
	ports, err := h.list()
	if err != nil {
		return nil, err
	}
	return portsSnapshot(ports), nil
}

type portsSnapshot []portInfo

func (s portsSnapshot) Device(index int) (Device, bool) {
	if index < 0 || index >= len(s) {
		return nil, false
	}
	return portEntry(s[index]), true
}

func (s portsSnapshot) TextEncoding() encoding.Encoding {
	return unicode.UTF8
}

func (s portsSnapshot) Close() error {
	return nil
}

type portEntry portInfo

func (p portEntry) OpenStore() (Store, error) {
	return portEntryStore(p), nil
}

func (p portEntry) ReadProperty(prop Property, buf []byte) (int, error) {
	if prop != FriendlyNameProperty || p.Product == "" {
		return 0, os.ErrNotExist
	}
	return FillBuffer(buf, []byte(p.Product))
}

func (p portEntry) HasInterface(class Class, index int) bool {
	return index == 0 && class.Equal(SerialPortClass)
}

type portEntryStore portEntry

func (s portEntryStore) ReadValue(name string, buf []byte) (int, error) {
	if name != PortNameValue || s.Name == "" {
		return 0, os.ErrNotExist
	}
	return FillBuffer(buf, []byte(s.Name))
}

func (s portEntryStore) Close() error {
	return nil
}
