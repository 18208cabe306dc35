//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package enumerator

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/google/uuid"
	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

func nativeHost() Host {
	return setupAPIHost{}
}

// setupAPIHost enumerates devices through the SetupAPI device information sets.
type setupAPIHost struct{}

func windowsGUID(class Class) (windows.GUID, error) {
	u, err := uuid.Parse(string(class))
	if err != nil {
		return windows.GUID{}, ErrInvalidClass
	}
	return windows.GUIDFromString("{" + strings.ToUpper(u.String()) + "}")
}

func (setupAPIHost) OpenDeviceSet(class Class) (DeviceSet, error) {
	guid, err := windowsGUID(class)
	if err != nil {
		return nil, err
	}
	set, err := windows.SetupDiGetClassDevsEx(&guid, "", 0, windows.DIGCF_PRESENT|windows.DIGCF_DEVICEINTERFACE, 0, "")
	if err != nil {
		return nil, fmt.Errorf("SetupDiGetClassDevs: %w", err)
	}
	return &devicesSet{set: set}, nil
}

type devicesSet struct {
	set windows.DevInfo
}

func (s *devicesSet) Device(index int) (Device, bool) {
	data, err := s.set.EnumDeviceInfo(index)
	if err != nil {
		// ERROR_NO_MORE_ITEMS or any other failure ends the enumeration
		return nil, false
	}
	return &deviceInfo{set: s.set, data: data}, true
}

func (s *devicesSet) TextEncoding() encoding.Encoding {
	return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
}

func (s *devicesSet) Close() error {
	return s.set.Close()
}

type deviceInfo struct {
	set  windows.DevInfo
	data *windows.DevInfoData
}

func (dev *deviceInfo) OpenStore() (Store, error) {
	h, err := dev.set.OpenDevRegKey(dev.data, windows.DICS_FLAG_GLOBAL, 0, windows.DIREG_DEV, windows.KEY_READ)
	if err != nil {
		return nil, err
	}
	return devRegKey{key: registry.Key(h)}, nil
}

func (dev *deviceInfo) ReadProperty(prop Property, buf []byte) (int, error) {
	var spdrp windows.SPDRP
	switch prop {
	case FriendlyNameProperty:
		spdrp = windows.SPDRP_FRIENDLYNAME
	default:
		return 0, fmt.Errorf("unknown property %v", prop)
	}

	var outValue *byte
	if len(buf) > 0 {
		outValue = &buf[0]
	}
	var reqSize uint32
	err := setupDiGetDeviceRegistryProperty(dev.set, dev.data, spdrp, nil, outValue, uint32(len(buf)), &reqSize)
	if errors.Is(err, windows.ERROR_INSUFFICIENT_BUFFER) {
		return int(reqSize), ErrBufferTooSmall
	}
	if err != nil {
		return 0, err
	}
	return int(reqSize), nil
}

func (dev *deviceInfo) HasInterface(class Class, index int) bool {
	guid, err := windowsGUID(class)
	if err != nil {
		return false
	}
	data := deviceInterfaceData{}
	data.size = uint32(unsafe.Sizeof(data))
	return setupDiEnumDeviceInterfaces(dev.set, dev.data, &guid, uint32(index), &data) == nil
}

// devRegKey is the hardware key of a device opened with SetupDiOpenDevRegKey.
type devRegKey struct {
	key registry.Key
}

func (k devRegKey) ReadValue(name string, buf []byte) (int, error) {
	n, valtype, err := k.key.GetValue(name, buf)
	if errors.Is(err, registry.ErrShortBuffer) {
		return n, ErrBufferTooSmall
	}
	if err != nil {
		return 0, err
	}
	if valtype != registry.SZ && valtype != registry.EXPAND_SZ {
		return 0, fmt.Errorf("value %s is not a string (type %d)", name, valtype)
	}
	// With an empty buffer the registry only reports the size
	if n > len(buf) {
		return n, ErrBufferTooSmall
	}
	return n, nil
}

func (k devRegKey) Close() error {
	return k.key.Close()
}
