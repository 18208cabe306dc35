//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

//go:build darwin && !cgo

package enumerator

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"unsafe"

	"github.com/ebitengine/purego"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

var libraryLoadError = lib.Load()

func nativeHost() Host {
	return ioKitHost{}
}

// ioKitHost walks the IOSerialBSDClient services of the I/O Registry.
// IOKit and CoreFoundation are loaded at runtime, no cgo is needed.
type ioKitHost struct{}

func (ioKitHost) OpenDeviceSet(class Class) (DeviceSet, error) {
	if !class.Equal(SerialPortClass) {
		return nil, ErrUnsupportedClass
	}
	if libraryLoadError != nil {
		return nil, libraryLoadError
	}
	services, err := matchingServices("IOSerialBSDClient")
	if err != nil {
		return nil, err
	}
	return &serviceSet{services: services}, nil
}

// serviceSet owns the services it returns and releases them on Close.
type serviceSet struct {
	services []registryEntry
}

func (s *serviceSet) Device(index int) (Device, bool) {
	if index < 0 || index >= len(s.services) {
		return nil, false
	}
	return serialService(s.services[index]), true
}

func (s *serviceSet) TextEncoding() encoding.Encoding {
	return unicode.UTF8
}

func (s *serviceSet) Close() error {
	for _, service := range s.services {
		service.Release()
	}
	s.services = nil
	return nil
}

var usbDeviceClasses = map[string]bool{
	"IOUSBDevice":     true,
	"IOUSBHostDevice": true,
}

type serialService registryEntry

func (s serialService) OpenStore() (Store, error) {
	return s, nil
}

// ReadValue maps PortName to the callout device of the service.
func (s serialService) ReadValue(name string, buf []byte) (int, error) {
	if name != PortNameValue {
		return 0, os.ErrNotExist
	}
	value, err := registryEntry(s).StringProperty("IOCalloutDevice")
	if err != nil {
		return 0, err
	}
	return FillBuffer(buf, []byte(value))
}

// Close is a no-op, the service belongs to its set.
func (s serialService) Close() error {
	return nil
}

// ReadProperty reports the product name of the USB device the port
// belongs to.
func (s serialService) ReadProperty(prop Property, buf []byte) (int, error) {
	if prop != FriendlyNameProperty {
		return 0, os.ErrNotExist
	}
	product, err := registryEntry(s).usbProduct()
	if err != nil {
		return 0, err
	}
	return FillBuffer(buf, []byte(product))
}

func (s serialService) HasInterface(class Class, index int) bool {
	return index == 0 && class.Equal(SerialPortClass)
}

func (e registryEntry) usbProduct() (string, error) {
	entry, owned := e, false
	for !usbDeviceClasses[entry.Class()] {
		parent, err := entry.Parent("IOService")
		if owned {
			entry.Release()
		}
		if err != nil {
			return "", err
		}
		entry, owned = parent, true
	}
	if owned {
		defer entry.Release()
	}
	if product, err := entry.StringProperty("USB Product Name"); err == nil && product != "" {
		return product, nil
	}
	if name := entry.Name(); name != "" {
		return name, nil
	}
	return "", os.ErrNotExist
}

func matchingServices(serviceType string) ([]registryEntry, error) {
	var it ioIterator
	res := lib.IOServiceGetMatchingServices(lib.kIOMasterPortDefault, cfDictionaryRef(lib.IOServiceMatching(serviceType)), &it)
	if res.Failed() {
		return nil, fmt.Errorf("IOServiceGetMatchingServices failed (code %d)", res)
	}
	defer it.Release()

	var services []registryEntry
	for tries := 0; tries < 5; tries++ {
		for {
			service, ok := it.Next()
			if !ok {
				break
			}
			services = append(services, registryEntry(service))
		}
		if len(services) == 0 || it.IsValid() {
			return services, nil
		}
		// The registry changed while iterating
		for _, s := range services {
			s.Release()
		}
		services = services[:0]
		it.Reset()
	}
	return nil, errors.New("IOServiceGetMatchingServices failed, data changed while iterating")
}

type library struct {
	// IOKit
	kIOMasterPortDefault uintptr

	IOIteratorIsValid               func(ioIterator) bool
	IOIteratorNext                  func(ioIterator) ioObject
	IOIteratorReset                 func(ioIterator)
	IOObjectGetClass                func(ioObject, *ioName) kernReturn
	IOObjectRelease                 func(ioObject) int
	IORegistryEntryCreateCFProperty func(registryEntry, cfStringRef, cfAllocatorRef, uint32) cfTypeRef
	IORegistryEntryGetName          func(registryEntry, *ioName) kernReturn
	IORegistryEntryGetParentEntry   func(registryEntry, string, *registryEntry) kernReturn
	IOServiceGetMatchingServices    func(uintptr, cfDictionaryRef, *ioIterator) kernReturn
	IOServiceMatching               func(string) cfMutableDictionaryRef

	// CoreFoundation
	kCFAllocatorDefault cfAllocatorRef

	CFRelease                 func(cfTypeRef)
	CFStringCreateWithCString func(cfAllocatorRef, string, cfStringEncoding) cfStringRef
	CFStringGetCString        func(cfStringRef, *byte, int, cfStringEncoding) bool
	CFStringGetCStringPtr     func(cfStringRef, cfStringEncoding) string
}

var lib library

func (l *library) Load() error {
	iokit, err := purego.Dlopen("/System/Library/Frameworks/IOKit.framework/IOKit", purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return err
	}
	purego.RegisterLibFunc(&l.IOIteratorIsValid, iokit, "IOIteratorIsValid")
	purego.RegisterLibFunc(&l.IOIteratorNext, iokit, "IOIteratorNext")
	purego.RegisterLibFunc(&l.IOIteratorReset, iokit, "IOIteratorReset")
	purego.RegisterLibFunc(&l.IOObjectGetClass, iokit, "IOObjectGetClass")
	purego.RegisterLibFunc(&l.IOObjectRelease, iokit, "IOObjectRelease")
	purego.RegisterLibFunc(&l.IORegistryEntryCreateCFProperty, iokit, "IORegistryEntryCreateCFProperty")
	purego.RegisterLibFunc(&l.IORegistryEntryGetName, iokit, "IORegistryEntryGetName")
	purego.RegisterLibFunc(&l.IORegistryEntryGetParentEntry, iokit, "IORegistryEntryGetParentEntry")
	purego.RegisterLibFunc(&l.IOServiceGetMatchingServices, iokit, "IOServiceGetMatchingServices")
	purego.RegisterLibFunc(&l.IOServiceMatching, iokit, "IOServiceMatching")

	cf, err := purego.Dlopen("/System/Library/Frameworks/CoreFoundation.framework/CoreFoundation", purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return err
	}
	ptr, err := purego.Dlsym(cf, "kCFAllocatorDefault")
	if err != nil {
		return err
	}
	l.kCFAllocatorDefault = *((*cfAllocatorRef)(unsafe.Pointer(ptr)))
	purego.RegisterLibFunc(&l.CFRelease, cf, "CFRelease")
	purego.RegisterLibFunc(&l.CFStringCreateWithCString, cf, "CFStringCreateWithCString")
	purego.RegisterLibFunc(&l.CFStringGetCString, cf, "CFStringGetCString")
	purego.RegisterLibFunc(&l.CFStringGetCStringPtr, cf, "CFStringGetCStringPtr")
	return nil
}

type (
	kernReturn    uint32
	ioName        [128]byte
	ioObject      uintptr
	ioIterator    ioObject
	registryEntry ioObject
)

func (r kernReturn) Failed() bool {
	return r != 0 // KERN_SUCCESS
}

func (s *ioName) String() string {
	if i := bytes.IndexByte(s[:], 0); i >= 0 {
		return string(s[:i])
	}
	return string(s[:])
}

func (o ioObject) Release() {
	lib.IOObjectRelease(o)
}

func (it ioIterator) IsValid() bool {
	return lib.IOIteratorIsValid(it)
}

func (it ioIterator) Next() (ioObject, bool) {
	o := lib.IOIteratorNext(it)
	return o, o != 0
}

func (it ioIterator) Reset() {
	lib.IOIteratorReset(it)
}

func (it ioIterator) Release() {
	ioObject(it).Release()
}

func (e registryEntry) Release() {
	ioObject(e).Release()
}

func (e registryEntry) Class() string {
	var class ioName
	if lib.IOObjectGetClass(ioObject(e), &class).Failed() {
		return ""
	}
	return class.String()
}

func (e registryEntry) Name() string {
	var name ioName
	if lib.IORegistryEntryGetName(e, &name).Failed() {
		return ""
	}
	return name.String()
}

// Parent returns a new reference to the parent entry in plane.
func (e registryEntry) Parent(plane string) (registryEntry, error) {
	var parent registryEntry
	if lib.IORegistryEntryGetParentEntry(e, plane, &parent).Failed() {
		return 0, errors.New("no parent device available")
	}
	return parent, nil
}

func (e registryEntry) StringProperty(key string) (string, error) {
	k := lib.CFStringCreateWithCString(lib.kCFAllocatorDefault, key, kCFStringEncodingUTF8)
	defer lib.CFRelease(cfTypeRef(k))
	property := lib.IORegistryEntryCreateCFProperty(e, k, lib.kCFAllocatorDefault, 0)
	if property == 0 {
		return "", fmt.Errorf("property %s: %w", key, os.ErrNotExist)
	}
	defer lib.CFRelease(property)

	if str := lib.CFStringGetCStringPtr(cfStringRef(property), kCFStringEncodingUTF8); str != "" {
		return str, nil
	}
	var buf ioName
	if !lib.CFStringGetCString(cfStringRef(property), &buf[0], len(buf), kCFStringEncodingUTF8) {
		return "", fmt.Errorf("property %s can't be converted", key)
	}
	return buf.String(), nil
}

type (
	cfStringEncoding uint32
	cfTypeRef        uintptr

	cfAllocatorRef         cfTypeRef
	cfDictionaryRef        cfTypeRef
	cfMutableDictionaryRef cfTypeRef
	cfStringRef            cfTypeRef
)

const kCFStringEncodingUTF8 cfStringEncoding = 0x08000100
