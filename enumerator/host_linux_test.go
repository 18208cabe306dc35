//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package enumerator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// sysfsTree builds a minimal sysfs hierarchy under a temporary folder.
type sysfsTree struct {
	t    *testing.T
	root string
}

func newSysfsTree(t *testing.T) *sysfsTree {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "class", "tty"), 0o755))
	return &sysfsTree{t: t, root: root}
}

func (s *sysfsTree) write(path, content string) {
	full := filepath.Join(s.root, path)
	require.NoError(s.t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(s.t, os.WriteFile(full, []byte(content), 0o644))
}

// addTTY creates class/tty/<name> with its uevent and, if deviceDir is not
// empty, a device link pointing to it.
func (s *sysfsTree) addTTY(name, deviceDir string) {
	s.write(filepath.Join("class", "tty", name, "uevent"), "MAJOR=188\nMINOR=0\nDEVNAME="+name+"\n")
	if deviceDir == "" {
		return
	}
	target := filepath.Join(s.root, deviceDir)
	require.NoError(s.t, os.MkdirAll(target, 0o755))
	require.NoError(s.t, os.Symlink(target, filepath.Join(s.root, "class", "tty", name, "device")))
}

func TestSysfsHost(t *testing.T) {
	r := require.New(t)
	tree := newSysfsTree(t)

	// USB-serial converter: product is on the USB device, two levels up
	tree.write("devices/usb1/1-1/product", "FT232R USB UART\n")
	tree.addTTY("ttyUSB0", "devices/usb1/1-1/1-1:1.0/ttyUSB0")

	// CDC-ACM modem: product is on the parent of the interface
	tree.write("devices/usb1/1-2/product", "Arduino Uno")
	tree.addTTY("ttyACM0", "devices/usb1/1-2/1-2:1.0")

	// real UART without product string
	tree.write("class/tty/ttyS0/type", "4\n")
	tree.addTTY("ttyS0", "devices/platform/serial8250/tty/ttyS0")

	// placeholder UART
	tree.write("class/tty/ttyS1/type", "0\n")
	tree.addTTY("ttyS1", "devices/platform/serial8250/tty/ttyS1")

	// virtual console and unmatched names
	tree.addTTY("tty1", "devices/virtual/tty/tty1")
	tree.addTTY("ttyUSB1", "")

	e := &Enumerator{Host: &sysfsHost{root: tree.root}}
	res, err := e.Enumerate()
	r.NoError(err)
	r.Equal([]*DeviceRecord{
		{Index: 0, FriendlyName: "Arduino Uno", PortName: "/dev/ttyACM0", Interfaces: 1},
		{Index: 1, PortName: "/dev/ttyS0", Interfaces: 1},
		{Index: 2, FriendlyName: "FT232R USB UART", PortName: "/dev/ttyUSB0", Interfaces: 1},
	}, res)
}

func TestSysfsHostMissingUevent(t *testing.T) {
	tree := newSysfsTree(t)
	tree.write("devices/usb1/1-1/product", "CP2102 USB to UART Bridge Controller")
	target := filepath.Join(tree.root, "devices/usb1/1-1/1-1:1.0/ttyUSB3")
	require.NoError(t, os.MkdirAll(target, 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(tree.root, "class", "tty", "ttyUSB3"), 0o755))
	require.NoError(t, os.Symlink(target, filepath.Join(tree.root, "class", "tty", "ttyUSB3", "device")))

	e := &Enumerator{Host: &sysfsHost{root: tree.root}}
	res, err := e.Enumerate()
	require.NoError(t, err)
	require.Equal(t, []*DeviceRecord{
		{Index: 0, FriendlyName: "CP2102 USB to UART Bridge Controller", Interfaces: 1},
	}, res)
}

func TestSysfsHostErrors(t *testing.T) {
	r := require.New(t)

	_, err := (&Enumerator{Host: &sysfsHost{root: filepath.Join(t.TempDir(), "missing")}}).Enumerate()
	r.Error(err)
	r.IsType(&PortEnumerationError{}, err)

	tree := newSysfsTree(t)
	_, err = (&Enumerator{Host: &sysfsHost{root: tree.root}, Class: "{4D36E978-E325-11CE-BFC1-08002BE10318}"}).Enumerate()
	r.ErrorIs(err, ErrUnsupportedClass)

	res, err := (&Enumerator{Host: &sysfsHost{root: tree.root}}).Enumerate()
	r.NoError(err)
	r.Empty(res)
}

func TestUeventStore(t *testing.T) {
	r := require.New(t)
	tree := newSysfsTree(t)
	tree.addTTY("ttyAMA0", "devices/platform/soc/fe201000.serial")

	dev := &ttyDevice{name: "ttyAMA0", dir: filepath.Join(tree.root, "class", "tty", "ttyAMA0")}
	store, err := dev.OpenStore()
	r.NoError(err)
	defer store.Close()

	buf := make([]byte, 64)
	n, err := store.ReadValue(PortNameValue, buf)
	r.NoError(err)
	r.Equal("/dev/ttyAMA0", string(buf[:n]))

	// values can be read more than once
	n, err = store.ReadValue("major", buf)
	r.NoError(err)
	r.Equal("188", string(buf[:n]))

	n, err = store.ReadValue(PortNameValue, nil)
	r.ErrorIs(err, ErrBufferTooSmall)
	r.Equal(len("/dev/ttyAMA0"), n)

	_, err = store.ReadValue("DRIVER", buf)
	r.ErrorIs(err, os.ErrNotExist)
}
