//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package enumerator

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPortsListHost(t *testing.T) {
	r := require.New(t)
	host := portsListHost{list: func() ([]portInfo, error) {
		return []portInfo{
			{Name: "/dev/cu.usbmodemFD121", Product: "Arduino Zero"},
			{Name: "/dev/cu.Bluetooth-Incoming-Port"},
		}, nil
	}}

	res, err := (&Enumerator{Host: host}).Enumerate()
	r.NoError(err)
	r.Equal([]*DeviceRecord{
		{Index: 0, FriendlyName: "Arduino Zero", PortName: "/dev/cu.usbmodemFD121", Interfaces: 1},
		{Index: 1, PortName: "/dev/cu.Bluetooth-Incoming-Port", Interfaces: 1},
	}, res)
}

func TestPortsListHostErrors(t *testing.T) {
	r := require.New(t)
	failure := errors.New("IOServiceGetMatchingServices failed")
	host := portsListHost{list: func() ([]portInfo, error) {
		return nil, failure
	}}

	_, err := (&Enumerator{Host: host}).Enumerate()
	r.ErrorIs(err, failure)

	_, err = (&Enumerator{Host: host, Class: "{4D36E978-E325-11CE-BFC1-08002BE10318}"}).Enumerate()
	r.ErrorIs(err, ErrUnsupportedClass)
}

func TestDevFolderPorts(t *testing.T) {
	r := require.New(t)
	dir := t.TempDir()
	for _, name := range []string{"tty00", "dtyU0", "ttyZ1", "ttya", "null", "ttyZ2", "ttyp0"} {
		r.NoError(os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}
	r.NoError(os.Mkdir(filepath.Join(dir, "tty01"), 0o700))

	host := portsListHost{list: devFolderPorts(dir, netbsdPortFilter)}
	res, err := (&Enumerator{Host: host}).Enumerate()
	r.NoError(err)
	r.Equal([]string{
		filepath.Join(dir, "dtyU0"),
		filepath.Join(dir, "tty00"),
		filepath.Join(dir, "ttyZ1"),
		filepath.Join(dir, "ttya"),
	}, portNames(res))
	for _, rec := range res {
		r.Empty(rec.FriendlyName)
		r.Equal(1, rec.Interfaces)
	}

	_, err = devFolderPorts(filepath.Join(dir, "missing"), netbsdPortFilter)()
	r.ErrorIs(err, os.ErrNotExist)
}

func portNames(res []*DeviceRecord) []string {
	names := make([]string, 0, len(res))
	for _, rec := range res {
		names = append(names, rec.PortName)
	}
	return names
}
