//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

//go:build darwin && !cgo

package enumerator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIOKitHost(t *testing.T) {
	r := require.New(t)
	r.NoError(libraryLoadError)

	res, err := (&Enumerator{Host: ioKitHost{}}).Enumerate()
	r.NoError(err)
	for i, rec := range res {
		r.Equal(i, rec.Index)
		r.Equal(1, rec.Interfaces)
		r.NotEmpty(rec.PortName)
	}

	_, err = ioKitHost{}.OpenDeviceSet("{4D36E978-E325-11CE-BFC1-08002BE10318}")
	r.ErrorIs(err, ErrUnsupportedClass)
}

func TestIOName(t *testing.T) {
	var name ioName
	copy(name[:], "IOUSBHostDevice\x00garbage")
	require.Equal(t, "IOUSBHostDevice", name.String())
}
