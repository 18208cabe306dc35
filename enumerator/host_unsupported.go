//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

//go:build !windows && !linux && !netbsd && !darwin && !freebsd && !openbsd

package enumerator

import (
	"errors"
	"runtime"
)

func nativeHost() Host {
	return unsupportedHost{}
}

type unsupportedHost struct{}

func (unsupportedHost) OpenDeviceSet(Class) (DeviceSet, error) {
	return nil, errors.New("device enumeration is not supported on " + runtime.GOOS)
}
