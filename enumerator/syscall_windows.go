//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package enumerator

import (
	"golang.org/x/sys/windows"
)

// setupapi based
// --------------

//sys setupDiEnumDeviceInterfaces(set windows.DevInfo, devInfo *windows.DevInfoData, class *windows.GUID, index uint32, data *deviceInterfaceData) (err error) = setupapi.SetupDiEnumDeviceInterfaces
//sys setupDiGetDeviceRegistryProperty(set windows.DevInfo, devInfo *windows.DevInfoData, property windows.SPDRP, propertyType *uint32, outValue *byte, bufSize uint32, reqSize *uint32) (err error) = setupapi.SetupDiGetDeviceRegistryPropertyW

// https://learn.microsoft.com/en-us/windows/win32/api/setupapi/ns-setupapi-sp_device_interface_data
type deviceInterfaceData struct {
	size      uint32
	classGUID windows.GUID
	flags     uint32
	reserved  uintptr
}
