//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package serialenum

import (
	"github.com/abakum/serialenum/enumerator"
)

// GetPortsList retrieve the list of available serial ports
func GetPortsList() ([]string, error) {
	devices, err := enumerator.GetDeviceList()
	if err != nil {
		return nil, err
	}
	return PortNames(devices), nil
}

// PortNames returns the port names of the devices, in order, skipping the
// devices without one.
func PortNames(devices []*enumerator.DeviceRecord) []string {
	list := make([]string, 0, len(devices))
	for _, dev := range devices {
		if dev.PortName != "" {
			list = append(list, dev.PortName)
		}
	}
	return list
}
