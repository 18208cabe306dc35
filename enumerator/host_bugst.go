//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

//go:build freebsd || openbsd || (darwin && cgo)

package enumerator

import (
	bugst "go.bug.st/serial/enumerator"
)

func nativeHost() Host {
	return portsListHost{list: detailedPortsList}
}

// detailedPortsList lists the ports with go.bug.st/serial.
func detailedPortsList() ([]portInfo, error) {
	ports, err := bugst.GetDetailedPortsList()
	if err != nil {
		return nil, err
	}
	return fromPortDetails(ports), nil
}

func fromPortDetails(ports []*bugst.PortDetails) []portInfo {
	res := make([]portInfo, 0, len(ports))
	for _, port := range ports {
		res = append(res, portInfo{Name: port.Name, Product: port.Product})
	}
	return res
}
