//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package enumerator_test

import (
	"fmt"
	"log"

	"github.com/abakum/serialenum/enumerator"
)

func ExampleGetDeviceList() {
	devices, err := enumerator.GetDeviceList()
	if err != nil {
		log.Fatal(err)
	}
	if len(devices) == 0 {
		fmt.Println("No serial ports found!")
		return
	}
	for _, dev := range devices {
		fmt.Printf("Found device #%d\n", dev.Index)
		if dev.FriendlyName != "" {
			fmt.Printf("   Name %s\n", dev.FriendlyName)
		}
		if dev.PortName != "" {
			fmt.Printf("   Port %s\n", dev.PortName)
		}
	}
}
