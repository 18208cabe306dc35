//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

/*
Package serialenum discovers the serial ports attached to the host, for
each one it reports the port name and a human readable label.

The canonical import for this library is github.com/abakum/serialenum so
the import line is the following:

	import "github.com/abakum/serialenum"

It is possibile to get the list of available serial ports with the
GetPortsList function:

	ports, err := serialenum.GetPortsList()
	if err != nil {
		log.Fatal(err)
	}
	if len(ports) == 0 {
		log.Fatal("No serial ports found!")
	}
	for _, port := range ports {
		fmt.Printf("Found port: %v\n", port)
	}

The details of every device, including the ones without a port name, are
available in the enumerator package:

	devices, err := enumerator.GetDeviceList()
	if err != nil {
		log.Fatal(err)
	}
	for _, dev := range devices {
		fmt.Printf("%s\n", dev)
	}

On Windows the devices of the serial port interface class are read from
the SetupAPI device information set: the port name comes from the
"PortName" value of the device hardware key and the label from the
friendly name registry property. On Linux the tty class of sysfs is used,
on NetBSD the matching /dev entries, on macOS the IOSerialBSDClient
services of the I/O Registry (loaded at runtime when cgo is disabled) and
on FreeBSD and OpenBSD the ports list of go.bug.st/serial.

The device registry can be replaced with any implementation of the
enumerator.Host interface, package enumerator/memhost provides an
in-memory one.
*/
package serialenum // import "github.com/abakum/serialenum"
