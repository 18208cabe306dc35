//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package enumerator

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// OS dependent values

const devFolder = "/dev"
const sysFolder = "/sys"

var regexFilter = regexp.MustCompile("^(ttyS|ttyUSB|ttyACM|ttyAMA|rfcomm|ttyO)[0-9]{1,3}$")

// number of parent folders searched for the USB product string
const productSearchDepth = 3

func nativeHost() Host {
	return &sysfsHost{root: sysFolder}
}

// sysfsHost enumerates the tty class of the sysfs tree mounted at root.
type sysfsHost struct {
	root string
}

func (h *sysfsHost) OpenDeviceSet(class Class) (DeviceSet, error) {
	if !class.Equal(SerialPortClass) {
		return nil, ErrUnsupportedClass
	}
	classDir := filepath.Join(h.root, "class", "tty")
	files, err := os.ReadDir(classDir)
	if err != nil {
		return nil, err
	}

	root, err := filepath.EvalSymlinks(h.root)
	if err != nil {
		return nil, err
	}

	set := &ttySet{}
	for _, f := range files {
		// Keep only devices with the correct name
		if !regexFilter.MatchString(f.Name()) {
			continue
		}
		ttyDir := filepath.Join(classDir, f.Name())

		// Virtual consoles and pseudo terminals have no backing device
		deviceDir, err := filepath.EvalSymlinks(filepath.Join(ttyDir, "device"))
		if err != nil {
			continue
		}

		// Placeholder "ttyS" ports have no UART attached
		if strings.HasPrefix(f.Name(), "ttyS") && readAttribute(filepath.Join(ttyDir, "type")) == "0" {
			continue
		}

		set.ttys = append(set.ttys, &ttyDevice{
			name:      f.Name(),
			dir:       ttyDir,
			deviceDir: deviceDir,
			root:      root,
		})
	}
	return set, nil
}

// readAttribute returns the trimmed content of a sysfs attribute, or an
// empty string if it can't be read.
func readAttribute(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

type ttySet struct {
	ttys []*ttyDevice
}

func (s *ttySet) Device(index int) (Device, bool) {
	if index < 0 || index >= len(s.ttys) {
		return nil, false
	}
	return s.ttys[index], true
}

func (s *ttySet) TextEncoding() encoding.Encoding {
	return unicode.UTF8
}

func (s *ttySet) Close() error {
	s.ttys = nil
	return nil
}

type ttyDevice struct {
	name      string
	dir       string
	deviceDir string
	root      string
}

func (d *ttyDevice) OpenStore() (Store, error) {
	f, err := os.Open(filepath.Join(d.dir, "uevent"))
	if err != nil {
		return nil, err
	}
	return &ueventStore{f: f}, nil
}

func (d *ttyDevice) ReadProperty(prop Property, buf []byte) (int, error) {
	if prop != FriendlyNameProperty {
		return 0, errors.New("unknown property " + prop.String())
	}
	dir := d.deviceDir
	for i := 0; i <= productSearchDepth; i++ {
		if product := readAttribute(filepath.Join(dir, "product")); product != "" {
			return FillBuffer(buf, []byte(product))
		}
		parent := filepath.Dir(dir)
		if parent == dir || !strings.HasPrefix(parent, d.root) {
			break
		}
		dir = parent
	}
	return 0, os.ErrNotExist
}

// HasInterface reports the tty itself as the only interface instance.
func (d *ttyDevice) HasInterface(class Class, index int) bool {
	return index == 0 && class.Equal(SerialPortClass)
}

// ueventStore reads the KEY=VALUE pairs of the uevent attribute of a tty.
// The PortName value is derived from DEVNAME.
type ueventStore struct {
	f *os.File
}

func (s *ueventStore) ReadValue(name string, buf []byte) (int, error) {
	key := strings.ToUpper(name)
	if name == PortNameValue {
		key = "DEVNAME"
	}
	if _, err := s.f.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	scanner := bufio.NewScanner(s.f)
	for scanner.Scan() {
		k, v, ok := strings.Cut(scanner.Text(), "=")
		if !ok || k != key {
			continue
		}
		if name == PortNameValue {
			v = devFolder + "/" + v
		}
		return FillBuffer(buf, []byte(v))
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return 0, os.ErrNotExist
}

func (s *ueventStore) Close() error {
	return s.f.Close()
}
