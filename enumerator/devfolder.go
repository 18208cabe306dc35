//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package enumerator

import (
	"os"
	"path/filepath"
	"regexp"
)

// see tty(4), ucom(4), zstty(4), ...
var netbsdPortFilter = regexp.MustCompile("^([dt]ty[a-d]|[dt]ty[0-9]+|[dt]ty[CBZ][0-1]|[dt]tyU[0-9]+)$")

// devFolderPorts returns a ports list made of the device files of dir
// whose name matches filter.
func devFolderPorts(dir string, filter *regexp.Regexp) func() ([]portInfo, error) {
	return func() ([]portInfo, error) {
		files, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}

		ports := make([]portInfo, 0, len(files))
		for _, f := range files {
			// Skip folders
			if f.IsDir() {
				continue
			}
			// Keep only devices with the correct name
			if !filter.MatchString(f.Name()) {
				continue
			}
			ports = append(ports, portInfo{Name: filepath.Join(dir, f.Name())})
		}
		return ports, nil
	}
}
