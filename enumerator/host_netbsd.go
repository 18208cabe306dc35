//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package enumerator

func nativeHost() Host {
	return portsListHost{list: devFolderPorts("/dev", netbsdPortFilter)}
}
