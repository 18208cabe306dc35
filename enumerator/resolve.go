//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package enumerator

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/encoding"
)

// PortNameValue is the name of the configuration store value holding the
// port name of a device.
const PortNameValue = "PortName"

// ErrValueTooLarge is returned when a value exceeds the configured maximum size.
var ErrValueTooLarge = errors.New("value too large")

// errValueChanged is returned when a value grows between the size query and the read.
var errValueChanged = errors.New("value changed while reading")

type resolver struct {
	class   Class
	decoder *encoding.Decoder
	limit   int
	log     *slog.Logger
}

func (r *resolver) resolve(index int, dev Device) *DeviceRecord {
	rec := &DeviceRecord{Index: index}
	log := r.log.With("index", index)

	if name, err := r.portName(dev); err != nil {
		log.Debug("port name absent", "err", err)
	} else {
		rec.PortName = name
	}

	if name, err := r.text(func(buf []byte) (int, error) {
		return dev.ReadProperty(FriendlyNameProperty, buf)
	}); err != nil {
		log.Debug("friendly name absent", "err", err)
	} else {
		rec.FriendlyName = name
	}

	for dev.HasInterface(r.class, rec.Interfaces) {
		rec.Interfaces++
	}
	if rec.Interfaces == 0 {
		log.Debug("no interface instance registered")
	}
	return rec
}

func (r *resolver) portName(dev Device) (string, error) {
	store, err := dev.OpenStore()
	if err != nil {
		return "", fmt.Errorf("opening device store: %w", err)
	}
	defer store.Close()

	return r.text(func(buf []byte) (int, error) {
		return store.ReadValue(PortNameValue, buf)
	})
}

// text reads a value with a size query followed by a read into a buffer of
// the reported size, and decodes it. Values up to the first NUL are kept.
func (r *resolver) text(read func([]byte) (int, error)) (string, error) {
	n, err := read(nil)
	if err != nil && !errors.Is(err, ErrBufferTooSmall) {
		return "", err
	}
	if n > r.limit {
		return "", fmt.Errorf("%w: %d bytes", ErrValueTooLarge, n)
	}
	if n == 0 {
		return "", errors.New("empty value")
	}

	buf := make([]byte, n)
	got, err := read(buf)
	if errors.Is(err, ErrBufferTooSmall) {
		return "", errValueChanged
	}
	if err != nil {
		return "", err
	}

	decoded, err := r.decoder.Bytes(buf[:got])
	if err != nil {
		return "", fmt.Errorf("decoding value: %w", err)
	}
	s := string(decoded)
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return "", errors.New("empty value")
	}
	return s, nil
}
