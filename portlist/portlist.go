//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// portlist is a tool to list all the available serial ports.
// Just run it and it will produce an output like:
//
// $ go run portlist.go
// USB Serial Device | COM3
// Virtual Com0
//
// Flags:
//
//	-format text|json|yaml   output format (default text)
//	-class GUID              device-interface class to enumerate
//	-max-value-size N        largest port or friendly name accepted, in bytes
//	-v                       log the devices whose metadata can't be read
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/abakum/serialenum/enumerator"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

type config struct {
	format       string
	class        string
	maxValueSize int
	verbose      bool
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	cfg := &config{}
	fs := flag.NewFlagSet("portlist", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.format, "format", "text", "output format: text, json or yaml")
	fs.StringVar(&cfg.class, "class", string(enumerator.SerialPortClass), "device-interface class GUID")
	fs.IntVar(&cfg.maxValueSize, "max-value-size", enumerator.DefaultMaxValueSize, "largest value accepted, in bytes")
	fs.BoolVar(&cfg.verbose, "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	switch cfg.format {
	case "text", "json", "yaml":
	default:
		return nil, fmt.Errorf("unknown output format %q", cfg.format)
	}
	return cfg, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// run lists the devices of host, nil means the native one.
func run(args []string, host enumerator.Host, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	logger := newLogger(stderr, cfg.verbose)

	e := &enumerator.Enumerator{
		Host:         host,
		Class:        enumerator.Class(cfg.class),
		MaxValueSize: cfg.maxValueSize,
		Logger:       logger,
	}
	devices, err := e.Enumerate()
	if err != nil {
		return err
	}
	logger.Debug("enumeration completed", "devices", len(devices))
	return render(stdout, cfg.format, devices)
}

func render(w io.Writer, format string, devices []*enumerator.DeviceRecord) error {
	if devices == nil {
		devices = []*enumerator.DeviceRecord{}
	}
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(devices)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(devices); err != nil {
			return err
		}
		return enc.Close()
	default:
		return renderText(w, devices)
	}
}

func renderText(w io.Writer, devices []*enumerator.DeviceRecord) error {
	if len(devices) == 0 {
		_, err := fmt.Fprintln(w, "No serial ports found!")
		return err
	}
	r := lipgloss.NewRenderer(w)
	nameStyle := r.NewStyle().Bold(true)
	portStyle := r.NewStyle().Foreground(lipgloss.Color("6"))
	unnamedStyle := r.NewStyle().Faint(true)

	for _, dev := range devices {
		var fields []string
		if dev.FriendlyName != "" {
			fields = append(fields, nameStyle.Render(dev.FriendlyName))
		}
		if dev.PortName != "" {
			fields = append(fields, portStyle.Render(dev.PortName))
		}
		if len(fields) == 0 {
			fields = append(fields, unnamedStyle.Render(fmt.Sprintf("(unnamed device #%d)", dev.Index)))
		}
		if _, err := fmt.Fprintln(w, strings.Join(fields, " | ")); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	if err := run(os.Args[1:], nil, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		newLogger(os.Stderr, false).Error("listing serial ports", "err", err)
		os.Exit(1)
	}
}
