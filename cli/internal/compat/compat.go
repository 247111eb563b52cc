// Package compat checks engine server versions against the oldest releases
// the generated SQL runs on.
package compat

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-version"

	"github.com/satishbabariya/pure-orm/driver"
)

// Oldest supported releases. SQLite enforces foreign keys from 3.6.19 on;
// MySQL defaults to InnoDB from 5.5 on.
var minimums = map[driver.Dialect]*version.Version{
	driver.MySQL:  version.Must(version.NewVersion("5.5.0")),
	driver.SQLite: version.Must(version.NewVersion("3.6.19")),
}

// Report is the outcome of a version check.
type Report struct {
	Dialect   driver.Dialect
	Raw       string
	Version   *version.Version
	Minimum   *version.Version
	Supported bool
}

// Parse reads the numeric part of an engine version string, so that
// "8.0.36-0ubuntu0.22.04.1" and "10.11.6-MariaDB-1:10.11.6+maria~ubu2204"
// both parse.
func Parse(raw string) (*version.Version, error) {
	raw = strings.TrimSpace(raw)
	end := strings.IndexFunc(raw, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})
	core := raw
	if end >= 0 {
		core = raw[:end]
	}
	core = strings.TrimRight(core, ".")
	if core == "" {
		return nil, fmt.Errorf("invalid server version %q", raw)
	}

	v, err := version.NewVersion(core)
	if err != nil {
		return nil, fmt.Errorf("invalid server version %q: %w", raw, err)
	}
	return v, nil
}

// Check compares the version reported by an engine with its minimum.
func Check(d driver.Dialect, raw string) (*Report, error) {
	min, ok := minimums[d]
	if !ok {
		return nil, fmt.Errorf("%w: %s", driver.ErrUnknownDialect, d)
	}

	v, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	return &Report{
		Dialect:   d,
		Raw:       raw,
		Version:   v,
		Minimum:   min,
		Supported: v.GreaterThanOrEqual(min),
	}, nil
}

// String summarizes the report on one line.
func (r *Report) String() string {
	if r.Supported {
		return fmt.Sprintf("%s %s (minimum %s)", r.Dialect, r.Version, r.Minimum)
	}
	return fmt.Sprintf("%s %s is older than the supported minimum %s", r.Dialect, r.Version, r.Minimum)
}
