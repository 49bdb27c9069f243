// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"
)

func TestStampInfo(t *testing.T) {
	tests := []struct {
		name  string
		stamp stamp
		want  string
	}{
		{"clean", stamp{commit: "abc1234", time: "2026-01-01T00:00:00Z"}, Version + " (abc1234, 2026-01-01T00:00:00Z)"},
		{"dirty", stamp{commit: "abc1234", dirty: true, time: "unknown"}, Version + " (abc1234-dirty, unknown)"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.stamp.info(); got != test.want {
				t.Errorf("info() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestFromSettings(t *testing.T) {
	settings := []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.modified", Value: "true"},
		{Key: "vcs.time", Value: "2026-03-04T05:06:07Z"},
		{Key: "GOOS", Value: "linux"},
	}
	got := fromSettings(stamp{commit: "unknown", time: "unknown"}, settings)
	want := stamp{commit: "0123456", dirty: true, time: "2026-03-04T05:06:07Z"}
	if got != want {
		t.Errorf("fromSettings = %+v, want %+v", got, want)
	}
}

func TestFromSettingsKeepsInjectedTime(t *testing.T) {
	settings := []debug.BuildSetting{{Key: "vcs.time", Value: "2026-03-04T05:06:07Z"}}
	got := fromSettings(stamp{commit: "unknown", time: "2026-01-01"}, settings)
	if got.time != "2026-01-01" {
		t.Errorf("time = %q, want the injected value", got.time)
	}
}

func TestFull(t *testing.T) {
	full := Full()
	if !strings.HasPrefix(full, Info()) {
		t.Errorf("Full() = %q does not start with Info()", full)
	}
	if !strings.Contains(full, runtime.GOOS+"/"+runtime.GOARCH) {
		t.Errorf("Full() = %q is missing the platform", full)
	}
}

func TestShort(t *testing.T) {
	if Short() != Version {
		t.Errorf("Short() = %q, want %q", Short(), Version)
	}
}
