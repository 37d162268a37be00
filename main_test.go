package main

import (
	"testing"
)

func TestNewLogger(t *testing.T) {
	testCases := []struct {
		level   string
		wantErr bool
	}{
		{level: "info"},
		{level: "DEBUG"},
		{level: "warn"},
		{level: "verbose", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			logger, err := newLogger(tc.level)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("newLogger(%q) succeeded, want an error", tc.level)
				}
				return
			}

			if err != nil || logger == nil {
				t.Fatalf("newLogger(%q) failed: %v", tc.level, err)
			}
		})
	}
}

func TestRoles(t *testing.T) {
	seen := make(map[string]bool)
	for _, r := range roles {
		if seen[r.name] {
			t.Fatalf("role %q registered twice", r.name)
		}
		seen[r.name] = true

		if r.run == nil || r.description == "" {
			t.Fatalf("role %q is incomplete", r.name)
		}
	}

	for _, name := range []string{"relay", "recorder"} {
		if !seen[name] {
			t.Fatalf("role %q missing", name)
		}
	}
}
