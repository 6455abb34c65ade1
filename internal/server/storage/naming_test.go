package storage

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"
)

var timestampNamePattern = regexp.MustCompile(`^(\d+)-(\d+)-(.+)$`)

func TestTimestampNamer(t *testing.T) {
	t.Run("matches timestamp-random-original shape", func(t *testing.T) {
		name := TimestampNamer{}.Name("report.pdf")

		m := timestampNamePattern.FindStringSubmatch(name)
		if m == nil {
			t.Fatalf("name %q does not match <ms>-<rand>-<original>", name)
		}
		if m[3] != "report.pdf" {
			t.Errorf("expected original name suffix, got %q", m[3])
		}

		ms, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			t.Fatalf("timestamp segment not numeric: %v", err)
		}
		now := time.Now().UnixMilli()
		if ms < now-time.Minute.Milliseconds() || ms > now+time.Minute.Milliseconds() {
			t.Errorf("timestamp %d not near now %d", ms, now)
		}

		r, err := strconv.Atoi(m[2])
		if err != nil {
			t.Fatalf("random segment not numeric: %v", err)
		}
		if r < 0 || r >= 1_000_000_000 {
			t.Errorf("random segment %d out of [0, 1e9)", r)
		}
	})

	t.Run("preserves hyphenated original names", func(t *testing.T) {
		name := TimestampNamer{}.Name("my-notes-v2.txt")
		if !strings.HasSuffix(name, "-my-notes-v2.txt") {
			t.Errorf("expected original name suffix, got %q", name)
		}
	})
}

func TestUUIDNamer(t *testing.T) {
	t.Run("preserves original name suffix", func(t *testing.T) {
		name := UUIDNamer{}.Name("report.pdf")
		if !strings.HasSuffix(name, "-report.pdf") {
			t.Errorf("expected original name suffix, got %q", name)
		}
	})

	t.Run("generates unique names", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			name := UUIDNamer{}.Name("same.txt")
			if seen[name] {
				t.Fatalf("duplicate name generated: %s", name)
			}
			seen[name] = true
		}
	})
}

func TestNamerFor(t *testing.T) {
	if _, ok := NamerFor("uuid").(UUIDNamer); !ok {
		t.Error("expected UUIDNamer for scheme uuid")
	}
	if _, ok := NamerFor("timestamp").(TimestampNamer); !ok {
		t.Error("expected TimestampNamer for scheme timestamp")
	}
	if _, ok := NamerFor("bogus").(TimestampNamer); !ok {
		t.Error("expected TimestampNamer fallback for unknown scheme")
	}
}
