package config

import (
	"testing"
	"time"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("BUBBLES_TEST_STR", "hello")
	if got := GetEnv("BUBBLES_TEST_STR", "x"); got != "hello" {
		t.Errorf("GetEnv = %q, want hello", got)
	}
	if got := GetEnv("BUBBLES_TEST_MISSING", "x"); got != "x" {
		t.Errorf("GetEnv missing = %q, want x", got)
	}
}

func TestTypedLookups(t *testing.T) {
	t.Setenv("BUBBLES_TEST_INT", "42")
	t.Setenv("BUBBLES_TEST_BAD", "nope")
	t.Setenv("BUBBLES_TEST_SEED", "4000000000")
	t.Setenv("BUBBLES_TEST_BOOL", "true")
	t.Setenv("BUBBLES_TEST_DUR", "45ms")

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"int", GetEnvInt("BUBBLES_TEST_INT", 1), 42},
		{"int unparsable", GetEnvInt("BUBBLES_TEST_BAD", 1), 1},
		{"int missing", GetEnvInt("BUBBLES_TEST_NONE", 7), 7},
		{"uint32", GetEnvUint32("BUBBLES_TEST_SEED", 1), uint32(4000000000)},
		{"uint32 unparsable", GetEnvUint32("BUBBLES_TEST_BAD", 3), uint32(3)},
		{"bool", GetEnvBool("BUBBLES_TEST_BOOL", false), true},
		{"bool unparsable", GetEnvBool("BUBBLES_TEST_BAD", true), true},
		{"duration", GetEnvDuration("BUBBLES_TEST_DUR", time.Second), 45 * time.Millisecond},
		{"duration unparsable", GetEnvDuration("BUBBLES_TEST_BAD", time.Second), time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}
