package auth

import "testing"

func TestEmptyAllowlistAdmitsEveryone(t *testing.T) {
	s := New(nil)
	if !s.IsAllowed(42) {
		t.Fatalf("empty allowlist should admit everyone")
	}
}

func TestAllowlist(t *testing.T) {
	s := New([]int64{1, 2})
	if !s.IsAllowed(1) || !s.IsAllowed(2) {
		t.Fatalf("listed users should be allowed")
	}
	if s.IsAllowed(3) {
		t.Fatalf("unlisted user should be rejected")
	}
}
