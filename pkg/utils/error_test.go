package utils

import "testing"

func TestTruncateError(t *testing.T) {
	if got := TruncateError("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := TruncateError("line one\nline two", 100); got != "line one line two" {
		t.Errorf("got %q", got)
	}
	if got := TruncateError("abcdefghij", 8); got != "abcde..." {
		t.Errorf("got %q", got)
	}
}
