package misc

import "testing"

func TestIdentity(t *testing.T) {
	if GetAppName() != "selkit" {
		t.Errorf("GetAppName() = %q", GetAppName())
	}
	if GetVersion() == "" {
		t.Error("GetVersion() returned empty string")
	}
	if h := GetGitHash(); h == "" || len(h) > 13 {
		t.Errorf("GetGitHash() = %q", h)
	}
}
