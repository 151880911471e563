package platform

import (
	"runtime"
	"strings"
	"testing"
)

func TestDescribe(t *testing.T) {
	info := Describe()
	if info.OS != runtime.GOOS || info.Arch != runtime.GOARCH {
		t.Fatalf("unexpected info: %#v", info)
	}
	if info.Version == "" {
		t.Fatal("expected a version or the unknown placeholder")
	}
	if !strings.HasPrefix(info.String(), runtime.GOOS+"/"+runtime.GOARCH+" ") {
		t.Fatalf("unexpected string form %q", info.String())
	}
}
