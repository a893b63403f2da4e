package version

import (
	"strings"
	"testing"
)

func saveAndRestore() func() {
	origVersion, origCommit, origBuildTime := Version, GitCommit, BuildTime
	return func() {
		Version = origVersion
		GitCommit = origCommit
		BuildTime = origBuildTime
	}
}

func TestGet_Defaults(t *testing.T) {
	defer saveAndRestore()()
	Version, GitCommit, BuildTime = "dev", "", ""

	info := Get()
	if info.Version != "dev" {
		t.Fatalf("expected dev, got %q", info.Version)
	}
	if info.IsRelease {
		t.Fatal("dev must not be a release")
	}
}

func TestGet_Release(t *testing.T) {
	defer saveAndRestore()()
	Version, GitCommit, BuildTime = "1.2.0", "abc1234", "2026-01-15T10:30:00Z"

	info := Get()
	if !info.IsRelease {
		t.Fatal("1.2.0 must be a release")
	}
	if info.GitCommit != "abc1234" {
		t.Fatalf("expected abc1234, got %q", info.GitCommit)
	}
	if info.BuildDate.Year() != 2026 {
		t.Fatalf("expected build year 2026, got %d", info.BuildDate.Year())
	}
}

func TestGet_DirtyVersionNotRelease(t *testing.T) {
	defer saveAndRestore()()
	Version = "1.2.0-dirty"

	if Get().IsRelease {
		t.Fatal("dirty versions must not be releases")
	}
}

func TestShort(t *testing.T) {
	defer saveAndRestore()()
	Version, GitCommit, BuildTime = "1.2.0", "abc1234", ""

	if sv := Short(); sv != "1.2.0-abc1234" {
		t.Fatalf("expected 1.2.0-abc1234, got %q", sv)
	}

	GitCommit = ""
	if sv := Short(); !strings.HasPrefix(sv, "1.2.0") {
		t.Fatalf("expected bare version, got %q", sv)
	}
}
