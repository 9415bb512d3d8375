package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetBuildInfo(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "v1.2.3-rc1"
	info := GetBuildInfo()

	assert.Equal(t, "v1.2.3-rc1", info.Version)
	assert.Equal(t, "1.2.3", info.SemVer)
	assert.Equal(t, runtime.Version(), info.GoVersion)
}

func TestFullVersion(t *testing.T) {
	out := FullVersion()

	assert.Contains(t, out, "confpiler "+Version)
	assert.Contains(t, out, "Platform:     "+runtime.GOOS+"/"+runtime.GOARCH)
}
