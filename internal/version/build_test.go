package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromBuild(t *testing.T) {
	v := FromBuild()

	assert.Equal(t, runtime.Version(), v.GoVersion)
	assert.Equal(t, runtime.Compiler, v.Compiler)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, v.Platform)
	assert.False(t, v.IsRelease())
}

func TestVersion_Fields(t *testing.T) {
	v := Version{Version: "1.2.3", GitCommit: "abc"}
	fields := v.Fields()

	assert.Len(t, fields, 7)
	assert.Equal(t, [2]string{"version", "1.2.3"}, fields[len(fields)-1])
	assert.Contains(t, fields, [2]string{"gitCommit", "abc"})
	assert.True(t, v.IsRelease())
}
