package amplet

import (
	"testing"

	"github.com/blang/semver/v4"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	assert := require.New(t)

	assert.NoError(Version.Validate())

	// pre-1.0; serialization formats may still change between minor versions
	min, err := semver.ParseTolerant("0.4")
	assert.NoError(err)
	if Version.Compare(min) < 0 {
		t.Fatal("Version is behind the documented minimum")
	}
}
