package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	v, sha, built := Version, GitSHA, BuildTime
	t.Cleanup(func() { Version, GitSHA, BuildTime = v, sha, built })

	assert.Equal(t, "dev (git unknown, built unknown)", String())

	Version, GitSHA, BuildTime = "0.3.0", "abc1234", "2024-05-01T10:00:00Z"
	assert.Equal(t, "0.3.0 (git abc1234, built 2024-05-01T10:00:00Z)", String())
}
