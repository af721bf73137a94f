package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString_IncludesBuildInformation(t *testing.T) {
	t.Parallel()

	got := String()
	assert.Contains(t, got, "marquee "+Version)
	assert.Contains(t, got, "commit "+CommitHash)
	assert.Contains(t, got, "built "+BuildDate)
}
