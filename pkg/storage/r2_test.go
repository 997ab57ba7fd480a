package storage

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageKey(t *testing.T) {
	key := ImageKey(".WEBP")
	assert.Regexp(t, regexp.MustCompile(`^products/[0-9a-f-]{36}\.webp$`), key)
	assert.NotEqual(t, key, ImageKey(".webp"))
}
