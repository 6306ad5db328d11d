package mystore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type Favorite struct {
	UID string
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, "Favorite", kindOf[Favorite]())
	assert.Equal(t, "string", kindOf[string]())
}
