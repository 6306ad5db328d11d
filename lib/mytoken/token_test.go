package mytoken

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigest(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		digest string
	}{
		{
			name:   "test example",
			token:  "05796efe18af079dc654bb88c68f5cd8b8a5d378e7cec8e9856258f95d3b0b5a",
			digest: "A-Y4cHhqIJi48r-V_cKdDRzlMJmC8zk_hlBBvOEE-A0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.digest, Digest(tt.token))
		})
	}
}

func TestNew(t *testing.T) {
	first, err := New()
	assert.NoError(t, err)
	assert.Len(t, first, 2*tokenSizeInBytes)

	second, err := New()
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}
