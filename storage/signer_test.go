package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanKey(t *testing.T) {
	cases := map[string]string{
		"product/abc.png": "product/abc.png",
		"https://s3.eu-west-1.amazonaws.com/deligo.image/product/abc.png": "product/abc.png",
		"http://cdn.example.com/bucket/profile/1.jpg":                     "profile/1.jpg",
	}
	for in, want := range cases {
		assert.Equal(t, want, CleanKey(in))
	}
}

func TestDisplayURLEmptyKey(t *testing.T) {
	url, err := DisplayURL(context.Background(), "")
	assert.NoError(t, err)
	assert.Empty(t, url)
}
