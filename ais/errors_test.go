package ais_test

import (
	"testing"

	"aisgo/ais"

	"github.com/stretchr/testify/assert"
)

func TestInvalidProviderError(t *testing.T) {
	err := &ais.InvalidProviderError{Provider: ais.ProviderAmazon}
	assert.EqualError(t, err, `invalid bucket provider "aws"`)
}

func TestHTTPError(t *testing.T) {
	err := &ais.HTTPError{
		Status:  404,
		Method:  "HEAD",
		Path:    "buckets/bck",
		Message: `bucket "bck" does not exist`,
	}
	assert.EqualError(t, err, `HEAD /v1/buckets/bck failed: 404 bucket "bck" does not exist`)
}
