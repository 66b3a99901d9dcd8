package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectNumber(t *testing.T) {
	cases := map[uint]string{
		1:       "P-1",
		10:      "P-10",
		1234567: "P-1234567",
	}
	for key, want := range cases {
		assert.Equal(t, want, ProjectNumber(key))
	}
}
