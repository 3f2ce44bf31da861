package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetWorkersClamps(t *testing.T) {
	defer SetWorkers(GetWorkers())

	cases := map[int]int{-3: 1, 0: 1, 1: 1, 8: 8, 64: 64, 500: 64}
	for in, want := range cases {
		SetWorkers(in)
		assert.Equal(t, want, GetWorkers(), "SetWorkers(%d)", in)
	}
}

func TestSetThumbnailSizeClamps(t *testing.T) {
	defer SetThumbnailSize(GetThumbnailSize())

	cases := map[int]int{0: 64, 64: 64, 300: 300, 4096: 4096, 10000: 4096}
	for in, want := range cases {
		SetThumbnailSize(in)
		assert.Equal(t, want, GetThumbnailSize(), "SetThumbnailSize(%d)", in)
	}
}
