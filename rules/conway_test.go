package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyConwayRules(t *testing.T) {
	for n := 0; n <= 8; n++ {
		assert.Equal(t, n == 2 || n == 3, ApplyConwayRules(n, true), "alive with %d neighbors", n)
		assert.Equal(t, n == 3, ApplyConwayRules(n, false), "dead with %d neighbors", n)
	}
}
