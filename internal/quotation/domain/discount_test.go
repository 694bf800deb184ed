package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveDiscountPercent(t *testing.T) {
	// An explicit percentage always wins.
	assert.Equal(t, 15.0, EffectiveDiscountPercent(80000, 0, 15))
	assert.Equal(t, 15.0, EffectiveDiscountPercent(80000, 20000, 15))

	// Absolute discount against the reconstructed pre-discount base.
	assert.Equal(t, 20.0, EffectiveDiscountPercent(80000, 20000, 0))

	// No derivable discount.
	assert.Equal(t, 0.0, EffectiveDiscountPercent(0, 0, 0))
	assert.Equal(t, 0.0, EffectiveDiscountPercent(0, 20000, 0))
	assert.Equal(t, 0.0, EffectiveDiscountPercent(80000, 0, 0))
	assert.Equal(t, 0.0, EffectiveDiscountPercent(-1, -1, 0))
}
