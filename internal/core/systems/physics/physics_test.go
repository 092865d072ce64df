package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockSize(t *testing.T) {
	assert.Equal(t, 0.5, BlockSize(SizeSmall))
	assert.Equal(t, 2.5, BlockSize(SizeLarge))
	assert.Equal(t, 0.5, BlockSize(SizeClass(42)))
}

func TestScaledLength(t *testing.T) {
	d := Vec3i{X: 3, Y: 4}.Sub(Vec3i{})

	assert.InDelta(t, 2.5, d.Scale(SmallBlockSize).Length(), 1e-12)
	assert.InDelta(t, 12.5, d.Scale(LargeBlockSize).Length(), 1e-12)
	assert.Equal(t, Vec3i{X: -3, Y: -4}, Vec3i{}.Sub(d))
}

func TestIsZero(t *testing.T) {
	assert.True(t, Vec3i{}.IsZero())
	assert.True(t, Vec3i{X: 2, Y: -1, Z: 7}.Sub(Vec3i{X: 2, Y: -1, Z: 7}).IsZero())
	assert.False(t, Vec3i{Z: 1}.IsZero())
}

func TestParseSizeClass(t *testing.T) {
	s, ok := ParseSizeClass("large")
	assert.True(t, ok)
	assert.Equal(t, SizeLarge, s)
	assert.Equal(t, "large", s.String())

	_, ok = ParseSizeClass("medium")
	assert.False(t, ok)
}
