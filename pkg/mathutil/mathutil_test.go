package mathutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cyclus-go/cyclus/pkg/mathutil"
)

func TestApproxEqual(t *testing.T) {
	assert.True(t, mathutil.ApproxEqual(1.0, 1.0+1e-12, mathutil.DefaultEpsilon))
	assert.False(t, mathutil.ApproxEqual(1.0, 1.1, mathutil.DefaultEpsilon))
	assert.True(t, mathutil.ApproxEqual(0, 1e-15, mathutil.DefaultEpsilon))
}

func TestGreaterOrEqual(t *testing.T) {
	assert.True(t, mathutil.GreaterOrEqual(3, 2, mathutil.DefaultEpsilon))
	assert.True(t, mathutil.GreaterOrEqual(2, 2, mathutil.DefaultEpsilon))
	assert.False(t, mathutil.GreaterOrEqual(1, 2, mathutil.DefaultEpsilon))
}

func TestMinMaxFloat(t *testing.T) {
	assert.Equal(t, 2.0, mathutil.MinFloat(2, 5))
	assert.Equal(t, 5.0, mathutil.MaxFloat(2, 5))
}

func TestMin3(t *testing.T) {
	assert.Equal(t, 1, mathutil.Min3(3, 1, 2))
}
