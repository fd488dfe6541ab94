package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_IdenticalPoints(t *testing.T) {
	assert.Equal(t, 0.0, Distance(37.7749, -122.4194, 37.7749, -122.4194))
	assert.Equal(t, 0.0, Distance(0, 0, 0, 0))
}

func TestDistance_Symmetry(t *testing.T) {
	cases := [][4]float64{
		{37.7749, -122.4194, 40.7128, -74.0060},
		{6.5244, 3.3792, 9.0765, 7.3986},
		{-33.8688, 151.2093, 51.5074, -0.1278},
	}

	for _, c := range cases {
		ab := Distance(c[0], c[1], c[2], c[3])
		ba := Distance(c[2], c[3], c[0], c[1])
		assert.InDelta(t, ab, ba, 1e-9)
	}
}

func TestDistance_OneDegreeAtEquator(t *testing.T) {
	// One degree of longitude and one degree of latitude at the equator are
	// both ~111.19 km.
	lonDeg := Distance(0, 0, 0, 1)
	latDeg := Distance(0, 0, 1, 0)

	assert.InEpsilon(t, 111.19, lonDeg, 0.005)
	assert.InEpsilon(t, 111.19, latDeg, 0.005)
}

func TestDistance_KnownCityPair(t *testing.T) {
	// San Francisco to Los Angeles, roughly 559 km.
	d := Distance(37.7749, -122.4194, 34.0522, -118.2437)
	assert.InDelta(t, 559, d, 5)
}

func TestDistance_NonNegative(t *testing.T) {
	assert.GreaterOrEqual(t, Distance(89.9, 179.9, -89.9, -179.9), 0.0)
}
