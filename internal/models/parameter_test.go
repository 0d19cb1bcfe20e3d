package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameter_InBounds(t *testing.T) {
	tests := []struct {
		name  string
		param Parameter
		value float32
		want  bool
	}{
		{
			name:  "within both bounds",
			param: Parameter{MinValue: float32Ptr(0), MaxValue: float32Ptr(1000)},
			value: 500,
			want:  true,
		},
		{
			name:  "equal to lower bound",
			param: Parameter{MinValue: float32Ptr(0), MaxValue: float32Ptr(1000)},
			value: 0,
			want:  true,
		},
		{
			name:  "equal to upper bound",
			param: Parameter{MinValue: float32Ptr(0), MaxValue: float32Ptr(1000)},
			value: 1000,
			want:  true,
		},
		{
			name:  "below lower bound",
			param: Parameter{MinValue: float32Ptr(1000), MaxValue: float32Ptr(8000)},
			value: 999,
			want:  false,
		},
		{
			name:  "above upper bound",
			param: Parameter{MinValue: float32Ptr(0), MaxValue: float32Ptr(1000)},
			value: 1001,
			want:  false,
		},
		{
			name:  "no bounds",
			param: Parameter{},
			value: -123456,
			want:  true,
		},
		{
			name:  "only lower bound",
			param: Parameter{MinValue: float32Ptr(10)},
			value: 5,
			want:  false,
		},
		{
			name:  "only upper bound",
			param: Parameter{MaxValue: float32Ptr(10)},
			value: 5,
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.param.InBounds(tt.value))
		})
	}
}

func TestDefaultParameters(t *testing.T) {
	params := DefaultParameters()

	require.Len(t, params, 4)

	thrMin, ok := params["THR_MIN"]
	require.True(t, ok)
	assert.Equal(t, float32(130.0), thrMin.Value)
	assert.Equal(t, "INT16", thrMin.ParamType)
	require.NotNil(t, thrMin.Units)
	assert.Equal(t, "PWM", *thrMin.Units)

	angleMax, ok := params["ANGLE_MAX"]
	require.True(t, ok)
	assert.Equal(t, float32(4500.0), angleMax.Value)
	require.NotNil(t, angleMax.MinValue)
	assert.Equal(t, float32(1000.0), *angleMax.MinValue)

	// Every default is a valid value for its own bounds
	for id, p := range params {
		assert.True(t, p.InBounds(p.Value), "default for %s violates its own bounds", id)
		assert.Equal(t, id, p.ID)
	}
}

func TestDefaultParameters_ReturnsFreshMap(t *testing.T) {
	first := DefaultParameters()
	first["THR_MIN"] = Parameter{ID: "THR_MIN", Value: 999}

	second := DefaultParameters()
	assert.Equal(t, float32(130.0), second["THR_MIN"].Value)
}
