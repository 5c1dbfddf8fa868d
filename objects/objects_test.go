package objects_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selkit/objects"
)

func TestRectangle_Area(t *testing.T) {
	r := objects.NewRectangle(10, 20)
	assert.Equal(t, 10.0, r.Width)
	assert.Equal(t, 20.0, r.Height)
	assert.Equal(t, 200.0, r.Area())

	r.Width = 3
	assert.Equal(t, 60.0, r.Area(), "area is computed from current fields")
}

func TestCircle_Area(t *testing.T) {
	c := objects.NewCircle(2)
	assert.InDelta(t, 4*math.Pi, c.Area(), 1e-9)
}

func TestShapes(t *testing.T) {
	shapes := []objects.Shape{objects.NewRectangle(2, 3), objects.NewCircle(1)}
	var total float64
	for _, s := range shapes {
		total += s.Area()
	}
	assert.InDelta(t, 6+math.Pi, total, 1e-9)
}

func TestToJSON(t *testing.T) {
	text, err := objects.ToJSON([]int{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, "[1,2,3]", text)

	text, err = objects.ToJSON(objects.NewRectangle(10, 20))
	require.NoError(t, err)
	assert.JSONEq(t, `{"width":10,"height":20}`, text)

	text, err = objects.ToJSON(map[string]any{"height": 10, "width": 20})
	require.NoError(t, err)
	assert.JSONEq(t, `{"height":10,"width":20}`, text)
}

func TestToJSON_Unsupported(t *testing.T) {
	_, err := objects.ToJSON(make(chan int))
	assert.Error(t, err)
}

func TestFromJSON(t *testing.T) {
	r, err := objects.FromJSON[objects.Rectangle](`{"width":10,"height":20}`)
	require.NoError(t, err)
	assert.Equal(t, 200.0, r.Area())

	c, err := objects.FromJSON[objects.Circle](`{"radius":10}`)
	require.NoError(t, err)
	assert.InDelta(t, 100*math.Pi, c.Area(), 1e-9)
}

func TestFromJSON_RoundTrip(t *testing.T) {
	text, err := objects.ToJSON(objects.NewRectangle(1.5, 4))
	require.NoError(t, err)

	r, err := objects.FromJSON[objects.Rectangle](text)
	require.NoError(t, err)
	assert.Equal(t, objects.NewRectangle(1.5, 4), r)
}

func TestFromJSON_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"malformed", `{"width":`},
		{"not an object", `[1, 2]`},
		{"null", `null`},
		{"unknown field", `{"radius":1}`},
		{"wrong type", `{"width":"wide","height":2}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := objects.FromJSON[objects.Rectangle](tt.text)
			assert.Error(t, err)
		})
	}
}
