// Package objects holds plain data shapes with computed properties and
// helpers to move them to and from JSON text.
package objects

import (
	"bytes"
	"fmt"
	"math"

	json "github.com/goccy/go-json"
)

// Shape is anything with a computed area.
type Shape interface {
	Area() float64
}

type Rectangle struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func NewRectangle(width, height float64) *Rectangle {
	return &Rectangle{Width: width, Height: height}
}

func (r *Rectangle) Area() float64 {
	return r.Width * r.Height
}

type Circle struct {
	Radius float64 `json:"radius"`
}

func NewCircle(radius float64) *Circle {
	return &Circle{Radius: radius}
}

func (c *Circle) Area() float64 {
	return math.Pi * c.Radius * c.Radius
}

// ToJSON serializes value to JSON text.
func ToJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("unable to serialize %T: %w", v, err)
	}
	return string(data), nil
}

// FromJSON parses text into a generic object first and then builds T from
// its fields. Fields T does not declare are rejected, so text produced from
// a different shape does not silently turn into a zero value.
func FromJSON[T any](text string) (*T, error) {
	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("unable to parse JSON text: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("unable to parse JSON text: object expected")
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("unable to re-encode parsed object: %w", err)
	}
	out := new(T)
	dec = json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return nil, fmt.Errorf("unable to build %T: %w", *out, err)
	}
	return out, nil
}
