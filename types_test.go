package vflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-theft-auto/vflow"
)

func TestRectContains(t *testing.T) {
	r := vflow.Rect{X: 10, Y: 10, W: 20, H: 5}

	tests := []struct {
		name string
		p    vflow.Vec2
		want bool
	}{
		{"inside", vflow.Vec2{X: 15, Y: 12}, true},
		{"top-left edge", vflow.Vec2{X: 10, Y: 10}, true},
		{"right edge excluded", vflow.Vec2{X: 30, Y: 12}, false},
		{"bottom edge excluded", vflow.Vec2{X: 15, Y: 15}, false},
		{"above", vflow.Vec2{X: 15, Y: 9}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Contains(tt.p))
		})
	}
}

func TestRectTranslate(t *testing.T) {
	r := vflow.Rect{X: 1, Y: 2, W: 3, H: 4}.Translate(10, -2)
	assert.Equal(t, vflow.Rect{X: 11, Y: 0, W: 3, H: 4}, r)
}

func TestRGBA(t *testing.T) {
	assert.Equal(t, vflow.ColorWhite, vflow.RGBA(255, 255, 255, 255))
	assert.Equal(t, uint32(0xFF0000FF), vflow.RGBA(255, 0, 0, 255))
}
