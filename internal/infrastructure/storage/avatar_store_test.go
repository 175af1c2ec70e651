package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectPath(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{"keeps lowercased extension", "Me.PNG", "avatars/u1/abc.png"},
		{"no extension", "avatar", "avatars/u1/abc"},
		{"drops suspicious extension", "x.verylongext", "avatars/u1/abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, objectPath("u1", "abc", tt.filename))
		})
	}
}
