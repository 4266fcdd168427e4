// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short", "blowin", 10, "blowin"},
		{"exact", "hard-rain", 9, "hard-rain"},
		{"ascii", "peaches en regalia", 10, "peaches..."},
		{"multibyte", "It’s Alright, Ma (I’m Only Bleeding)", 8, "It’s ..."},
		{"all multibyte", "ééééééé", 6, "ééé..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.n)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
			assert.LessOrEqual(t, utf8.RuneCountInString(got), tt.n)
		})
	}
}
