// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "no marker", in: "Ensure auditing is enabled", want: "Ensure auditing is enabled"},
		{name: "trailing marker", in: "Audit: Page 12", want: "Audit: "},
		{name: "case insensitive", in: "PAGE 3 of the guide", want: " of the guide"},
		{name: "multiple spaces before number", in: "x Page   100 y", want: "x  y"},
		{name: "two markers", in: "Page 1 Page 2", want: " "},
		{name: "word without number kept", in: "Page setup", want: "Page setup"},
		{name: "embedded word not matched", in: "Homepage 4", want: "Homepage 4"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanLine(tt.in))
		})
	}
}

func TestCleanLineIdempotent(t *testing.T) {
	for _, in := range []string{"Audit: Page 12", "page 9 page 10 done", "plain"} {
		once := CleanLine(in)
		assert.Equal(t, once, CleanLine(once), in)
	}
}

func TestLines(t *testing.T) {
	got := Lines("1.1 Title Page 4\r\nDescription:\n\nPage 5")
	assert.Equal(t, []string{"1.1 Title ", "Description:", "", ""}, got)
}
