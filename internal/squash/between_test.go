package squash

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/masmgr/smartsquash-go/internal/git"
)

func TestBetween(t *testing.T) {
	commits := []git.Commit{{SHA: "a"}, {SHA: "b"}, {SHA: "c"}, {SHA: "d"}, {SHA: "e"}}

	tests := []struct {
		name string
		a, b string
		want []string
	}{
		{name: "Forward", a: "a", b: "d", want: []string{"b", "c"}},
		{name: "Backward", a: "d", b: "a", want: []string{"b", "c"}},
		{name: "Adjacent", a: "b", b: "c", want: []string{}},
		{name: "Same", a: "c", b: "c", want: []string{}},
		{name: "Ends", a: "a", b: "e", want: []string{"b", "c", "d"}},
		{name: "MissingFirst", a: "x", b: "c", want: []string{}},
		{name: "MissingSecond", a: "a", b: "x", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Between(tt.a, tt.b, commits)
			assert.Equal(t, tt.want, append([]string{}, shas(got)...))
		})
	}
}

func TestBetween_EmptySequence(t *testing.T) {
	assert.Empty(t, Between("a", "b", nil))
}
