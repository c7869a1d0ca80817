package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegenerateAlwaysYieldsDistinctRefs(t *testing.T) {
	c := NewChallengeState()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		c.Regenerate()
		ref := c.ImageRef()
		require.NotEmpty(t, ref)
		require.False(t, seen[ref], "reference %q repeated", ref)
		seen[ref] = true
	}
}

func TestResetClearsImageAndResponse(t *testing.T) {
	c := NewChallengeState()
	c.Regenerate()
	c.SetResponse("123456")

	c.Reset()
	assert.Empty(t, c.ImageRef())
	assert.Empty(t, c.Response())
}

func TestClearResponseKeepsImage(t *testing.T) {
	c := NewChallengeState()
	c.Regenerate()
	ref := c.ImageRef()
	c.SetResponse("123456")

	c.ClearResponse()
	assert.Empty(t, c.Response())
	assert.Equal(t, ref, c.ImageRef())
}

func TestSelectionRejectsBookedSeat(t *testing.T) {
	s := NewSelectionState()

	err := s.Select(Seat{ID: "B1", Row: 2, Col: 1, IsBooked: true})
	require.ErrorIs(t, err, ErrValidationBlocked)
	assert.False(t, s.Valid())

	require.NoError(t, s.Select(Seat{ID: "B2", Row: 2, Col: 2}))
	assert.Equal(t, "B2", s.SeatID())
	assert.True(t, s.Valid())

	s.Clear()
	assert.False(t, s.Valid())
	assert.Empty(t, s.SeatID())
}
