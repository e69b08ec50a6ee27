package status

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryStatusHasLabelAndColor(t *testing.T) {
	all := append(All(), Blocked)
	for _, s := range all {
		label, err := Text(s)
		require.NoError(t, err, s)
		assert.NotEmpty(t, label, s)

		color, err := ColorClass(s)
		require.NoError(t, err, s)
		assert.NotEmpty(t, color, s)
	}
}

func TestUnknownStatusLookupsFail(t *testing.T) {
	_, err := Text("PROFILE_PENDING_MAYBE")
	assert.ErrorIs(t, err, ErrUnknownStatus)

	_, err = ColorClass("")
	assert.ErrorIs(t, err, ErrUnknownStatus)

	_, err = Parse("paid")
	assert.ErrorIs(t, err, ErrUnknownStatus)

	_, ok := OrderIndex("SOMETHING_ELSE")
	assert.False(t, ok)
}

func TestOrderIsContiguous(t *testing.T) {
	for _, s := range All() {
		if s == NewUser {
			continue
		}
		prev, err := Predecessor(s)
		require.NoError(t, err, s)

		pi, ok := OrderIndex(prev)
		require.True(t, ok)
		si, ok := OrderIndex(s)
		require.True(t, ok)
		assert.Equal(t, si-1, pi, "predecessor of %s", s)
	}
}

func TestBlockedHasNoOrderIndex(t *testing.T) {
	_, ok := OrderIndex(Blocked)
	assert.False(t, ok)

	_, err := Predecessor(Blocked)
	assert.ErrorIs(t, err, ErrNoPreviousStatus)
}

func TestNewUserHasNoPredecessor(t *testing.T) {
	_, err := Predecessor(NewUser)
	assert.ErrorIs(t, err, ErrNoPreviousStatus)
}

func TestAlumniHasNoSuccessor(t *testing.T) {
	_, err := Successor(Alumni)
	var ite *IllegalTransitionError
	assert.True(t, errors.As(err, &ite))
}

func TestParseRoundTrip(t *testing.T) {
	for _, s := range append(All(), Blocked) {
		got, err := Parse(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}
