package recovery_test

import (
	"testing"

	apperrors "github.com/jrsteele09/speet-admin/internal/errors"
	"github.com/jrsteele09/speet-admin/recovery"
	"github.com/stretchr/testify/require"
)

func TestCode_InputAdvances(t *testing.T) {
	var c recovery.Code
	focus := 0
	for _, d := range []string{"1", "2", "3", "4", "5"} {
		next := c.Input(focus, d)
		require.Equal(t, focus+1, next)
		focus = next
	}
	require.False(t, c.Complete())

	require.Equal(t, 5, c.Input(5, "6"), "last position keeps focus")
	require.True(t, c.Complete())
	require.Equal(t, "123456", c.String())
}

func TestCode_InputRejectsNonDigits(t *testing.T) {
	var c recovery.Code
	require.Equal(t, 2, c.Input(2, "x"))
	require.Equal(t, "", c[2])

	require.Equal(t, 3, c.Input(2, "47"), "only the last character is kept")
	require.Equal(t, "7", c[2])

	require.Equal(t, 2, c.Input(2, ""))
	require.Equal(t, "", c[2])
}

func TestCode_Backspace(t *testing.T) {
	var c recovery.Code
	c.Input(0, "1")
	c.Input(1, "2")

	t.Run("filled position clears in place", func(t *testing.T) {
		require.Equal(t, 1, c.Backspace(1))
		require.Equal(t, "", c[1])
	})

	t.Run("empty position retreats", func(t *testing.T) {
		require.Equal(t, 1, c.Backspace(2))
		require.Equal(t, "1", c[0], "retreating does not clear the previous digit")
	})

	t.Run("first position stays", func(t *testing.T) {
		var empty recovery.Code
		require.Equal(t, 0, empty.Backspace(0))
	})

	t.Run("out of range clamps", func(t *testing.T) {
		require.Equal(t, 5, c.Backspace(9))
		require.Equal(t, 0, c.Input(-1, "1"))
	})
}

func TestParseCode(t *testing.T) {
	c, err := recovery.ParseCode([]string{"1", "2", "3", "4", "5", "6"})
	require.NoError(t, err)
	require.Equal(t, "123456", c.String())

	tests := map[string][]string{
		"missing digit": {"1", "2", "", "4", "5", "6"},
		"too few":       {"1", "2", "3"},
		"too many":      {"1", "2", "3", "4", "5", "6", "7"},
		"letters":       {"1", "2", "3", "4", "5", "a"},
	}
	for name, digits := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := recovery.ParseCode(digits)
			require.ErrorIs(t, err, apperrors.ErrValidation)
			require.Equal(t, "incomplete code", err.Error())
		})
	}

	c, err = recovery.ParseCodeString(" 654321 ")
	require.NoError(t, err)
	require.Equal(t, "654321", c.String())
	_, err = recovery.ParseCodeString("12345")
	require.ErrorIs(t, err, apperrors.ErrValidation)
}
