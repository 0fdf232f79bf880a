package utils_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/speet-admin/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestToStringSlice(t *testing.T) {
	require.Equal(t, []string{"a", "c"}, utils.ToStringSlice([]any{"a", 1, "", "c", nil}))
	require.Empty(t, utils.ToStringSlice(nil))
}

func TestParseTime(t *testing.T) {
	require.True(t, utils.ParseTime("").IsZero())
	require.True(t, utils.ParseTime("yesterday").IsZero())
	require.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), utils.ParseTime("2026-01-02T03:04:05Z"))
	require.Equal(t, 123*time.Millisecond, time.Duration(utils.ParseTime("2026-01-02T03:04:05.123Z").Nanosecond()))
}

func TestPointers(t *testing.T) {
	require.Equal(t, "", utils.Value[string](nil))
	require.Equal(t, 3, utils.Value(utils.Ptr(3)))
}

func TestValueOr(t *testing.T) {
	require.Equal(t, "pending", utils.ValueOr(nil, "pending"))
	require.Equal(t, "pending", utils.ValueOr(utils.Ptr(""), "pending"))
	require.Equal(t, "resolved", utils.ValueOr(utils.Ptr("resolved"), "pending"))
}
