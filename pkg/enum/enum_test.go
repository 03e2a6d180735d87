package enum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type testMode string

var (
	modeOn  = New(testMode("on"))
	modeOff = New(testMode("off"))
)

func Test_ToEnum(t *testing.T) {
	value, err := ToEnum[testMode]("on")
	require.NoError(t, err)
	require.Equal(t, modeOn, value)

	value, err = ToEnum[testMode]("off")
	require.NoError(t, err)
	require.Equal(t, modeOff, value)

	_, err = ToEnum[testMode]("paused")
	require.Error(t, err)
}
