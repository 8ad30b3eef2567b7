package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSeasons(t *testing.T) {
	years, err := parseSeasons("2024")
	require.NoError(t, err)
	require.Equal(t, []int{2024}, years)

	years, err = parseSeasons("1985-1988")
	require.NoError(t, err)
	require.Equal(t, []int{1985, 1986, 1987, 1988}, years)

	_, err = parseSeasons("")
	require.Error(t, err)

	_, err = parseSeasons("2024-1985")
	require.Error(t, err)

	_, err = parseSeasons("198x")
	require.Error(t, err)
}
