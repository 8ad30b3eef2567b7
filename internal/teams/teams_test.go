package teams

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveByAbbreviation(t *testing.T) {
	r := NewResolver()

	f, err := r.Resolve("BOS")
	require.NoError(t, err)
	require.Equal(t, "Boston Celtics", f.FullName)
	require.Equal(t, 2, f.ID)
	require.True(t, f.IsActive)
}

func TestResolveByFullName(t *testing.T) {
	r := NewResolver()

	cases := []struct {
		identifier string
		abbr       string
	}{
		{"Boston Celtics", "BOS"},
		{"boston celtics", "BOS"},
		{"SEATTLE SUPERSONICS", "SEA"},
		{"  Utah Jazz ", "UTA"},
	}
	for _, test := range cases {
		f, err := r.Resolve(test.identifier)
		require.NoError(t, err, test.identifier)
		require.Equal(t, test.abbr, f.Abbreviation)
	}
}

func TestResolveUnknown(t *testing.T) {
	r := NewResolver()

	_, err := r.Resolve("Springfield Tip-Offs")
	require.ErrorIs(t, err, ErrUnknownTeam)
}

func TestAbbreviationRoundTrip(t *testing.T) {
	r := NewResolver()

	for _, f := range r.All() {
		abbr, err := r.Abbreviation(f.ID)
		require.NoError(t, err)
		require.Equal(t, f.Abbreviation, abbr)
	}
}

func TestAbbreviationOutOfRange(t *testing.T) {
	r := NewResolver()

	for _, id := range []int{0, -1, len(r.All()) + 1} {
		_, err := r.Abbreviation(id)
		require.ErrorIs(t, err, ErrIDRange)
	}
}

func TestResolverWithFixtureList(t *testing.T) {
	r := NewResolverWith([]Franchise{
		{Abbreviation: "AAA", FullName: "Alpha"},
		{Abbreviation: "BBB", FullName: "Beta"},
	})

	a, err := r.Resolve("AAA")
	require.NoError(t, err)
	require.Equal(t, 1, a.ID)

	b, err := r.Resolve("Beta")
	require.NoError(t, err)
	require.Equal(t, 2, b.ID)
}

func TestHistoricalFranchisesResolvable(t *testing.T) {
	r := NewResolver()

	for _, abbr := range []string{"SEA", "NJN", "VAN", "WSB", "NOH", "NOK", "CHA", "CHH", "KCK", "SDC"} {
		f, err := r.Resolve(abbr)
		require.NoError(t, err, abbr)
		require.False(t, f.IsActive, abbr)
	}
}
