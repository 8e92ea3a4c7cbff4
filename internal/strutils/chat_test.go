package strutils_test

import (
	"testing"

	"github.com/Amund211/bosslevels/internal/strutils"
	"github.com/stretchr/testify/require"
)

func TestCleanChatLine(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want string
	}{
		{"Your Zulrah kill count is: <col=ff0000>52</col>.", "Your Zulrah kill count is: 52."},
		{"  <img=2>Vorkath kill count: 10  ", "Vorkath kill count: 10"},
		{"no tags here", "no tags here"},
		{"", ""},
		{"a < b > c", "a  c"},
	}

	for _, c := range cases {
		t.Run(c.raw, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, c.want, strutils.CleanChatLine(c.raw))
		})
	}
}

func TestNamesEqual(t *testing.T) {
	t.Parallel()

	cases := []struct {
		a, b string
		want bool
	}{
		{"Zezima", "zezima", true},
		{"Iron\u00a0Man", "iron man", true},
		{"  Zezima ", "ZEZIMA", true},
		{"Zezima", "Zezima2", false},
		{"", "", false},
		{"Zezima", "", false},
	}

	for _, c := range cases {
		t.Run(c.a+"/"+c.b, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, c.want, strutils.NamesEqual(c.a, c.b))
		})
	}
}
