package counties

import "testing"

func TestTitleCase(t *testing.T) {
	type testCase struct {
		input    string
		expected string
	}

	cases := []testCase{
		{"SALT LAKE", "Salt Lake"},
		{"BOX ELDER", "Box Elder"},
		{"CACHE", "Cache"},
		{"", ""},
	}

	for _, c := range cases {
		if got := titleCase(c.input); got != c.expected {
			t.Errorf("Got %q, wanted %q", got, c.expected)
		}
	}
}
