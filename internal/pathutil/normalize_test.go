package pathutil

import "testing"

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"":                "",
		"/a/b/":           "/a/b",
		"/a/./b":          "/a/b",
		"/a/b/../c":       "/a/c",
		"relative/./path": "relative/path",
		".":               ".",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}
