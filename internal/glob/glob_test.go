package glob

import "testing"

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		matches []string
		rejects []string
	}{
		{
			name:    "wildcard in the middle",
			pattern: "img*.jpg",
			matches: []string{"IMG0001.JPG", "IMG.0001.JPG", "IMG.JPG"},
			rejects: []string{"IMG.BMP", "FOO.JPG"},
		},
		{
			name:    "wildcard in the middle single char at end",
			pattern: "img*j",
			matches: []string{"IMG0001.J", "IMG.0001.J", "IMG.J"},
			rejects: []string{"IMG.B", "FOO.J"},
		},
		{
			name:    "wildcard at end",
			pattern: "img*",
			matches: []string{"IMG0001.J", "IMG.0001.J", "IMG.J", "IMG.B", "IMG"},
			rejects: []string{"FOO.J"},
		},
		{
			name:    "wildcard at begin",
			pattern: "*.jpg",
			matches: []string{"IMG0001.JPG", "IMG.0001.JPG", "IMG.JPG", "FOO.JPG", "a.jpg.jpg"},
			rejects: []string{"IMG.BMP", "photo.jpg.bak"},
		},
		{
			name:    "multiple wildcards",
			pattern: "foo*img*.jpg",
			matches: []string{"foobarIMG0001.JPG", "fooimg.jpg"},
			rejects: []string{"IMG.0001.JPG", "foobarblah.0001.JPG"},
		},
		{
			name:    "consecutive wildcards",
			pattern: "foo**.jpg",
			matches: []string{"foobarIMG0001.JPG"},
			rejects: []string{"IMG.0001.JPG"},
		},
		{
			name:    "no match in between wildcards",
			pattern: "foo*i*.jpg",
			rejects: []string{"foobar_bajs_whatever.JPG"},
		},
		{
			name:    "lone wildcard",
			pattern: "*",
			matches: []string{"anything.JPG", "foobar_bajs_whatever.JPG"},
			rejects: []string{""},
		},
		{
			name:    "retry after partial run",
			pattern: "*aab",
			matches: []string{"aaab", "xaabaab"},
			rejects: []string{"aaba"},
		},
		{
			name:    "literal only",
			pattern: "photo.png",
			matches: []string{"PHOTO.PNG"},
			rejects: []string{"photo.pn", "photo.pngx", ""},
		},
		{
			name:    "full path pattern",
			pattern: "*/holiday/*.jpeg",
			matches: []string{"/home/user/Pictures/Holiday/beach.JPEG"},
			rejects: []string{"/home/user/Pictures/work/beach.jpeg"},
		},
		{
			name:    "case folding beyond ascii",
			pattern: "école*",
			matches: []string{"ÉCOLE.jpg", "École-2024.png"},
			rejects: []string{"ecole.jpg"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Compile(tc.pattern)
			for _, text := range tc.matches {
				if !p.Match(text) {
					t.Errorf("Compile(%q).Match(%q) = false, want true", tc.pattern, text)
				}
			}
			for _, text := range tc.rejects {
				if p.Match(text) {
					t.Errorf("Compile(%q).Match(%q) = true, want false", tc.pattern, text)
				}
			}
		})
	}
}

func TestMatchEmptyPattern(t *testing.T) {
	if Match("", "") {
		t.Fatalf("empty pattern must not match empty text")
	}
	if Match("", "a") {
		t.Fatalf("empty pattern must not match non-empty text")
	}
}

func TestMatchAny(t *testing.T) {
	patterns := CompileAll([]string{"*.jpg", "*.png"})
	if !MatchAny(patterns, "cat.PNG") {
		t.Fatalf("MatchAny(cat.PNG) = false, want true")
	}
	if MatchAny(patterns, "cat.gif") {
		t.Fatalf("MatchAny(cat.gif) = true, want false")
	}
	if MatchAny(nil, "cat.jpg") {
		t.Fatalf("MatchAny with no patterns must reject")
	}
}

func TestPatternString(t *testing.T) {
	if got := Compile("IMG*.JPG").String(); got != "IMG*.JPG" {
		t.Fatalf("String() = %q, want %q", got, "IMG*.JPG")
	}
}
