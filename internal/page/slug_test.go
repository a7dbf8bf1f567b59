package page

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Hakkımızda", "hakkmzda"},
		{"  Our Courses  ", "our-courses"},
		{"Hello,   World!", "hello-world"},
		{"already-slugged", "already-slugged"},
		{"UPPER Case 123", "upper-case-123"},
		{"!!!", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	in := "Some Page Title 42"
	once := Slugify(in)
	if twice := Slugify(once); twice != once {
		t.Fatalf("Slugify not idempotent: %q -> %q", once, twice)
	}
}

func TestNormalizeSlug(t *testing.T) {
	if got := NormalizeSlug("/about"); got != "about" {
		t.Fatalf("got %q", got)
	}
	if got := NormalizeSlug("about"); got != "about" {
		t.Fatalf("got %q", got)
	}
}
