package page

import (
	"strings"
	"testing"
)

func TestSanitizeRemovesScriptTags(t *testing.T) {
	in := `<p>hi</p><script>alert(1)</script><p>bye</p>`
	got := Sanitize(in)
	if strings.Contains(got, "script") || strings.Contains(got, "alert") {
		t.Fatalf("script survived: %q", got)
	}
	if !strings.Contains(got, "<p>hi</p>") || !strings.Contains(got, "<p>bye</p>") {
		t.Fatalf("surrounding markup dropped: %q", got)
	}
}

func TestSanitizeRemovesScriptTagsWithAttributes(t *testing.T) {
	in := `<script type="text/javascript" src="x.js">
var a = 1;
</script>`
	if got := Sanitize(in); strings.Contains(got, "script") {
		t.Fatalf("multiline script survived: %q", got)
	}
}

func TestSanitizeStripsEventHandlers(t *testing.T) {
	cases := []string{
		`<img src="x.png" onerror="alert(1)">`,
		`<div onclick='doIt()'>x</div>`,
		`<div onmouseover=hover>x</div>`,
		`<div ONCLICK="x()">x</div>`,
	}
	for _, in := range cases {
		got := Sanitize(in)
		if strings.Contains(strings.ToLower(got), "onclick") ||
			strings.Contains(strings.ToLower(got), "onerror") ||
			strings.Contains(strings.ToLower(got), "onmouseover") {
			t.Errorf("handler survived in %q -> %q", in, got)
		}
	}
}

func TestSanitizeNeutralizesJavascriptScheme(t *testing.T) {
	got := Sanitize(`<a href="javascript:alert(1)">x</a>`)
	if strings.Contains(got, "javascript:") {
		t.Fatalf("javascript: survived: %q", got)
	}
	if !strings.Contains(got, `href="#`) {
		t.Fatalf("href not pointed at #: %q", got)
	}

	got = Sanitize(`<img src=javascript:alert(1)>`)
	if strings.Contains(got, "javascript:") {
		t.Fatalf("unquoted javascript: survived: %q", got)
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	in := `<p onclick="x()">a</p><script>b</script><a href="javascript:c">d</a>`
	once := Sanitize(in)
	if twice := Sanitize(once); twice != once {
		t.Fatalf("not idempotent:\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestSanitizeEmptyInput(t *testing.T) {
	if got := Sanitize(""); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestSanitizeLeavesPlainMarkup(t *testing.T) {
	in := `<h2 class="text-3xl">Title</h2><p>Body with <strong>bold</strong>.</p>`
	if got := Sanitize(in); got != in {
		t.Fatalf("plain markup changed: %q", got)
	}
}
