package render_test

import (
	"testing"

	"github.com/goliatone/go-fnaform/pkg/render"
)

func TestSanitizeHTML(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "The tumor is classified as Benign", want: "The tumor is classified as Benign"},
		{in: "<script>alert(1)</script>Malignant", want: "Malignant"},
		{in: "<b>Benign</b> &amp; stable", want: "Benign &amp; stable"},
		{in: "   ", want: ""},
		{in: `<img src=x onerror="alert(1)">classified`, want: "classified"},
	}
	for _, tc := range cases {
		if got := render.SanitizeHTML(tc.in); got != tc.want {
			t.Fatalf("SanitizeHTML(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPlainText(t *testing.T) {
	if got := render.PlainText("<b>Benign</b> &amp; stable"); got != "Benign & stable" {
		t.Fatalf("unexpected plain text %q", got)
	}
}
