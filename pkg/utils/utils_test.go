package utils

import "testing"

func TestGenerateRandomToken(t *testing.T) {
	first := GenerateRandomToken()
	second := GenerateRandomToken()

	if len(first) != 24 {
		t.Fatalf("expected 24 characters, got %d (%q)", len(first), first)
	}
	if first == second {
		t.Fatalf("expected different tokens, got %q twice", first)
	}
	for _, r := range first {
		if !(r >= 'a' && r <= 'z') && !(r >= '2' && r <= '7') {
			t.Fatalf("unexpected character %q in %q", r, first)
		}
	}
}

func TestHashToken(t *testing.T) {
	got := HashToken("testtoken")
	want := "ada63e98fe50eccb55036d88eda4b2c3709f53c2b65bc0335797067e9a2a5d8b"
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestSanitizeString(t *testing.T) {
	cases := map[string]string{
		"  Ada  ":                      "Ada",
		"<b>Bold</b> name":             "Bold name",
		"<script>alert(1)</script>Bob": "Bob",
	}
	for input, want := range cases {
		if got := SanitizeString(input); got != want {
			t.Fatalf("SanitizeString(%q): expected %q, got %q", input, want, got)
		}
	}
}
