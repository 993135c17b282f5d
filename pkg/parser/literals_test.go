package parser

import "testing"

func TestUnescape(t *testing.T) {
	cases := map[string]string{
		`plain`:          "plain",
		`a\tb`:           "a\tb",
		`\x41`:           "A",
		`\u00e9`:         "\u00e9",
		`\u{1F600}`:      "\U0001F600",
		`\uD83D\uDE00`:   "\U0001F600",
		`\q`:             "q",
		`\\`:             `\`,
		"line\\\nnext":   "linenext",
		`\0`:             "\x00",
		`quote \"here\"`: `quote "here"`,
	}
	for in, want := range cases {
		got, err := unescape(in)
		if err != nil {
			t.Fatalf("unescape(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("unescape(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := unescape(`\x4`); err == nil {
		t.Fatalf("expected error for short \\x escape")
	}
}

func TestParseNumericLiteral(t *testing.T) {
	cases := map[string]float64{
		"0":     0,
		"017":   15,
		"019":   19,
		"0o17":  15,
		"0XFF":  255,
		"1_0":   10,
		".5":    0.5,
		"1e400": 0,
	}
	for in, want := range cases {
		got, err := parseNumericLiteral(in)
		if err != nil {
			t.Fatalf("parseNumericLiteral(%q): %v", in, err)
		}
		if in == "1e400" {
			if got <= 1e308 {
				t.Fatalf("expected +Inf for %q, got %v", in, got)
			}
			continue
		}
		if got != want {
			t.Fatalf("parseNumericLiteral(%q) = %v, want %v", in, got, want)
		}
	}
}
