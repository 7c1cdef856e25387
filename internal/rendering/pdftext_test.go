package rendering

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanPDFText_Ligatures(t *testing.T) {
	cases := map[string]string{
		"ﬀ": "ff",
		"ﬁ": "fi",
		"ﬂ": "fl",
		"ﬃ": "ffi",
		"ﬄ": "ffl",
		"ﬅ": "st",
		"ﬆ": "st",
		"æ": "ae",
		"œ": "oe",
		"ß": "ss",
	}

	for lig, expansion := range cases {
		t.Run(expansion, func(t *testing.T) {
			for _, s := range []string{lig, "x" + lig + "y", "Of" + lig + "ice " + lig} {
				got := CleanPDFText(s)
				assert.Contains(t, got, expansion)
				assert.NotContains(t, got, lig)
			}
		})
	}
}

func TestCleanPDFText_LigatureInEmail(t *testing.T) {
	assert.Equal(t, "abidshariff009@gmail.com", CleanPDFText("abidshariﬀ009@gmail.com"))

	got := CleanPDFText("abidshariﬀ009@gmail.com | (716) 970-9249")
	assert.Equal(t, "abidshariff009@gmail.com | (716) 970-9249", got)
}

func TestCleanPDFText_Accents(t *testing.T) {
	tests := map[string]string{
		"José María":        "Jose Maria",
		"Zoë Brontë":        "Zoe Bronte",
		"Curaçao Résumé":    "Curacao Resume",
		"Ångström Øresund":  "Angstrom Oresund",
		"Łódź Kraków":       "Lodz Krakow",
		"naïve coöperation": "naive cooperation",
	}
	for in, want := range tests {
		assert.Equal(t, want, CleanPDFText(in), in)
	}
}

func TestCleanPDFText_Typography(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2019–2023", "2019-2023"},
		{"fast—really fast", "fast-really fast"},
		{"“quoted” and ‘single’", `"quoted" and 'single'`},
		{"• Led team\n● Shipped", "- Led team\n- Shipped"},
		{"Acme™ Cloud® ©2024", "Acme(TM) Cloud(R) (c)2024"},
		{"wait…", "wait..."},
		{"40°C", "40 degC"},
		{"a\tb", "a b"},
		{"line\r\nnext", "line\nnext"},
		{"emoji 🚀 gone", "emoji  gone"},
		{"中文 dropped", " dropped"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanPDFText(tt.in), tt.in)
	}
}

func TestCleanPDFText_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain ascii",
		"José ﬁnance — “résumé” • 40° © 2024…",
		"abidshariﬀ009@gmail.com | (716) 970-9249",
		"\x00control\x07chars\r\n",
		strings.Repeat("ﬃ", 10),
	}
	for _, in := range inputs {
		once := CleanPDFText(in)
		assert.Equal(t, once, CleanPDFText(once), in)
	}
}

func TestCleanPDFText_OutputIsWhitelisted(t *testing.T) {
	got := CleanPDFText("Ünïcödé ​ soft­hyphen ½ ²")
	for _, r := range got {
		assert.True(t, IsPDFSafe(r), "unexpected rune %q", r)
	}
	assert.Contains(t, got, "softhyphen")
}
