package rendering

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ligatures expand fused glyphs. They run before decomposition; æ, œ and ß have no
// decomposition at all and would otherwise be dropped by the ASCII filter.
var ligatures = strings.NewReplacer(
	"ﬀ", "ff",
	"ﬁ", "fi",
	"ﬂ", "fl",
	"ﬃ", "ffi",
	"ﬄ", "ffl",
	"ﬅ", "st",
	"ﬆ", "st",
	"æ", "ae", "Æ", "AE",
	"œ", "oe", "Œ", "OE",
	"ß", "ss",
	"ĳ", "ij", "Ĳ", "IJ",
	"ø", "o", "Ø", "O",
	"đ", "d", "Đ", "D",
	"ł", "l", "Ł", "L",
)

// typography maps typographic substitutes to ASCII.
var typography = strings.NewReplacer(
	// dashes and minus
	"‐", "-", "‑", "-", "‒", "-", "–", "-", "—", "-", "―", "-", "−", "-",
	// quotes and primes
	"‘", "'", "’", "'", "‚", "'", "‛", "'", "′", "'",
	"“", `"`, "”", `"`, "„", `"`, "‟", `"`, "″", `"`,
	"«", `"`, "»", `"`,
	// bullets
	"•", "-", "●", "-", "▪", "-", "◦", "-", "‣", "-", "∙", "-", "·", "-", "■", "-", "□", "-", "►", "-", "▸", "-",
	// symbols
	"…", "...",
	"°", " deg",
	"©", "(c)",
	"®", "(R)",
	"™", "(TM)",
	"€", "EUR",
	"£", "GBP",
	"×", "x",
	"→", "->",
	" ", " ",
	" ", " ",
	" ", " ",
	"​", "",
	"­", "",
	"\t", " ",
)

// CleanPDFText reduces s to text a fixed-width ASCII font can render without corruption.
// The steps run in a fixed order: ligature expansion, typographic substitution,
// compatibility decomposition with combining marks removed, and finally a whitelist
// of printable ASCII plus newline. Everything outside the whitelist is dropped.
// CleanPDFText is idempotent.
func CleanPDFText(s string) string {
	if s == "" {
		return ""
	}

	s = ligatures.Replace(s)
	s = typography.Replace(s)

	folded, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn))), s)
	if err == nil {
		s = folded
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if IsPDFSafe(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// IsPDFSafe reports whether r is in the PDF text whitelist: printable ASCII and newline.
func IsPDFSafe(r rune) bool {
	return r == '\n' || (r >= 0x20 && r <= 0x7E)
}
