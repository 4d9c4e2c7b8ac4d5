package rendering

import "strings"

// FoldText replaces typographic Unicode punctuation with plain equivalents
// so model output renders with the PDF core fonts.
func FoldText(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text))

	for _, r := range text {
		switch r {
		case '\u2018', '\u2019', '\u201a', '\u2032':
			result.WriteByte('\'')
		case '\u201c', '\u201d', '\u201e', '\u2033':
			result.WriteByte('"')
		case '\u2010', '\u2011', '\u2012', '\u2013', '\u2014', '\u2015', '\u2212':
			result.WriteByte('-')
		case '\u2022', '\u25aa', '\u25cf', '\u2023':
			result.WriteByte('*')
		case '\u2026':
			result.WriteString("...")
		case '\u00a0', '\u2002', '\u2003', '\u2009':
			result.WriteByte(' ')
		case '\u200b', '\ufeff':
		case '\t':
			result.WriteString("    ")
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}
