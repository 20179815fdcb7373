package rxtui

import "strings"

// WrapText breaks text into lines no wider than width display columns,
// according to the wrap mode. In the wrapping modes, newlines in the input
// force a break; TextWrapNone or a non-positive width returns the text
// unchanged as a single line.
// For TextWrapWord, a single word longer than the width overflows on its
// own line; TextWrapWordBreak splits such words so every output line fits.
func WrapText(text string, width int, mode TextWrap) []string {
	if mode == TextWrapNone || width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		switch mode {
		case TextWrapCharacter:
			lines = append(lines, wrapChars(paragraph, width)...)
		case TextWrapWord:
			lines = append(lines, wrapWords(paragraph, width, false)...)
		case TextWrapWordBreak:
			lines = append(lines, wrapWords(paragraph, width, true)...)
		}
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

// wrapChars breaks at any character boundary.
func wrapChars(text string, width int) []string {
	var lines []string
	var line strings.Builder
	lineWidth := 0

	for _, r := range text {
		w := RuneDisplayWidth(r)
		if lineWidth+w > width && lineWidth > 0 {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = 0
		}
		line.WriteRune(r)
		lineWidth += w
	}
	lines = append(lines, line.String())
	return lines
}

// wrapWords breaks at word boundaries. When breakLong is set, words wider
// than the line are split at character boundaries.
func wrapWords(text string, width int, breakLong bool) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var line strings.Builder
	lineWidth := 0

	flush := func() {
		lines = append(lines, line.String())
		line.Reset()
		lineWidth = 0
	}

	for _, word := range words {
		wordWidth := DisplayWidth(word)

		if breakLong && wordWidth > width {
			// Split the oversized word at character boundaries,
			// continuing on the current line after a separating space.
			if lineWidth > 0 && lineWidth+1 < width {
				line.WriteByte(' ')
				lineWidth++
			} else if lineWidth > 0 {
				flush()
			}
			for _, r := range word {
				w := RuneDisplayWidth(r)
				if lineWidth+w > width && lineWidth > 0 {
					flush()
				}
				line.WriteRune(r)
				lineWidth += w
			}
			continue
		}

		sep := 0
		if lineWidth > 0 {
			sep = 1
		}
		if lineWidth+sep+wordWidth > width && lineWidth > 0 {
			flush()
			sep = 0
		}
		if sep == 1 {
			line.WriteByte(' ')
			lineWidth++
		}
		line.WriteString(word)
		lineWidth += wordWidth
	}
	flush()
	return lines
}

// SubstringByColumns returns the part of s covering display columns
// [startCol, endCol). A wide character straddling either boundary is
// excluded rather than split.
func SubstringByColumns(s string, startCol, endCol int) string {
	var sb strings.Builder
	col := 0
	for _, r := range s {
		w := RuneDisplayWidth(r)
		if col >= endCol {
			break
		}
		if col >= startCol && col+w <= endCol {
			sb.WriteRune(r)
		}
		col += w
	}
	return sb.String()
}
