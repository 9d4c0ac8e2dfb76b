package normalizer

import "strings"

// digitRun is a maximal run of digits within the sanitized string.
type digitRun struct {
	start int // byte offset of first digit
	end   int // byte offset past last digit
	text  string
}

// repositionZip moves a 5-digit token that looks like a misplaced zip code to
// the end of the string. Candidates are evaluated left to right and at most
// one relocation is performed:
//
//   - a token already at the end is never a candidate;
//   - a token whose digits begin with 0 is relocated (leading-zero tokens are
//     never plausible house numbers);
//   - a token at the very start is relocated when no 5-digit token already
//     sits at the end and more digits follow it ("leading zip, then
//     house-numbered street");
//   - a token at the very start is left alone when a 5-digit token already
//     sits at the end (the trailing token is assumed to be the zip);
//   - a token strictly in the middle is relocated.
func repositionZip(s string) string {
	runs := fiveDigitRuns(s)
	if len(runs) == 0 {
		return s
	}

	endZip := false
	for _, r := range runs {
		if r.end == len(s) {
			endZip = true
		}
	}

	for _, r := range runs {
		atStart := r.start == 0
		atEnd := r.end == len(s)

		switch {
		case atEnd:
			continue
		case r.text[0] == '0':
			return relocate(s, r)
		case atStart && endZip:
			continue
		case atStart && containsDigit(s[r.end:]):
			return relocate(s, r)
		case !atStart:
			return relocate(s, r)
		}
	}
	return s
}

// fiveDigitRuns returns the maximal digit runs of exactly five digits.
// Maximality makes each run word-bounded: longer runs (e.g. zip+4 written
// without a dash, or phone fragments) are not zip candidates.
func fiveDigitRuns(s string) []digitRun {
	var runs []digitRun
	i := 0
	for i < len(s) {
		if !isDigit(s[i]) {
			i++
			continue
		}
		j := i
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j-i == 5 {
			runs = append(runs, digitRun{start: i, end: j, text: s[i:j]})
		}
		i = j
	}
	return runs
}

// relocate rebuilds the string as "prefix suffix token", trimming each part
// and collapsing whitespace runs to single spaces.
func relocate(s string, r digitRun) string {
	parts := make([]string, 0, 3)
	if prefix := strings.TrimSpace(s[:r.start]); prefix != "" {
		parts = append(parts, prefix)
	}
	if suffix := strings.TrimSpace(s[r.end:]); suffix != "" {
		parts = append(parts, suffix)
	}
	parts = append(parts, r.text)

	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

func containsDigit(s string) bool {
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			return true
		}
	}
	return false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
