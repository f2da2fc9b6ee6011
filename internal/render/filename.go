package render

import (
	"regexp"
	"strings"
)

var unsafeRun = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Filename derives the download name for a record: runs of anything other
// than letters and digits become "_", and an empty result falls back to
// "resume". Filename("Jane Doe", "pdf") is "Jane_Doe_Resume.pdf".
func Filename(name, ext string) string {
	base := strings.Trim(unsafeRun.ReplaceAllString(name, "_"), "_")
	if base == "" {
		base = "resume"
	}
	return base + "_Resume." + ext
}
