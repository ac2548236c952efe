// Package cssmin is a whitespace and comment stripper for stylesheets.
//
// It works on plain text with a fixed chain of regular expressions and does
// not parse CSS. Sequences inside string literals or url(...) are rewritten
// like any other text, so content such as `content: "a ; }"` can change.
package cssmin

import (
	"regexp"
	"strings"
)

var (
	commentsAndTabs = regexp.MustCompile(`(?s)/\*.*?\*/|\t+`)
	lineBreaks      = regexp.MustCompile(`[\r\n\t]`)
	whitespaceRuns  = regexp.MustCompile(`\s{2,}`)
	structural      = regexp.MustCompile(`\s*([{}\[\]=~+>|;:,])\s*`)
	trailingSemi    = regexp.MustCompile(`;}`)
)

// Minify applies the chain in order, each step on the previous output:
//  1. block comments and tab runs -> " "
//  2. \r \n \t -> " "
//  3. runs of 2+ whitespace -> " "
//  4. drop whitespace around { } [ ] = ~ + > | ; : ,
//  5. ";}" -> "}"
//  6. trim
func Minify(src string) string {
	out := commentsAndTabs.ReplaceAllString(src, " ")
	out = lineBreaks.ReplaceAllString(out, " ")
	out = whitespaceRuns.ReplaceAllString(out, " ")
	out = structural.ReplaceAllString(out, "$1")
	out = trailingSemi.ReplaceAllString(out, "}")
	return strings.TrimSpace(out)
}

// MinifyBytes is Minify for byte slices
func MinifyBytes(src []byte) []byte {
	return []byte(Minify(string(src)))
}
