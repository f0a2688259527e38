package searchpath

import (
	"runtime"
	"strings"
)

// Separator joins path lists. It is a delimiter on every platform.
const Separator = ";"

// Delimiters returns the path-list delimiters for goos.
func Delimiters(goos string) string {
	if goos == "windows" {
		return ";"
	}
	return ":;"
}

// Split splits pathList with the delimiters of the running platform.
func Split(pathList string) []string {
	return SplitFor(runtime.GOOS, pathList)
}

// SplitFor splits pathList with the delimiters of goos.
// Empty tokens are dropped; an empty result is ["."].
func SplitFor(goos, pathList string) []string {
	delims := Delimiters(goos)
	dirs := strings.FieldsFunc(pathList, func(r rune) bool {
		return strings.ContainsRune(delims, r)
	})
	if len(dirs) == 0 {
		return []string{"."}
	}
	return dirs
}

// Join concatenates path lists, keeping their order.
func Join(lists ...string) string {
	return strings.Join(lists, Separator)
}
