// Package searchpath parses delimited path-list strings into ordered directory lists.
//
// POSIX path lists accept both ':' and ';' as separators, Windows lists only ';'.
// Empty tokens are skipped and a list without any directory resolves to the current
// directory, so callers never have to special-case an unset path.
//
// # Usage
//
//	dirs := searchpath.Split(searchpath.Join(os.Getenv("LOADER_PATH"), "/opt/components"))
package searchpath
