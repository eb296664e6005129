// Package language normalizes the language settings that select spell check
// dictionaries and gate the grammar check.
//
// Parsing goes through golang.org/x/text/language, so region variants,
// underscores, ISO 639-2 codes and a few spelled-out names all resolve to
// the same base language.
package language
