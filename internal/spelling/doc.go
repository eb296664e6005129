// Package spelling provides the word lists and dictionaries behind the
// spelling check.
//
// Dictionaries are hunspell .dic stem lists read from a directory, decoded
// with the charset their .aff file declares. Per-project whitelists and
// blacklists (dict-<lang>.txt and friends) live beside the subtitle file and
// are layered over the dictionary with Proxy.
package spelling
