// Package subs models timed subtitle documents: events, styles, script info
// and the plaintext projection checks operate on.
//
// Load reads Advanced SubStation (.ass/.ssa) and SubRip (.srt) files into a
// Document. The loaders only understand what linting needs; they are not
// round-trip serializers.
package subs
