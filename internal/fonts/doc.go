// Package fonts looks up installed font families through fontconfig.
//
// The family list from `fc-list : family` is kept in memory and persisted as
// JSON in the cache directory so repeated runs skip the subprocess until the
// entry expires or `sublint cache clear` removes it.
package fonts
