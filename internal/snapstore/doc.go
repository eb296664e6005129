// Package snapstore persists scene-boundary frame samples and pivot
// decisions in a SQLite file so repeated checks of the same video skip
// decoding. It implements snap.Backend.
//
// The database lives at config.SnapCachePath and is guarded by a sibling
// .lock file; Open fails with ErrLocked while another process holds it.
package snapstore
