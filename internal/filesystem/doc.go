// Package filesystem wraps stat and open with retry logic for NFS
// stale file handle errors, which show up on network-mounted media
// volumes when playlists are rewritten while being read.
package filesystem
