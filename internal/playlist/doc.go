// Package playlist owns the HLS filesystem contract: the layout of
// per-video output directories and the master playlist that ties
// resolution variants together for adaptive bitrate switching.
//
// Layout, relative to the media root:
//
//	videos/{id}/{label}/index.m3u8   variant playlist
//	videos/{id}/{label}/*.ts         segment files
//	videos/{id}/index.m3u8           master playlist
//
// The master playlist is only written after every variant playlist
// exists; serving layers treat its absence as "not streamable".
package playlist
