// Package database manages the SQLite-backed video catalog.
//
// It stores video records (title, description, category, original
// file path) together with their processing status. The transcoding
// pipeline consumes this package through a narrow get/update-status
// interface so it carries no dependency on the storage technology.
package database
