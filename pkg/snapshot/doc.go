// Package snapshot publishes rendered documents as static HTML.
//
// A snapshot is the serialized state of a live document, including the
// current value of form controls. Two stores are provided: FileStore writes
// below a directory and S3Store uploads to a bucket.
package snapshot
