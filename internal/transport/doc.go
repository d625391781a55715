// Package transport fetches remote artifacts onto local disk.
//
// A run selects exactly one transport with [Select]: the first candidate in
// configured preference order whose [Transport.Available] reports true. The
// same transport is then used for every artifact. The curl and wget
// transports shell out to the external binaries; the s3 transport streams
// objects from an S3-compatible mirror.
package transport
