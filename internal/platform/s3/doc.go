// Package s3 provides a read-only client for an S3-compatible model mirror.
//
// It is used by the s3 transport to stream artifacts from a bucket onto
// local disk when the public download hosts are unreachable or rate limited.
package s3
