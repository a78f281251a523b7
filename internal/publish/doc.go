// Package publish stores rendered manifest artifacts.
//
// The fs driver writes into the configured output directory. The s3 driver
// uploads to an S3-compatible bucket (AWS S3 or MinIO) so a manifest can be
// shared with the drop zone and the flight crew without copying files around.
package publish
