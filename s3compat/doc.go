// Package s3compat connects standard S3 tooling to the cluster.
//
// It wraps the MinIO Go client so that existing S3-based code can read and
// write cluster buckets without speaking the native API. The cluster mounts
// its S3 endpoint under /s3 and reports the synthetic region "ais"; the
// client produced here handles both.
//
// # Usage
//
//	client, err := s3compat.NewClient(cfg)
//	exists, err := client.BucketExists(ctx, "data")
package s3compat
