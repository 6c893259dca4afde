// Package transport moves a local file to an upload destination.
//
// The destination string selects the mechanism:
//
//	http://host/path, https://host/path   HTTP PUT, basic auth from user/password
//	s3://bucket/key                        S3 PutObject
//	stowry://host/path, stowrys://host/path  presigned PUT against a Stowry server
//	anything else                          remote copy with scp
//
// Router dispatches on the destination and satisfies haveup.Transport.
// Authentication failures wrap haveup.ErrAuthentication so the caller can
// abort the batch.
package transport
