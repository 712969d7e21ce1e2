// Package assets turns image URIs entered by the user into bytes.
//
// Supported forms:
//
//	/path/to/front.jpg         local file
//	file:///path/to/front.jpg  local file
//	data:image/png;base64,...  inline data URI
//	s3://bucket/key.jpg        object in S3 (or an S3-compatible endpoint)
//	https://host/front.jpg     remote file
//
// Resolver.Open streams the content for upload; Resolver.Inspect reads the
// first bytes to detect the MIME type and rejects anything that is not an
// image.
package assets
