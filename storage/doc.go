// Package storage provides object storage abstractions with pluggable
// backends. The transcription pipeline reads recorded media through it.
//
// # Backends
//
//   - storage/s3: Amazon S3 and S3-compatible storage
//   - storage/local: local filesystem storage for development/testing
//
// # Configuration
//
// Backend selection and settings are provided via Config:
//
//	storage:
//	  provider: "s3"
//	  bucket: "recordings"
//	  region: "us-east-1"
//
// Import the backend package for its factory to register:
//
//	_ "github.com/skillsenselab/prepkit/storage/local"
package storage
