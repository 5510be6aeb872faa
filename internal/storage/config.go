package storage

import "errors"

// MinIOConfig holds MinIO connection configuration
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// Validate reports the first missing setting needed to reach the bucket.
func (c *MinIOConfig) Validate() error {
	switch {
	case c == nil || c.Endpoint == "":
		return errors.New("MINIO_ENDPOINT is not set")
	case c.Bucket == "":
		return errors.New("MINIO_BUCKET is not set")
	}
	return nil
}
