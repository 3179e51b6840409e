package main

import (
	"context"
	"errors"
	"io"
)

var errStorageNotConfigured = errors.New("S3_BUCKET is not set")

// unconfiguredStore lets the server start without a bucket. Uploads fail
// with a 500 until storage is configured.
type unconfiguredStore struct{}

func (unconfiguredStore) Put(context.Context, string, io.Reader, int64, string) (string, error) {
	return "", errStorageNotConfigured
}
