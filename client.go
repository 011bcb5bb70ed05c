package main

import (
	"context"
)

// RemoteStore is the object-storage capability the upload engine drives.
// Not-found outcomes are part of the contract: HeadBucket reports a missing
// bucket as (false, nil) and GetObject returns ErrObjectNotFound.
type RemoteStore interface {
	HeadBucket(ctx context.Context, bucket string) (bool, error)
	CreateBucket(ctx context.Context, bucket string) error
	PutBucketPolicy(ctx context.Context, bucket string, policy string) error
	PutBucketWebsite(ctx context.Context, bucket string, website WebsiteConfig) error
	ListObjects(ctx context.Context, bucket string, prefix string) ([]string, error)
	DeleteObjects(ctx context.Context, bucket string, keys []string) error
	GetObject(ctx context.Context, bucket string, key string) ([]byte, error)
	PutObject(ctx context.Context, bucket string, key string, body []byte, contentType string) error
}
