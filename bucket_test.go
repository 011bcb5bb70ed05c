package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicReadPolicyDocument(t *testing.T) {
	policy, policyErr := publicReadPolicy("aws", "my-site")

	require.NoError(t, policyErr)
	assert.JSONEq(t, `{
		"Version": "2012-10-17",
		"Statement": [{
			"Effect": "Allow",
			"Principal": {"AWS": "*"},
			"Action": "s3:GetObject",
			"Resource": "arn:aws:s3:::my-site/*"
		}]
	}`, policy)
}

func TestPublicReadPolicyPartition(t *testing.T) {
	policy, policyErr := publicReadPolicy("aws-cn", "my-site")

	require.NoError(t, policyErr)
	assert.Contains(t, policy, `"Resource":"arn:aws-cn:s3:::my-site/*"`)
}

func TestPublicReadPolicyWildcardPartition(t *testing.T) {
	policy, policyErr := publicReadPolicy("*", "my-site")

	require.NoError(t, policyErr)
	assert.Equal(t, `{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":"*"},"Action":"s3:GetObject","Resource":"arn:*:s3:::my-site/*"}]}`, policy)
}

func TestEnsureBucketAbsentWithoutWebsite(t *testing.T) {
	store := NewMockStore()

	created, ensureErr := ensureBucket(context.Background(), store, BucketSpec{Name: "fresh"}, "aws")

	require.NoError(t, ensureErr)
	assert.True(t, created)
	assert.Equal(t, []string{"fresh"}, store.CreateRequests)
	require.Len(t, store.PolicyRequests, 1)
	assert.Equal(t, "fresh", store.PolicyRequests[0].Bucket)
	assert.Contains(t, store.PolicyRequests[0].Body, "arn:aws:s3:::fresh/*")
	assert.Len(t, store.WebsiteRequests, 0)
}

func TestEnsureBucketAbsentWithWebsite(t *testing.T) {
	store := NewMockStore()
	bucket := BucketSpec{
		Name:    "fresh",
		Website: &WebsiteConfig{IndexDocument: "home.html", ErrorDocument: "fail.html"},
	}

	created, ensureErr := ensureBucket(context.Background(), store, bucket, "aws")

	require.NoError(t, ensureErr)
	assert.True(t, created)
	assert.Len(t, store.CreateRequests, 1)
	assert.Len(t, store.PolicyRequests, 1)
	require.Len(t, store.WebsiteRequests, 1)
	assert.Equal(t, MockRequest{Bucket: "fresh", Index: "home.html", Error: "fail.html"}, store.WebsiteRequests[0])
}

func TestEnsureBucketWebsiteDefaults(t *testing.T) {
	store := NewMockStore()
	bucket := BucketSpec{Name: "fresh", Website: &WebsiteConfig{}}

	_, ensureErr := ensureBucket(context.Background(), store, bucket, "aws")

	require.NoError(t, ensureErr)
	require.Len(t, store.WebsiteRequests, 1)
	assert.Equal(t, "index.html", store.WebsiteRequests[0].Index)
	assert.Equal(t, "error.html", store.WebsiteRequests[0].Error)
}

func TestEnsureBucketExistingIsUntouched(t *testing.T) {
	store := NewMockStore("existing")
	bucket := BucketSpec{Name: "existing", Website: &WebsiteConfig{}}

	for i := 0; i < 2; i++ {
		created, ensureErr := ensureBucket(context.Background(), store, bucket, "aws")
		require.NoError(t, ensureErr)
		assert.False(t, created)
	}

	assert.Len(t, store.HeadRequests, 2)
	assert.Equal(t, 0, store.MutatingCalls())
}

func TestEnsureBucketTwiceCreatesOnce(t *testing.T) {
	store := NewMockStore()
	bucket := BucketSpec{Name: "fresh", Website: &WebsiteConfig{}}

	_, firstErr := ensureBucket(context.Background(), store, bucket, "aws")
	created, secondErr := ensureBucket(context.Background(), store, bucket, "aws")

	require.NoError(t, firstErr)
	require.NoError(t, secondErr)
	assert.False(t, created)
	assert.Len(t, store.CreateRequests, 1)
	assert.Len(t, store.PolicyRequests, 1)
	assert.Len(t, store.WebsiteRequests, 1)
}

func TestEnsureBucketHeadErrorPropagates(t *testing.T) {
	store := NewMockStore()
	store.ErrHead = errors.New("access denied")

	_, ensureErr := ensureBucket(context.Background(), store, BucketSpec{Name: "locked"}, "aws")

	var remoteStoreErr *RemoteStoreError
	require.ErrorAs(t, ensureErr, &remoteStoreErr)
	assert.Equal(t, "headBucket", remoteStoreErr.Op)
	assert.ErrorContains(t, ensureErr, "access denied")
	assert.Len(t, store.CreateRequests, 0)
}

func TestEnsureBucketPolicyFailureIsFatal(t *testing.T) {
	store := NewMockStore()
	store.ErrPolicy = errors.New("policy rejected")
	bucket := BucketSpec{Name: "fresh", Website: &WebsiteConfig{}}

	created, ensureErr := ensureBucket(context.Background(), store, bucket, "aws")

	var remoteStoreErr *RemoteStoreError
	require.ErrorAs(t, ensureErr, &remoteStoreErr)
	assert.Equal(t, "putBucketPolicy", remoteStoreErr.Op)
	assert.True(t, created)
	assert.Len(t, store.WebsiteRequests, 0)
}
