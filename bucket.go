package main

import (
	"context"
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type policyStatement struct {
	Effect    string            `json:"Effect"`
	Principal map[string]string `json:"Principal"`
	Action    string            `json:"Action"`
	Resource  string            `json:"Resource"`
}

type bucketPolicy struct {
	Version   string            `json:"Version"`
	Statement []policyStatement `json:"Statement"`
}

// publicReadPolicy grants anonymous s3:GetObject on every object in the bucket.
func publicReadPolicy(partition, bucket string) (string, error) {
	if partition == "" {
		partition = "aws"
	}
	policy := bucketPolicy{
		Version: "2012-10-17",
		Statement: []policyStatement{
			{
				Effect:    "Allow",
				Principal: map[string]string{"AWS": "*"},
				Action:    "s3:GetObject",
				Resource:  fmt.Sprintf("arn:%s:s3:::%s/*", partition, bucket),
			},
		},
	}
	policyJSON, marshalErr := json.Marshal(policy)
	if marshalErr != nil {
		return "", marshalErr
	}
	return string(policyJSON), nil
}

// ensureBucket creates the bucket with a public-read policy, and website hosting
// when requested, if it does not exist yet. An existing bucket is left untouched.
// The returned bool reports whether the bucket was created by this call.
func ensureBucket(ctx context.Context, store RemoteStore, bucket BucketSpec, partition string) (bool, error) {
	exists, headErr := store.HeadBucket(ctx, bucket.Name)
	if headErr != nil {
		return false, remoteErr("headBucket", bucket.Name, "", headErr)
	}
	if exists {
		log.Info(fmt.Sprintf("Bucket already exists: %s", bucket.Name))
		return false, nil
	}

	log.Info(fmt.Sprintf("Creating bucket: %s", bucket.Name))
	if createErr := store.CreateBucket(ctx, bucket.Name); createErr != nil {
		return false, remoteErr("createBucket", bucket.Name, "", createErr)
	}

	policy, policyErr := publicReadPolicy(partition, bucket.Name)
	if policyErr != nil {
		return true, remoteErr("putBucketPolicy", bucket.Name, "", policyErr)
	}
	log.Info(fmt.Sprintf("Putting public read policy on bucket: %s", bucket.Name))
	if putErr := store.PutBucketPolicy(ctx, bucket.Name, policy); putErr != nil {
		return true, remoteErr("putBucketPolicy", bucket.Name, "", putErr)
	}

	if bucket.Website == nil {
		return true, nil
	}
	website := bucket.Website.withDefaults()
	log.WithFields(log.Fields{
		"index": website.IndexDocument,
		"error": website.ErrorDocument,
	}).Info(fmt.Sprintf("Enabling website hosting on bucket: %s", bucket.Name))
	if websiteErr := store.PutBucketWebsite(ctx, bucket.Name, website); websiteErr != nil {
		return true, remoteErr("putBucketWebsite", bucket.Name, "", websiteErr)
	}

	return true, nil
}
