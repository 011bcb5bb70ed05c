package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// maxDeleteBatch is the DeleteObjects per-request key limit.
const maxDeleteBatch = 1000

// s3API is the subset of *s3.Client used by S3Client.
type s3API interface {
	manager.UploadAPIClient
	s3.ListObjectsV2APIClient
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	PutBucketPolicy(ctx context.Context, params *s3.PutBucketPolicyInput, optFns ...func(*s3.Options)) (*s3.PutBucketPolicyOutput, error)
	PutBucketWebsite(ctx context.Context, params *s3.PutBucketWebsiteInput, optFns ...func(*s3.Options)) (*s3.PutBucketWebsiteOutput, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

var _ s3API = (*s3.Client)(nil)

type S3Client struct {
	Client s3API
	Region string
}

func NewS3Store(ctx context.Context, provider ProviderConfig) (*S3Client, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(provider.Region),
	}
	if provider.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(provider.Profile))
	}
	if provider.Endpoint != "" {
		endpoint := provider.Endpoint
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:               endpoint,
				SigningRegion:     region,
				HostnameImmutable: true,
			}, nil
		})
		loadOpts = append(loadOpts, config.WithEndpointResolverWithOptions(resolver))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("Error creating s3 client: %w", err)
	}
	awsS3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = provider.PathStyle
	})

	return &S3Client{Client: awsS3Client, Region: cfg.Region}, nil
}

// isBucketNotFound recognizes a missing bucket reported by HeadBucket.
func isBucketNotFound(err error) bool {
	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if errors.As(err, &notFound) || errors.As(err, &noSuchBucket) {
		return true
	}
	return hasErrorCode(err, "NotFound", "NoSuchBucket")
}

// isKeyNotFound recognizes a missing key reported by GetObject. A missing
// bucket is not a missing key.
func isKeyNotFound(err error) bool {
	var noSuchBucket *types.NoSuchBucket
	if errors.As(err, &noSuchBucket) || hasErrorCode(err, "NoSuchBucket") {
		return false
	}
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
		return true
	}
	return hasErrorCode(err, "NoSuchKey", "NotFound")
}

func hasErrorCode(err error, codes ...string) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, code := range codes {
		if apiErr.ErrorCode() == code {
			return true
		}
	}
	return false
}

func (s *S3Client) HeadBucket(ctx context.Context, bucket string) (bool, error) {
	_, headErr := s.Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})
	if headErr != nil {
		if isBucketNotFound(headErr) {
			return false, nil
		}
		return false, headErr
	}

	return true, nil
}

func (s *S3Client) CreateBucket(ctx context.Context, bucket string) error {
	createReq := &s3.CreateBucketInput{
		Bucket: aws.String(bucket),
	}
	// us-east-1 rejects an explicit location constraint
	if s.Region != "" && s.Region != "us-east-1" {
		createReq.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(s.Region),
		}
	}
	_, createErr := s.Client.CreateBucket(ctx, createReq)

	return createErr
}

func (s *S3Client) PutBucketPolicy(ctx context.Context, bucket string, policy string) error {
	_, policyErr := s.Client.PutBucketPolicy(ctx, &s3.PutBucketPolicyInput{
		Bucket: aws.String(bucket),
		Policy: aws.String(policy),
	})

	return policyErr
}

func (s *S3Client) PutBucketWebsite(ctx context.Context, bucket string, website WebsiteConfig) error {
	_, websiteErr := s.Client.PutBucketWebsite(ctx, &s3.PutBucketWebsiteInput{
		Bucket: aws.String(bucket),
		WebsiteConfiguration: &types.WebsiteConfiguration{
			IndexDocument: &types.IndexDocument{Suffix: aws.String(website.IndexDocument)},
			ErrorDocument: &types.ErrorDocument{Key: aws.String(website.ErrorDocument)},
		},
	})

	return websiteErr
}

func (s *S3Client) ListObjects(ctx context.Context, bucket string, prefix string) ([]string, error) {
	keys := make([]string, 0)
	listParams := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	}
	paginator := s3.NewListObjectsV2Paginator(s.Client, listParams)
	for paginator.HasMorePages() {
		currentPage, pageErr := paginator.NextPage(ctx)
		if pageErr != nil {
			return keys, pageErr
		}
		for _, object := range currentPage.Contents {
			if object.Key != nil {
				keys = append(keys, *object.Key)
			}
		}
	}

	return keys, nil
}

// DeleteObjects removes keys in quiet mode, splitting into requests of at most 1000 keys.
// Per-key failures reported in a quiet response are returned as an error.
func (s *S3Client) DeleteObjects(ctx context.Context, bucket string, keys []string) error {
	for start := 0; start < len(keys); start += maxDeleteBatch {
		end := start + maxDeleteBatch
		if end > len(keys) {
			end = len(keys)
		}

		objects := make([]types.ObjectIdentifier, 0, end-start)
		for _, key := range keys[start:end] {
			objects = append(objects, types.ObjectIdentifier{Key: aws.String(key)})
		}
		delOut, delErr := s.Client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(bucket),
			Delete: &types.Delete{
				Objects: objects,
				Quiet:   true,
			},
		})
		if delErr != nil {
			return delErr
		}
		if delOut != nil && len(delOut.Errors) > 0 {
			failed := make([]string, 0, len(delOut.Errors))
			for _, objErr := range delOut.Errors {
				failed = append(failed, fmt.Sprintf("%s (%s)", aws.ToString(objErr.Key), aws.ToString(objErr.Code)))
			}
			return fmt.Errorf("%d objects not deleted: %s", len(failed), strings.Join(failed, ", "))
		}
	}

	return nil
}

func (s *S3Client) GetObject(ctx context.Context, bucket string, key string) ([]byte, error) {
	getOut, getErr := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if getErr != nil {
		if isKeyNotFound(getErr) {
			return nil, ErrObjectNotFound
		}
		return nil, getErr
	}
	defer getOut.Body.Close()

	return io.ReadAll(getOut.Body)
}

func (s *S3Client) PutObject(ctx context.Context, bucket string, key string, body []byte, contentType string) error {
	uploader := manager.NewUploader(s.Client)
	_, putErr := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})

	return putErr
}
