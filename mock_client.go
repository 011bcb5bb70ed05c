package main

import (
	"context"
	"sort"
	"strings"
)

type MockStore struct {
	Buckets map[string]bool
	Objects map[string]map[string]MockObject

	HeadRequests    []string
	CreateRequests  []string
	PolicyRequests  []MockRequest
	WebsiteRequests []MockRequest
	ListRequests    []MockRequest
	DeleteRequests  []MockRequest
	GetRequests     []MockRequest
	PutRequests     []MockRequest

	// Err<Op> fail the matching call; FailPutKey fails only the put of that key.
	ErrHead    error
	ErrCreate  error
	ErrPolicy  error
	ErrWebsite error
	ErrList    error
	ErrDelete  error
	ErrGet     error
	FailPutKey string
	ErrPut     error
}

type MockObject struct {
	Body        []byte
	ContentType string
}

type MockRequest struct {
	Bucket      string
	Key         string
	Keys        []string
	Body        string
	ContentType string
	Index       string
	Error       string
}

func NewMockStore(existingBuckets ...string) *MockStore {
	m := &MockStore{
		Buckets: make(map[string]bool),
		Objects: make(map[string]map[string]MockObject),
	}
	for _, bucket := range existingBuckets {
		m.Buckets[bucket] = true
		m.Objects[bucket] = make(map[string]MockObject)
	}
	return m
}

// Seed stores an object without recording a request.
func (m *MockStore) Seed(bucket, key, body string) {
	if m.Objects[bucket] == nil {
		m.Objects[bucket] = make(map[string]MockObject)
	}
	m.Objects[bucket][key] = MockObject{Body: []byte(body)}
}

// Keys returns the stored keys of a bucket under prefix, sorted.
func (m *MockStore) Keys(bucket, prefix string) []string {
	keys := make([]string, 0)
	for key := range m.Objects[bucket] {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// MutatingCalls counts create, policy, website, delete and put requests.
func (m *MockStore) MutatingCalls() int {
	return len(m.CreateRequests) + len(m.PolicyRequests) + len(m.WebsiteRequests) +
		len(m.DeleteRequests) + len(m.PutRequests)
}

func (m *MockStore) HeadBucket(ctx context.Context, bucket string) (bool, error) {
	m.HeadRequests = append(m.HeadRequests, bucket)
	if m.ErrHead != nil {
		return false, m.ErrHead
	}
	return m.Buckets[bucket], nil
}

func (m *MockStore) CreateBucket(ctx context.Context, bucket string) error {
	m.CreateRequests = append(m.CreateRequests, bucket)
	if m.ErrCreate != nil {
		return m.ErrCreate
	}
	m.Buckets[bucket] = true
	if m.Objects[bucket] == nil {
		m.Objects[bucket] = make(map[string]MockObject)
	}
	return nil
}

func (m *MockStore) PutBucketPolicy(ctx context.Context, bucket string, policy string) error {
	m.PolicyRequests = append(m.PolicyRequests, MockRequest{Bucket: bucket, Body: policy})
	return m.ErrPolicy
}

func (m *MockStore) PutBucketWebsite(ctx context.Context, bucket string, website WebsiteConfig) error {
	m.WebsiteRequests = append(m.WebsiteRequests, MockRequest{
		Bucket: bucket,
		Index:  website.IndexDocument,
		Error:  website.ErrorDocument,
	})
	return m.ErrWebsite
}

func (m *MockStore) ListObjects(ctx context.Context, bucket string, prefix string) ([]string, error) {
	m.ListRequests = append(m.ListRequests, MockRequest{Bucket: bucket, Key: prefix})
	if m.ErrList != nil {
		return nil, m.ErrList
	}
	return m.Keys(bucket, prefix), nil
}

func (m *MockStore) DeleteObjects(ctx context.Context, bucket string, keys []string) error {
	m.DeleteRequests = append(m.DeleteRequests, MockRequest{Bucket: bucket, Keys: keys})
	if m.ErrDelete != nil {
		return m.ErrDelete
	}
	for _, key := range keys {
		delete(m.Objects[bucket], key)
	}
	return nil
}

func (m *MockStore) GetObject(ctx context.Context, bucket string, key string) ([]byte, error) {
	m.GetRequests = append(m.GetRequests, MockRequest{Bucket: bucket, Key: key})
	if m.ErrGet != nil {
		return nil, m.ErrGet
	}
	object, ok := m.Objects[bucket][key]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return object.Body, nil
}

func (m *MockStore) PutObject(ctx context.Context, bucket string, key string, body []byte, contentType string) error {
	m.PutRequests = append(m.PutRequests, MockRequest{
		Bucket:      bucket,
		Key:         key,
		Body:        string(body),
		ContentType: contentType,
	})
	if m.ErrPut != nil && (m.FailPutKey == "" || m.FailPutKey == key) {
		return m.ErrPut
	}
	if m.Objects[bucket] == nil {
		m.Objects[bucket] = make(map[string]MockObject)
	}
	m.Objects[bucket][key] = MockObject{Body: body, ContentType: contentType}
	return nil
}
