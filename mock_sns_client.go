package main

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// MockSNSClient records every publish and fails each one with PublishErr when set.
type MockSNSClient struct {
	PublishRequests []*sns.PublishInput
	PublishErr      error
}

func NewMockSNSClient() *MockSNSClient {
	return &MockSNSClient{
		PublishRequests: make([]*sns.PublishInput, 0),
	}
}

func (c *MockSNSClient) PublishMessage(msg *sns.PublishInput) error {
	c.PublishRequests = append(c.PublishRequests, msg)
	return c.PublishErr
}

// Subjects returns the subject of every recorded publish, in order.
func (c *MockSNSClient) Subjects() []string {
	subjects := make([]string, 0, len(c.PublishRequests))
	for _, req := range c.PublishRequests {
		subjects = append(subjects, aws.ToString(req.Subject))
	}
	return subjects
}
