package main

import (
	"errors"
	"fmt"
)

var (
	// ErrObjectNotFound is returned by RemoteStore.GetObject when the key does not exist.
	ErrObjectNotFound = errors.New("object not found")

	// ErrRunInProgress is returned by SyncHandler.Run while another run holds the handler.
	ErrRunInProgress = errors.New("another upload run is already in progress")
)

// ConfigurationError reports an invalid or incomplete upload configuration.
// It is always returned before any remote call is made.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid upload config: %s", e.Reason)
	}
	return fmt.Sprintf("invalid upload config: %s: %s", e.Field, e.Reason)
}

// RemoteStoreError wraps any remote failure other than the recognized not-found outcomes.
type RemoteStoreError struct {
	Op     string
	Bucket string
	Key    string
	Err    error
}

func (e *RemoteStoreError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("remote %s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
	}
	return fmt.Sprintf("remote %s bucket %s: %v", e.Op, e.Bucket, e.Err)
}

func (e *RemoteStoreError) Unwrap() error {
	return e.Err
}

// FilesystemError wraps a local read or enumeration failure.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("local %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

// remoteErr wraps err as a RemoteStoreError unless it already is one.
func remoteErr(op, bucket, key string, err error) error {
	var rse *RemoteStoreError
	if errors.As(err, &rse) {
		return err
	}
	return &RemoteStoreError{Op: op, Bucket: bucket, Key: key, Err: err}
}
