package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentTypeFor(t *testing.T) {
	cases := map[string]struct {
		path string
		want string
	}{
		"text":               {path: "a.txt", want: "text/plain"},
		"css nested":         {path: "sub/b.css", want: "text/css"},
		"html upper case":    {path: "INDEX.HTML", want: "text/html"},
		"javascript":         {path: "app.js", want: "application/javascript"},
		"png":                {path: "img/logo.png", want: "image/png"},
		"no extension":       {path: "LICENSE", want: "application/octet-stream"},
		"unknown extension":  {path: "notes.zzz", want: "application/octet-stream"},
		"unknown nested":     {path: "data/payload.qqq", want: "application/octet-stream"},
		"dot directory only": {path: ".well-known/acme", want: "application/octet-stream"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, contentTypeFor(tc.path))
		})
	}
}

// Files whose bytes look like text or JSON still get the default when the
// extension is unknown.
func TestUploadFolderIgnoresContentForUnknownExtensions(t *testing.T) {
	concreteWalkFunc = createMockWalkFunc(LocalFileMap{
		"notes.zzz": []byte("hello world"),
		"data.qqq":  []byte(`{"a":1}`),
	})
	defer func() { concreteWalkFunc = walkDirectory }()
	store := NewMockStore("bucket")

	_, uploadErr := uploadFolder(context.Background(), store, "bucket", "/folder1", "web")

	require.NoError(t, uploadErr)
	require.Len(t, store.PutRequests, 2)
	assert.Equal(t, "application/octet-stream", store.PutRequests[0].ContentType)
	assert.Equal(t, "application/octet-stream", store.PutRequests[1].ContentType)
}
