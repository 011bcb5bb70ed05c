package main

import (
	"mime"
	"path"
	"strings"
)

const defaultContentType = "application/octet-stream"

// webContentTypes pins the types static sites depend on so uploads do not vary
// with the host's mime.types.
var webContentTypes = map[string]string{
	".html":  "text/html",
	".htm":   "text/html",
	".css":   "text/css",
	".js":    "application/javascript",
	".mjs":   "application/javascript",
	".json":  "application/json",
	".map":   "application/json",
	".txt":   "text/plain",
	".xml":   "application/xml",
	".svg":   "image/svg+xml",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".webp":  "image/webp",
	".ico":   "image/vnd.microsoft.icon",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".ttf":   "font/ttf",
	".wasm":  "application/wasm",
	".pdf":   "application/pdf",
}

// contentTypeFor picks the Content-Type for an uploaded file from its extension.
// Unknown or missing extensions get application/octet-stream.
func contentTypeFor(relPath string) string {
	ext := strings.ToLower(path.Ext(relPath))
	if ext != "" {
		if contentType, ok := webContentTypes[ext]; ok {
			return contentType
		}
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			if mediaType, _, parseErr := mime.ParseMediaType(byExt); parseErr == nil {
				return mediaType
			}
			return byExt
		}
	}

	return defaultContentType
}
