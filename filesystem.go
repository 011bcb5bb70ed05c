package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// LocalFileMap maps a '/'-separated path relative to the walked folder to the file's content.
type LocalFileMap map[string][]byte

// Paths returns the map's relative paths in sorted order.
func (m LocalFileMap) Paths() []string {
	paths := make([]string, 0, len(m))
	for path := range m {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

type walkFunc func(string) (LocalFileMap, error)

// walkDirectory reads every regular file under dirPath, depth first.
// A symlinked dirPath is resolved first; links below it are not followed.
func walkDirectory(dirPath string) (LocalFileMap, error) {
	rootPath, evalErr := filepath.EvalSymlinks(dirPath)
	if evalErr != nil {
		return nil, &FilesystemError{Op: "stat", Path: dirPath, Err: evalErr}
	}
	info, statErr := os.Stat(rootPath)
	if statErr != nil {
		return nil, &FilesystemError{Op: "stat", Path: dirPath, Err: statErr}
	}
	if !info.IsDir() {
		return nil, &FilesystemError{Op: "stat", Path: dirPath, Err: fs.ErrInvalid}
	}

	fileMap := make(LocalFileMap)
	walkErr := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return &FilesystemError{Op: "walk", Path: path, Err: err}
		}
		if d.IsDir() {
			return nil
		}
		relPath, relErr := filepath.Rel(rootPath, path)
		if relErr != nil {
			return &FilesystemError{Op: "walk", Path: path, Err: relErr}
		}
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return &FilesystemError{Op: "read", Path: path, Err: readErr}
		}
		fileMap[filepath.ToSlash(relPath)] = content
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return fileMap, nil
}

// readLocalFile returns a file's content as a string, or "" when it cannot be read.
func readLocalFile(path string) string {
	content, readErr := os.ReadFile(path)
	if readErr != nil {
		return ""
	}
	return string(content)
}
