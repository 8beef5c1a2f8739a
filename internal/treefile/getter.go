// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package treefile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	getter "github.com/hashicorp/go-getter/v2"
)

// ErrGetTreeFile is returned when go-getter cannot retrieve the tree file.
var ErrGetTreeFile = errors.New("failed to get tree file")

// getURL retrieves the file at url using Hashicorp's go-getter and returns its content and base name.
// The download directory is removed before returning.
func getURL(ctx context.Context, url string) ([]byte, string, error) {
	if url == "" {
		return nil, "", ErrGetTreeFile
	}

	tmpDir, err := os.MkdirTemp("", "treesh-getter-*")
	if err != nil {
		return nil, "", errors.Join(ErrGetTreeFile, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, "", errors.Join(ErrGetTreeFile, err)
	}

	client := getter.Client{
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Src:     url,
		Dst:     filepath.Join(tmpDir, "g"),
		Pwd:     wd,
		GetMode: getter.ModeDir,
	}

	var fileName string
	// Remote sources are fetched as a directory and the file is read from there.
	// https://github.com/hashicorp/go-getter/issues/98
	if ok, err := getter.Detect(req, &getter.FileGetter{}); !ok || err != nil {
		if err != nil {
			return nil, "", errors.Join(ErrGetTreeFile, err)
		}

		var newURL string

		newURL, fileName = splitFileNameFromGetterURL(url)
		if newURL == "" || fileName == "" {
			return nil, "", fmt.Errorf("%w: invalid URL format: %s", ErrGetTreeFile, url)
		}

		req.Src = newURL
	}

	if fileName == "" {
		req.Src = filepath.Dir(url)
		fileName = filepath.Base(url)
	}

	res, err := client.Get(ctx, req)
	if err != nil {
		return nil, "", errors.Join(ErrGetTreeFile, err)
	}

	data, err := os.ReadFile(filepath.Join(res.Dst, fileName))
	if err != nil {
		return nil, "", errors.Join(ErrGetTreeFile, err)
	}

	return data, fileName, nil
}

const (
	goGetterPathSeparator = "//"
	goGetterRefSeparator  = "?"
	minimumGetterParts    = 3 // scheme, host and path
)

// splitFileNameFromGetterURL splits a go-getter URL into the directory URL and the file name.
// A ref query is carried over to the directory URL.
func splitFileNameFromGetterURL(url string) (string, string) {
	var ref string

	parts := strings.Split(url, goGetterPathSeparator)
	if len(parts) < minimumGetterParts {
		return "", ""
	}

	last := parts[len(parts)-1]

	if strings.Contains(last, goGetterRefSeparator) {
		refSplit := strings.Split(last, goGetterRefSeparator)
		if len(refSplit) > 1 {
			ref = strings.Join(refSplit[1:], "")
		}

		last = refSplit[0]
	}

	if filepath.Clean(last) == filepath.Dir(last) {
		return "", ""
	}

	fileName := filepath.Base(last)
	parts[len(parts)-1] = filepath.Dir(last)

	if parts[len(parts)-1] == "." {
		parts = parts[:len(parts)-1]
	}

	newURL := strings.Join(parts, goGetterPathSeparator)

	if ref != "" {
		newURL += goGetterRefSeparator + ref
	}

	return newURL, fileName
}
