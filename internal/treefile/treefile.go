// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package treefile

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/matt-FFFFFF/treesh/internal/cmdtree"
	"github.com/matt-FFFFFF/treesh/internal/ctxlog"
	"github.com/spf13/afero"
)

var (
	// ErrLoad is returned when a tree file cannot be obtained.
	ErrLoad = errors.New("could not load tree file")
	// ErrUnknownFormat is returned for file extensions that have no decoder.
	ErrUnknownFormat = errors.New("unknown tree file format")
	// ErrDecode is returned when a tree file cannot be decoded.
	ErrDecode = errors.New("could not decode tree file")
)

// FsFactory is a function that returns the filesystem local sources are read from.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Load reads and decodes the tree at src. Paths present on the local filesystem are read directly,
// anything else is fetched with go-getter.
func Load(ctx context.Context, src string) (*cmdtree.Node, error) {
	if src == "" {
		return nil, fmt.Errorf("%w: empty source", ErrLoad)
	}

	fs := FsFactory()

	var (
		data []byte
		name string
	)

	if ok, _ := afero.Exists(fs, src); ok {
		ctxlog.Debug(ctx, "reading local tree file", "path", src)

		b, err := afero.ReadFile(fs, src)
		if err != nil {
			return nil, errors.Join(ErrLoad, err)
		}

		data, name = b, src
	} else {
		ctxlog.Debug(ctx, "fetching tree file", "url", src)

		b, fileName, err := getURL(ctx, src)
		if err != nil {
			return nil, errors.Join(ErrLoad, err)
		}

		data, name = b, fileName
	}

	return Decode(name, data)
}

// Decode decodes data using the syntax implied by name's extension.
func Decode(name string, data []byte) (*cmdtree.Node, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		n, err := cmdtree.Unmarshal(data)
		if err != nil {
			return nil, errors.Join(ErrDecode, err)
		}

		return n, nil
	case ".hcl":
		n, err := decodeHCL(name, data)
		if err != nil {
			return nil, errors.Join(ErrDecode, err)
		}

		return n, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}
