// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package treefile loads command trees from files.
//
// A source is either a path on the local filesystem or a go-getter URL.
// The syntax is chosen by extension: `.yaml`, `.yml` and `.json` are decoded as YAML,
// `.hcl` as HCL native syntax.
//
// In HCL a tree is a single block. Operator blocks (`sequential`, `parallel`, `or`, `and`, `pipe`)
// contain exactly two child blocks. Leaves are `command` blocks:
//
//	pipe {
//	  command {
//	    verb   = "echo"
//	    params = ["hello", "$HOME"]
//	  }
//	  command {
//	    verb = "cat"
//	    out  = "out.txt"
//	    io   = "append-out"
//	  }
//	}
//
// or `assign` blocks with `name` and `value` attributes. HCL interpolation is not evaluated,
// so variables are written `$NAME` or `$${NAME}`.
package treefile
