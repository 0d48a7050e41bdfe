// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os"
	"path/filepath"
	"strings"
)

// ExecutableName returns the base name of os.Args[0] without a ".exe"
// suffix, or fallback when the process has no usable argument zero.
func ExecutableName(fallback string) string {
	if len(os.Args) == 0 {
		return fallback
	}
	return baseName(os.Args[0], fallback)
}

func baseName(arg0, fallback string) string {
	if arg0 == "" {
		return fallback
	}

	name := filepath.Base(arg0)

	// A path using the other platform's separator survives filepath.Base.
	if strings.ContainsAny(name, `/\`) {
		parts := strings.FieldsFunc(name, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) == 0 {
			return fallback
		}
		name = parts[len(parts)-1]
	}

	name = strings.TrimSuffix(name, ".exe")
	if name == "" || name == "." {
		return fallback
	}
	return name
}
