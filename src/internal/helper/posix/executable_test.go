// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

const fallback = "tls-cert-chain-validator"

func TestBaseName(t *testing.T) {
	tests := []struct {
		name     string
		arg0     string
		expected string
	}{
		{name: "Relative Path", arg0: "./myapp", expected: "myapp"},
		{name: "Just Filename", arg0: "myapp", expected: "myapp"},
		{name: "Empty", arg0: "", expected: fallback},
		{name: "Exe Suffix", arg0: "myapp.exe", expected: "myapp"},
		{name: "Only Separators", arg0: `\\`, expected: fallback},
		{name: "Foreign Separators", arg0: `C:\windows\style\path\system.exe`, expected: "system"},
	}
	if runtime.GOOS != "windows" {
		tests = append(tests,
			struct {
				name     string
				arg0     string
				expected string
			}{name: "Unix Absolute Path", arg0: "/usr/local/bin/myapp", expected: "myapp"},
		)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, baseName(tt.arg0, fallback))
		})
	}
}

func TestExecutableName(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = nil
	assert.Equal(t, fallback, ExecutableName(fallback))

	os.Args = []string{"./bin/x509-cert-chain-validator"}
	assert.Equal(t, "x509-cert-chain-validator", ExecutableName(fallback))
}
