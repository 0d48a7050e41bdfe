// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package posix provides [POSIX]-style helpers for command-line programs.
//
// ExecutableName gives the name a binary was invoked under, without
// directories or a trailing ".exe", so usage strings match what the user
// typed:
//
//	rootCmd := &cobra.Command{
//	    Use: posix.ExecutableName("tls-cert-chain-validator"),
//	}
//
// Behavior across platforms:
//
//   - Linux/macOS: "/usr/bin/myapp" → "myapp"
//   - Windows: "C:\bin\myapp.exe" → "myapp"
//   - Empty os.Args: the fallback
//
// [POSIX]: https://grokipedia.com/page/POSIX
package posix
