// Copyright 2026 The Gemstone Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports the build version of Gemstone binaries.
package version

// Version is the release identifier, overridden at build time with
//
//	go build -ldflags "-X github.com/gemstone/gemstone/lib/version.Version=v1.2.3"
var Version = "dev"

// Info returns the version string for --version output.
func Info() string { return Version }
