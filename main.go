// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package main is the entry point for the Streamplay CLI application.
// It provides a terminal client for the Streamplay video platform.
package main

import (
	"streamplay/cli/cmd"
)

// main is the entry point for the Streamplay CLI application.
// It initializes and executes the command-line interface.
func main() {
	cmd.Execute()
}
