// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors provides user-friendly presentation of HTTP and network
// failures. Connectivity problems carry no information about session validity,
// so they are shown as-is and never routed through the auth retry machinery.
package httperrors

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
)

// FormatNetworkError converts technical HTTP/network errors into user-friendly
// messages. It detects common error types (timeout, DNS, connection refused,
// TLS) and prints troubleshooting hints before returning a wrapped error for
// logging.
func FormatNetworkError(err error, context string) error {
	if err == nil {
		return nil
	}
	displayErrorMessage(err, context)
	return fmt.Errorf("network error: %w", err)
}

func displayErrorMessage(err error, context string) {
	switch {
	case isTimeoutError(err):
		pterm.Printf("Connection timeout while %s\n", context)
		pterm.Println("The server took too long to respond. Check your connection and try again.")
	case isDNSError(err):
		pterm.Printf("Could not resolve the backend host while %s\n", context)
		pterm.Println("Check your network connection or the STREAMPLAY_API_URL setting.")
	case isConnectionRefusedError(err):
		pterm.Printf("Connection refused while %s\n", context)
		pterm.Println("The backend is unreachable. It may be down or the base URL may be wrong.")
	case isTLSError(err):
		pterm.Printf("Secure connection failed while %s\n", context)
		pterm.Println("There is a TLS/certificate problem between you and the backend.")
	default:
		pterm.Printf("Network error while %s: %v\n", context, err)
	}
}

// isTimeoutError checks if the error is a timeout error.
func isTimeoutError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "timeout") || strings.Contains(s, "deadline exceeded")
}

// isDNSError checks if the error is a DNS resolution error.
func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// isConnectionRefusedError checks if the error is a connection refused error.
func isConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, syscall.ECONNREFUSED)
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

// isTLSError checks if the error is a TLS/certificate error.
func isTLSError(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "tls") ||
		strings.Contains(s, "certificate") ||
		strings.Contains(s, "handshake")
}
