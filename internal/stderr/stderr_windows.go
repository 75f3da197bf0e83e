//go:build windows

// Package stderr provides a no-op implementation for Windows.
// Windows audio backends don't write to the console.
package stderr

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Start is a no-op on Windows.
func Start(_ *logrus.Entry) error {
	return nil
}

// WriteOriginal writes to stderr.
func WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop is a no-op on Windows.
func Stop() {}
