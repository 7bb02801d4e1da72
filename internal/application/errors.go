package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNoDevice          = errors.New("no device selected")
	ErrSourceUnavailable = errors.New("enumeration source unavailable")
)

// EnumerationError represents a failed enumeration start
type EnumerationError struct {
	DeviceID string
	Reason   string
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("enumeration of %s failed: %s", e.DeviceID, e.Reason)
}

func (e *EnumerationError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

// UninstallError represents a failed package removal
type UninstallError struct {
	DeviceID  string
	PackageID string
	Reason    string
}

func (e *UninstallError) Error() string {
	return fmt.Sprintf("cannot uninstall %s from %s: %s", e.PackageID, e.DeviceID, e.Reason)
}
