package enums

import "fmt"

// Permission mirrors the platform notification permission lifecycle.
type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

var validPermissions = []Permission{
	PermissionDefault,
	PermissionGranted,
	PermissionDenied,
}

// IsValid reports whether the value matches the canonical permission enum.
func (p Permission) IsValid() bool {
	for _, candidate := range validPermissions {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePermission converts the raw string to Permission.
func ParsePermission(value string) (Permission, error) {
	for _, candidate := range validPermissions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid permission %q", value)
}
