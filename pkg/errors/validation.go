package errors

import (
	"slices"
	"strings"
	"unicode"
)

const (
	maxIDLength    = 256
	maxPathDepth   = 1024
	maxFeatureName = 128
)

// ValidateID validates a single node id read from user input.
//
// The rules are intentionally conservative:
//   - No empty ids
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node id cannot be empty")
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidInput, "node id too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node id contains invalid control characters")
		}
	}

	return nil
}

// ValidatePath validates an id path (root id first) used to address a node.
// Every segment must be a valid id.
func ValidatePath(path []string) error {
	if len(path) == 0 {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	if len(path) > maxPathDepth {
		return New(ErrCodeInvalidPath, "path too deep (max %d segments)", maxPathDepth)
	}

	for i, seg := range path {
		if err := ValidateID(seg); err != nil {
			return Wrap(ErrCodeInvalidPath, err, "segment %d", i)
		}
	}

	return nil
}

// ParsePath splits a slash-separated id path ("root/a/c") and validates it.
func ParsePath(s string) ([]string, error) {
	path := strings.Split(strings.Trim(s, "/"), "/")
	if s == "" || s == "/" {
		path = nil
	}
	if err := ValidatePath(path); err != nil {
		return nil, err
	}
	return path, nil
}

// ValidateFeatureName validates a feature name. Names may not be empty,
// contain whitespace or control characters, or exceed 128 characters.
func ValidateFeatureName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "feature name cannot be empty")
	}

	if len(name) > maxFeatureName {
		return New(ErrCodeInvalidInput, "feature name too long (max %d characters)", maxFeatureName)
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "feature name %q contains whitespace or control characters", name)
		}
	}

	return nil
}

// ValidateFormat checks that format is one of allowed.
func ValidateFormat(format string, allowed []string) error {
	if !slices.Contains(allowed, format) {
		return New(ErrCodeInvalidFormat, "invalid format: %s (must be one of %s)", format, strings.Join(allowed, ", "))
	}
	return nil
}
