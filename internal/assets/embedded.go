package assets

import (
	"embed"
	"fmt"
)

//go:embed styles/*
var styles embed.FS

// loadStyle loads a CSS blob from embedded assets by name.
// The name should not include the .css extension.
func loadStyle(name string) (string, error) {
	if err := validateAssetName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}

	return string(content), nil
}
