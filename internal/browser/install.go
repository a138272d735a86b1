package browser

import (
	"context"
	"fmt"

	"github.com/go-rod/rod/lib/launcher"
)

// EnsureBrowser returns a path to a usable Chromium binary. A locally
// installed browser is preferred; otherwise a build for the current OS/arch
// is downloaded into rod's cache directory.
func EnsureBrowser(ctx context.Context) (string, error) {
	if path, has := launcher.LookPath(); has {
		return path, nil
	}

	downloader := launcher.NewBrowser()
	downloader.Context = ctx

	path, err := downloader.Get()
	if err != nil {
		return "", fmt.Errorf("failed to download browser: %w", err)
	}
	return path, nil
}
