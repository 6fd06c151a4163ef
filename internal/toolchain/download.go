package toolchain

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/empiricaly/create-empirica-app/internal/branding"
)

// DownloadScript fetches the installer script into destDir and returns its
// path.
func (i *Installer) DownloadScript(ctx context.Context, destDir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.installURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating download request: %w", err)
	}
	req.Header.Set("User-Agent", branding.CLIName())

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", i.installURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download returned status %d", resp.StatusCode)
	}

	destPath := filepath.Join(destDir, "install.sh")
	f, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0700)
	if err != nil {
		return "", fmt.Errorf("creating download file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, resp.Body)
	if err != nil {
		return "", fmt.Errorf("writing download: %w", err)
	}
	if n == 0 {
		return "", fmt.Errorf("installer script at %s is empty", i.installURL)
	}
	return destPath, nil
}
