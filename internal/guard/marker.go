package guard

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/empiricaly/create-empirica-app/internal/platform"
)

// MarkerFile is written into the destination before rendering and removed
// once the run completes. Its presence means the directory belongs to an
// unfinished run of this tool and may be rendered into again.
const MarkerFile = ".create-empirica-app.json"

// Marker records which run owns a destination directory.
type Marker struct {
	Name      string    `json:"name"`
	Template  string    `json:"template"`
	Stage     string    `json:"stage"`
	StartedAt time.Time `json:"started_at"`
}

// ReadMarker returns the marker in root, or nil, nil if there is none.
// An unreadable marker is treated as absent so that it shows up as a
// conflict rather than granting ownership.
func ReadMarker(root string) (*Marker, error) {
	data, err := os.ReadFile(filepath.Join(root, MarkerFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", MarkerFile, err)
	}

	var m Marker
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, nil
	}
	return &m, nil
}

// WriteMarker records m in root, replacing any previous marker.
func WriteMarker(root string, m Marker) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling marker: %w", err)
	}
	data = append(data, '\n')
	if err := platform.WriteFileAtomic(filepath.Join(root, MarkerFile), data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", MarkerFile, err)
	}
	return nil
}

// RemoveMarker deletes the marker from root. A missing marker is not an error.
func RemoveMarker(root string) error {
	err := os.Remove(filepath.Join(root, MarkerFile))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %s: %w", MarkerFile, err)
	}
	return nil
}
