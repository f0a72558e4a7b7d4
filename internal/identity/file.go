package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const deviceFile = "device.json"

type deviceRecord struct {
	DeviceID string `json:"device_id"`
}

// FileProvider persists the device identifier as JSON inside a directory.
// The file is only read or written on the first DeviceID call.
type FileProvider struct {
	dir string

	mu sync.Mutex
	id string
}

// NewFileProvider creates a provider storing its identifier under dir.
func NewFileProvider(dir string) *FileProvider {
	return &FileProvider{dir: dir}
}

// Path returns the file holding the identifier.
func (p *FileProvider) Path() string {
	return filepath.Join(p.dir, deviceFile)
}

// DeviceID returns the stored identifier, creating and saving one if the file
// is missing or holds an invalid value.
func (p *FileProvider) DeviceID(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.id != "" {
		return p.id, nil
	}

	id, err := p.load()
	if err != nil {
		return "", err
	}
	if id == "" {
		id = NewID()
		if err := p.save(id); err != nil {
			return "", err
		}
	}

	p.id = id
	return id, nil
}

func (p *FileProvider) load() (string, error) {
	data, err := os.ReadFile(p.Path()) // #nosec G304 -- fixed file name under the config dir
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read device id: %w", err)
	}

	var rec deviceRecord
	if err := json.Unmarshal(data, &rec); err != nil || !Valid(rec.DeviceID) {
		return "", nil
	}
	return rec.DeviceID, nil
}

func (p *FileProvider) save(id string) error {
	if err := os.MkdirAll(p.dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.Marshal(deviceRecord{DeviceID: id})
	if err != nil {
		return fmt.Errorf("failed to marshal device id: %w", err)
	}

	if err := os.WriteFile(p.Path(), data, 0600); err != nil {
		return fmt.Errorf("failed to write device id: %w", err)
	}
	return nil
}
