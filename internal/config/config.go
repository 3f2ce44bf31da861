package config

import "sync"

// RunSettings holds process-wide generation settings
type RunSettings struct {
	mu            sync.RWMutex
	workers       int
	thumbnailSize int
}

var globalRunSettings = &RunSettings{
	workers:       1,   // serial by default
	thumbnailSize: 512, // pixels per side
}

// GetWorkers returns the number of goroutines used by each pipeline pass
func GetWorkers() int {
	globalRunSettings.mu.RLock()
	defer globalRunSettings.mu.RUnlock()
	return globalRunSettings.workers
}

// SetWorkers sets the number of goroutines used by each pipeline pass
func SetWorkers(n int) {
	globalRunSettings.mu.Lock()
	defer globalRunSettings.mu.Unlock()

	// Clamp to reasonable values
	if n < 1 {
		n = 1
	}
	if n > 64 {
		n = 64
	}

	globalRunSettings.workers = n
}

// GetThumbnailSize returns the thumbnail edge length in pixels
func GetThumbnailSize() int {
	globalRunSettings.mu.RLock()
	defer globalRunSettings.mu.RUnlock()
	return globalRunSettings.thumbnailSize
}

// SetThumbnailSize sets the thumbnail edge length in pixels
func SetThumbnailSize(size int) {
	globalRunSettings.mu.Lock()
	defer globalRunSettings.mu.Unlock()

	if size < 64 {
		size = 64
	}
	if size > 4096 {
		size = 4096
	}

	globalRunSettings.thumbnailSize = size
}
