package storage

import (
	"fmt"
	"io"
	"sync"

	"github.com/shashiranjanraj/supplyco/config"
	"github.com/shashiranjanraj/supplyco/pkg/logger"
)

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect boots the storage manager. Call once at application startup.
func Connect() {
	managerMu.Lock()
	defer managerMu.Unlock()

	defaultDisk = config.StorageDefault()

	// The local disk is always available.
	disks["local"] = newLocalDisk()

	// Boot the S3 disk only when a bucket is configured.
	if config.StorageS3Bucket() != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}
}

// Use returns the named disk ("local" or "s3").
func Use(name string) Disk {
	managerMu.RLock()
	d, ok := disks[name]
	managerMu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// RegisterDisk plugs in a custom Disk implementation at boot time.
func RegisterDisk(name string, d Disk) {
	managerMu.Lock()
	disks[name] = d
	managerMu.Unlock()
}

// Default disk helpers. These proxy to the STORAGE_DISK driver.

func defaultD() Disk {
	managerMu.RLock()
	name := defaultDisk
	managerMu.RUnlock()
	if name == "" {
		name = "local"
	}
	return Use(name)
}

func Put(path string, content []byte) error       { return defaultD().Put(path, content) }
func PutStream(path string, r io.Reader) error    { return defaultD().PutStream(path, r) }
func Get(path string) ([]byte, error)             { return defaultD().Get(path) }
func GetStream(path string) (io.ReadCloser, error) { return defaultD().GetStream(path) }
func Exists(path string) bool                     { return defaultD().Exists(path) }
func URL(path string) string                      { return defaultD().URL(path) }
func Delete(path string) error                    { return defaultD().Delete(path) }
