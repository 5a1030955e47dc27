package platform

import (
	"fmt"
	"os"

	"github.com/dkarella/i8080-space-invaders/internal/memory"
)

// LoadROM reads the ROM file at path, rejecting anything larger than the
// cabinet's 16KiB address space before the caller ever touches
// memory.Memory.LoadROM.
func LoadROM(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rom: %w", err)
	}
	if len(data) > memory.Size {
		return nil, fmt.Errorf("rom %q is %d bytes, exceeds %d byte address space", path, len(data), memory.Size)
	}
	return data, nil
}
