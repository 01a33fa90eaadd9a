package chip8

import (
	"fmt"
	"os"
	"path"
)

// A rom is a raw byte stream loaded at the entry point. No header, no
// checksum; the only thing to validate is that it fits in 0x200..0xFFF.
type Rom struct {
	Name string
	Data []byte
}

func NewRomFromBytes(name string, data []byte) (Rom, error) {
	if len(data) > RomMaxSizeBytes {
		return Rom{}, fmt.Errorf("rom %s: %w: actual size is %d bytes, max size is %d bytes",
			name, ErrRomTooLarge, len(data), RomMaxSizeBytes,
		)
	}

	return Rom{
		Name: name,
		Data: data,
	}, nil
}

func NewRomFromFile(romPath string) (Rom, error) {
	data, err := os.ReadFile(romPath)
	if err != nil {
		return Rom{}, fmt.Errorf("read data from rom file %s: %w", romPath, err)
	}

	return NewRomFromBytes(path.Base(romPath), data)
}
