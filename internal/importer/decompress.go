package importer

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
)

// maybeGunzip decompresses data if it carries the gzip magic bytes, and
// returns it unchanged otherwise. Exports from the mobile app arrive gzipped
// once they exceed a few hundred workouts.
func maybeGunzip(data []byte) ([]byte, error) {
	if len(data) < 2 || data[0] != 0x1f || data[1] != 0x8b {
		return data, nil
	}

	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening gzip stream: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("decompressing gzip stream: %w", err)
	}
	return out, nil
}
