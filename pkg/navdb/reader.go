package navdb

import (
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// zstdReadCloser wraps a zstd.Decoder so it satisfies io.ReadCloser
// alongside the underlying file.
type zstdReadCloser struct {
	*zstd.Decoder
	f *os.File
}

func (z *zstdReadCloser) Close() error {
	z.Decoder.Close()
	return z.f.Close()
}

// openMaybeCompressed opens path, transparently preferring a
// zstd-compressed sibling (path+".zst") when present, mirroring the
// teacher's bundled-resource loading convention.
func openMaybeCompressed(path string) (io.ReadCloser, error) {
	if f, err := os.Open(path + ".zst"); err == nil {
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &zstdReadCloser{Decoder: zr, f: f}, nil
	}
	return os.Open(path)
}
