package navdb

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/procspec/navproc/pkg/log"
	"github.com/procspec/navproc/pkg/util"
)

// Open loads a NavDB from dir, which must contain earth_fix.dat,
// earth_nav.dat, earth_aptmeta.dat, and a CIFP/ subdirectory of
// per-airport <ICAO>.dat files (each input optionally zstd-compressed
// as <name>.zst). Per airport, a malformed CIFP file aborts that
// airport's load and is recorded on errLog; the rest of the directory
// continues.
func Open(dir string, lg *log.Logger, errLog *util.ErrorLogger) (*DB, error) {
	fixes, err := loadFile(filepath.Join(dir, "earth_fix.dat"), loadFixes)
	if err != nil {
		return nil, fmt.Errorf("earth_fix.dat: %w", err)
	}

	navResult, err := loadFileT(filepath.Join(dir, "earth_nav.dat"), loadNavaids)
	if err != nil {
		return nil, fmt.Errorf("earth_nav.dat: %w", err)
	}
	navaids, thresholds := navResult.a, navResult.b

	airports, err := loadFile(filepath.Join(dir, "earth_aptmeta.dat"), loadAirportMeta)
	if err != nil {
		return nil, fmt.Errorf("earth_aptmeta.dat: %w", err)
	}

	db := &DB{fixes: fixes, navaids: navaids, airports: airports, thresholds: thresholds}

	for icao, airport := range airports {
		path := filepath.Join(dir, "CIFP", icao+".dat")
		data, err := readAll(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			if errLog != nil {
				errLog.Push(icao)
				errLog.Error(err)
				errLog.Pop()
			} else if lg != nil {
				lg.Errorf("%s: %v", icao, err)
			}
			continue
		}

		if err := db.loadCIFP(airport, string(data)); err != nil {
			if errLog != nil {
				errLog.Push(icao)
				errLog.Error(err)
				errLog.Pop()
			} else if lg != nil {
				lg.Errorf("%s: CIFP load aborted: %v", icao, err)
			}
			continue
		}
	}

	return db, nil
}

func loadFile[V any](path string, parse func(io.Reader) (V, error)) (V, error) {
	var zero V
	f, err := openMaybeCompressed(path)
	if err != nil {
		return zero, err
	}
	defer f.Close()
	return parse(f)
}

type pair[A, B any] struct {
	a A
	b B
}

func loadFileT[A, B any](path string, parse func(io.Reader) (A, B, error)) (pair[A, B], error) {
	f, err := openMaybeCompressed(path)
	if err != nil {
		return pair[A, B]{}, err
	}
	defer f.Close()
	a, b, err := parse(f)
	return pair[A, B]{a: a, b: b}, err
}

func readAll(path string) ([]byte, error) {
	f, err := openMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
