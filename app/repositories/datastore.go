package repositories

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// readCollection loads a whole JSON collection file. A missing file or one
// holding undecodable content is treated as an empty collection and the file
// is immediately rewritten as such.
func readCollection[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("readCollection: %s does not exist, initializing empty collection", path)
			if werr := writeCollection(path, []T{}); werr != nil {
				return nil, werr
			}
			return []T{}, nil
		}
		return nil, err
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("readCollection: %s holds invalid JSON (%v), resetting to empty collection", path, err)
		if werr := writeCollection(path, []T{}); werr != nil {
			return nil, werr
		}
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// writeCollection rewrites the whole collection file. The write goes through
// a uniquely named temp file and a rename so a crash mid-write cannot leave a
// truncated collection behind. Concurrent writers are still unguarded.
func writeCollection[T any](path string, items []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(items, "", "    ")
	if err != nil {
		return err
	}

	tmp := fmt.Sprintf("%s.tmp-%s", path, uuid.NewString()[:8])
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
