package youtube

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
)

// Archive is the persisted ledger of previously downloaded remote ids for
// one output directory: a plain text file, one id per line, append-only.
// Access is serialized so the invariant (a given id is fetched at most once
// per directory) holds even if callers ever overlap.
type Archive struct {
	path string

	mu  sync.Mutex
	ids map[string]struct{}
}

// LoadArchive reads the ledger at path. A missing file is an empty ledger.
func LoadArchive(path string) (*Archive, error) {
	a := &Archive{
		path: path,
		ids:  make(map[string]struct{}),
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return a, nil
		}
		return nil, fmt.Errorf("failed to open download archive: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		// Tolerate the "<extractor> <id>" form older ledgers used.
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		a.ids[fields[len(fields)-1]] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read download archive: %w", err)
	}

	return a, nil
}

// Contains reports whether the remote id was already downloaded.
func (a *Archive) Contains(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.ids[id]
	return ok
}

// Add records a remote id in memory and appends it to the ledger file.
func (a *Archive) Add(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.ids[id]; ok {
		return nil
	}

	file, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open download archive for append: %w", err)
	}
	defer file.Close()

	if _, err := fmt.Fprintln(file, id); err != nil {
		return fmt.Errorf("failed to append to download archive: %w", err)
	}

	a.ids[id] = struct{}{}
	return nil
}

// Len returns the number of recorded ids.
func (a *Archive) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.ids)
}
