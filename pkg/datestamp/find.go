package datestamp

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/karrick/godirwalk"
	"k8s.io/klog/v2"
)

// IsCandidate reports whether name has an extension in formats.
func IsCandidate(name string, formats map[string]bool) bool {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	return formats[strings.ToLower(ext)]
}

// Find lists candidate images directly inside dir, sorted by name. It does not recurse.
func Find(dir string, formats map[string]bool) ([]string, error) {
	des, err := godirwalk.ReadDirents(dir, nil)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	sort.Sort(des)

	found := []string{}
	for _, de := range des {
		path := filepath.Join(dir, de.Name())

		isDir, err := de.IsDirOrSymlinkToDir()
		if err != nil {
			klog.Warningf("unable to stat %s: %v", path, err)
			continue
		}
		if isDir {
			continue
		}

		if !IsCandidate(de.Name(), formats) {
			klog.V(1).Infof("skipping unsupported file: %s", de.Name())
			continue
		}

		klog.V(1).Infof("found %s", path)
		found = append(found, path)
	}

	return found, nil
}
