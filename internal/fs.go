package internal

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Compressed single-log extensions. O(1) map lookup
var compressExt = map[string]struct{}{
	".gz": {}, ".bz2": {}, ".xz": {}, ".zst": {},
	".br": {}, ".lz4": {}, ".lz": {}, ".sz": {}, ".zz": {},
}

// Extensions picked up when a directory argument is expanded. Explicit
// file arguments are never filtered.
var logExt = map[string]struct{}{
	".log": {}, ".txt": {}, ".logcat": {},
}

func IsCompressedLog(path string) bool {
	_, ok := compressExt[strings.ToLower(filepath.Ext(path))]
	return ok
}

// CollectLogFiles expands directory arguments into the log files they
// contain, in deterministic walk order. Plain file arguments pass through
// untouched, even when missing - the scanner records those as skipped.
func CollectLogFiles(ctx context.Context, args []string, maxDepth int) ([]string, error) {
	var out []string
	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil || !st.IsDir() {
			out = append(out, arg)
			continue
		}
		err = WalkWithDepth(ctx, arg, maxDepth, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				logrus.WithFields(logrus.Fields{"path": path, "err": err}).Warn("walk error, entry skipped")
				return nil
			}
			if d.IsDir() || !isLogName(d.Name()) {
				return nil
			}
			out = append(out, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// isLogName checks the extension, looking through one compression suffix
// so rotated logs like app.log.gz qualify.
func isLogName(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := compressExt[ext]; ok {
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(name, ext)))
	}
	_, ok := logExt[ext]
	return ok
}

// WalkWithDepth uses WalkDir and cuts branches by depth.
func WalkWithDepth(ctx context.Context, root string, maxDepth int, fn func(path string, d os.DirEntry, err error) error) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			return fn(path, d, err)
		}
		if maxDepth > 0 {
			rel, _ := filepath.Rel(root, path)
			if rel != "." && depthCount(rel) > maxDepth {
				return filepath.SkipDir
			}
		}
		return fn(path, d, nil)
	})
}

func depthCount(rel string) int {
	if rel == "" {
		return 0
	}
	return strings.Count(rel, string(os.PathSeparator)) + 1
}
