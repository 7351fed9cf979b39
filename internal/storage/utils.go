package storage

import (
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ExportFileName names an exported chart image: <target>-<unix millis>.png
func ExportFileName(target string, timestamp time.Time) string {
	return fmt.Sprintf("%s-%d.png", target, timestamp.UnixMilli())
}

// ExportFolderPath groups exports by UTC day
// Format: exports/YYYY/MM/DD
func ExportFolderPath(timestamp time.Time) string {
	t := timestamp.UTC()
	return fmt.Sprintf("exports/%04d/%02d/%02d", t.Year(), t.Month(), t.Day())
}

// ExportObjectPath is the slash-separated path of an export
func ExportObjectPath(name string, timestamp time.Time) string {
	return path.Join(ExportFolderPath(timestamp), name)
}

// GetContentType determines the MIME content type based on file extension
func GetContentType(filename string) string {
	switch strings.ToLower(path.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".json":
		return "application/json"
	case ".html":
		return "text/html"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}

// exportMillis reads the <unix millis> suffix of an export name, or -1
// when the name does not carry one
func exportMillis(objectPath string) int64 {
	base := strings.TrimSuffix(path.Base(objectPath), path.Ext(objectPath))
	i := strings.LastIndex(base, "-")
	if i < 0 {
		return -1
	}
	ms, err := strconv.ParseInt(base[i+1:], 10, 64)
	if err != nil {
		return -1
	}
	return ms
}

// newestFirst orders export paths by their timestamp suffix, newest first,
// and applies limit. Names without a timestamp go last in reverse path order.
func newestFirst(paths []string, limit int) []string {
	sort.SliceStable(paths, func(i, j int) bool {
		mi, mj := exportMillis(paths[i]), exportMillis(paths[j])
		if mi != mj {
			return mi > mj
		}
		return paths[i] > paths[j]
	})
	if limit > 0 && limit < len(paths) {
		paths = paths[:limit]
	}
	return paths
}
