package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

// PlanImageKey names a plan image object as <unix-millis>-<slug>.<ext>.
func PlanImageKey(now time.Time, filename, ext string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	name := slug.Make(base)
	if name == "" {
		name = "image"
	}
	return fmt.Sprintf("%d-%s.%s", now.UnixMilli(), name, normalizeExt(ext))
}

// ProfileImageKey names a provider profile image as <provider-id>-<unix-millis>.<ext>.
func ProfileImageKey(providerID string, now time.Time, ext string) string {
	return fmt.Sprintf("%s-%d.%s", providerID, now.UnixMilli(), normalizeExt(ext))
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "jpeg" {
		return "jpg"
	}
	return ext
}
