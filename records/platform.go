package records

import (
	"path/filepath"
	"strings"

	"github.com/pressgather/pressgather/core"
)

// DetectPlatform guesses the originating platform from an export's file
// name. Talkwalker exports are named either "talkwalker..." or "export...";
// harvester output starts with "googlenews". Anything else is assumed to be
// a Newswhip export.
func DetectPlatform(path string) core.Platform {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasPrefix(name, "talkwalker"), strings.HasPrefix(name, "export"):
		return core.PlatformTalkwalker
	case strings.HasPrefix(name, "googlenews"):
		return core.PlatformGoogleNews
	default:
		return core.PlatformNewswhip
	}
}
