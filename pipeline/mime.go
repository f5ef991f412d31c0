package pipeline

import (
	"path"
	"strings"

	"github.com/skillsenselab/prepkit/util"
)

// mimeByExtension is the fixed lookup table for deriving a media MIME type
// from the storage key's file extension.
var mimeByExtension = map[string]string{
	".webm": "audio/webm",
	".mp3":  "audio/mpeg",
	".mp4":  "audio/mp4",
	".m4a":  "audio/mp4",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".flac": "audio/flac",
	".aac":  "audio/aac",
}

// MIMEForKey derives the MIME type from the media key's extension. Unknown
// or missing extensions fall back to the recording's native container
// format.
func MIMEForKey(mediaKey, nativeFormat string) string {
	ext := strings.ToLower(path.Ext(mediaKey))
	return util.Coalesce(mimeByExtension[ext], nativeFormat)
}
