package mediatypes

import (
	"fmt"
	"path"
	"strings"
)

// MediaType is the closed set of media kinds the catalog knows about.
type MediaType int

const (
	// Other is any file the catalog cannot play or display.
	Other MediaType = iota
	// Image is a still image.
	Image
	// MP4Video is an MPEG-4 family video.
	MP4Video
	// FlashVideo is a Flash (flv) video.
	FlashVideo
	// OGVVideo is an Ogg/Theora video.
	OGVVideo
)

// Listable lists the types a qualifier may select, in a fixed order.
var Listable = []MediaType{Image, MP4Video, FlashVideo, OGVVideo}

var typeNames = map[MediaType]string{
	Other:      "other",
	Image:      "image",
	MP4Video:   "mp4",
	FlashVideo: "flv",
	OGVVideo:   "ogv",
}

// String returns the wire name of the type.
func (t MediaType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(t))
}

// MarshalText encodes the type by its wire name.
func (t MediaType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a wire name produced by MarshalText.
func (t *MediaType) UnmarshalText(b []byte) error {
	parsed, err := ParseMediaType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseMediaType parses a wire name. "video" is not accepted; callers must
// pick a video family.
func ParseMediaType(s string) (MediaType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "image", "images":
		return Image, nil
	case "mp4", "mp4_video":
		return MP4Video, nil
	case "flv", "flash", "flash_video":
		return FlashVideo, nil
	case "ogv", "ogg", "ogv_video":
		return OGVVideo, nil
	case "other":
		return Other, nil
	}
	return Other, fmt.Errorf("unknown media type %q", s)
}

// Suffixes maps each listable type to the filename suffixes (lowercase, no
// dot) a directory entry must end with to be selected for that type.
var Suffixes = map[MediaType][]string{
	Image:      {"jpg", "jpeg", "png", "gif"},
	MP4Video:   {"mpg4", "mp4", "m4v"},
	FlashVideo: {"flv"},
	OGVVideo:   {"ogv"},
}

// MimeTypes maps file extensions to their MIME types.
var MimeTypes = map[string]string{
	// Images
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
	".tiff": "image/tiff",
	".tif":  "image/tiff",

	// Videos
	".mp4":  "video/mp4",
	".mpg4": "video/mp4",
	".m4v":  "video/mp4",
	".flv":  "video/x-flv",
	".ogv":  "video/ogg",
	".ogg":  "application/ogg",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".mov":  "video/quicktime",
}

const defaultMimeType = "application/octet-stream"

// extension returns the lowercase extension of the last element of an
// identifier. Identifiers may use either separator.
func extension(identifier string) string {
	name := identifier
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	return strings.ToLower(path.Ext(name))
}

// MimeType returns the MIME type for an identifier based on its suffix.
// Returns "application/octet-stream" if the suffix is not recognized.
func MimeType(identifier string) string {
	if mime, ok := MimeTypes[extension(identifier)]; ok {
		return mime
	}
	return defaultMimeType
}

// Classify derives the media type of an identifier from its suffix.
// It never fails; unknown suffixes are Other.
func Classify(identifier string) MediaType {
	mime := MimeType(identifier)
	switch {
	case strings.HasPrefix(mime, "image"):
		return Image
	case strings.Contains(mime, "ogg"):
		return OGVVideo
	case strings.Contains(mime, "video/mp4"):
		return MP4Video
	case strings.Contains(mime, "video/x-flv"):
		return FlashVideo
	default:
		return Other
	}
}
