// internal/extraction/images.go
package extraction

import (
	"regexp"
	"strings"
)

// MinPhotoLength filters out empty or truncated captures.
const MinPhotoLength = 50

const defaultMimeType = "image/jpeg"

var dataURLHeader = regexp.MustCompile(`^data:(image/[a-zA-Z0-9\-+.]+);base64,`)

// InlineImage is a base64 payload with its mime type.
type InlineImage struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// SplitDataURL sniffs the mime type of a data URL and returns the bare base64 payload.
// Payloads without a recognizable header are assumed to be JPEG.
func SplitDataURL(photo string) InlineImage {
	mime := defaultMimeType
	if m := dataURLHeader.FindStringSubmatch(photo); m != nil {
		mime = m[1]
	}
	data := photo
	if i := strings.Index(photo, ","); i >= 0 {
		data = photo[i+1:]
	}
	return InlineImage{MimeType: mime, Data: data}
}

// ValidPhotos drops captures too short to hold an image.
func ValidPhotos(photos []string) []string {
	out := make([]string, 0, len(photos))
	for _, p := range photos {
		if len(p) > MinPhotoLength {
			out = append(out, p)
		}
	}
	return out
}

// Extension maps an image mime type to a file extension.
func Extension(mime string) string {
	switch mime {
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	case "image/heic":
		return "heic"
	case "image/gif":
		return "gif"
	default:
		return "jpg"
	}
}
