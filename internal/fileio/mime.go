package fileio

import "strings"

var textExtensions = map[string]bool{
	"txt": true, "html": true, "json": true, "js": true, "css": true, "xml": true,
}

// IsTextExtension reports whether ext (without the leading dot) names a
// text-ish file.
func IsTextExtension(ext string) bool {
	return textExtensions[strings.ToLower(ext)]
}

var mimeByExtension = map[string]string{
	"txt":  "text/plain",
	"html": "text/html",
	"json": "application/json",
	"js":   "application/javascript",
	"css":  "text/css",
	"xml":  "application/xml",
	"mp4":  "video/mp4",
	"webm": "video/webm",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
}

// MIMEForExtension returns the Content-Type for a file extension (without
// the leading dot), defaulting to application/octet-stream.
func MIMEForExtension(ext string) string {
	if ct, ok := mimeByExtension[strings.ToLower(ext)]; ok {
		return ct
	}
	return "application/octet-stream"
}

// ExtensionOf returns the file extension without its leading dot, or "" if
// the filename has none.
func ExtensionOf(filename string) string {
	idx := strings.LastIndexByte(filename, '.')
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	return filename[idx+1:]
}
