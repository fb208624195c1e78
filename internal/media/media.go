package media

// Store holds uploaded audio blobs. Filenames are opaque references
// generated by the implementation.
type Store interface {
	// Save persists the blob and returns its generated filename.
	Save(data []byte, ext string) (string, error)
	Read(filename string) ([]byte, error)
	// Delete removes the blob; deleting a missing blob is not an error.
	Delete(filename string) error
	Exists(filename string) bool
	// Path returns the on-disk location for a stored filename.
	Path(filename string) string
}

// AllowedMIME reports whether an upload MIME type is accepted.
func AllowedMIME(mimeType string) bool {
	_, ok := extByMIME[mimeType]
	return ok
}

var extByMIME = map[string]string{
	"audio/webm":  ".webm",
	"video/webm":  ".webm",
	"audio/wav":   ".wav",
	"audio/mpeg":  ".mp3",
	"audio/mp4":   ".m4a",
	"audio/ogg":   ".ogg",
	"audio/x-m4a": ".m4a",
}

// ExtForMIME maps an upload MIME type to a file extension, defaulting to
// .webm when the type is unknown.
func ExtForMIME(mimeType string) string {
	if ext, ok := extByMIME[mimeType]; ok {
		return ext
	}
	return ".webm"
}
