// Package output handles file naming and writing for imported paper notes.
// Notes are named after the paper title (e.g., "Attention_ Still All You Need.md")
// and an existing note is never overwritten.
package output

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/unicode/norm"
)

// ErrNoteExists is returned when a note for the paper is already present.
var ErrNoteExists = errors.New("note already exists")

// maxNameBytes keeps generated names under common filesystem limits once
// an extension is appended.
const maxNameBytes = 200

// unsafeChars are replaced with underscores in note file names.
var unsafeChars = strings.NewReplacer(
	`\`, "_", "/", "_", ":", "_", "*", "_", "?", "_",
	`"`, "_", "<", "_", ">", "_", "|", "_",
)

// Writer writes rendered notes into a paper folder.
type Writer struct {
	Folder string
}

// New creates a Writer targeting the given paper folder.
// If folder is empty, it defaults to the current working directory.
func New(folder string) (*Writer, error) {
	if folder == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		folder = wd
	}

	if err := os.MkdirAll(folder, 0755); err != nil {
		return nil, fmt.Errorf("creating paper folder: %w", err)
	}

	return &Writer{Folder: folder}, nil
}

// WriteNote writes data to "<folder>/<FileName(title)><ext>". When that
// file already exists it is left untouched and ErrNoteExists is returned
// along with its path.
func (w *Writer) WriteNote(title string, data []byte, ext string) (string, error) {
	name := FileName(title)
	if name == "" {
		return "", fmt.Errorf("empty note name for title %q", title)
	}
	path := filepath.Join(w.Folder, name+ext)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, fs.ErrExist) {
		log.Debug().Str("path", path).Msg("note exists, skipping")
		return path, ErrNoteExists
	}
	if err != nil {
		return "", fmt.Errorf("creating note %s: %w", path, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("writing note %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing note %s: %w", path, err)
	}
	return path, nil
}

// FileName converts a paper title into a file name without extension.
// The title is NFC-normalized, path and shell-reserved characters become
// underscores, and runs of whitespace collapse to one space.
func FileName(title string) string {
	name := norm.NFC.String(title)
	name = unsafeChars.Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	name = strings.Trim(name, ".")

	if len(name) > maxNameBytes {
		name = truncate(name, maxNameBytes)
	}
	return name
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	cut := 0
	for i := range s {
		if i > n {
			break
		}
		cut = i
	}
	return strings.TrimSpace(s[:cut])
}
