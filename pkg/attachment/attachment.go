// Package attachment resolves file references for the upload field, either by
// path or through aliases registered ahead of time (the "@sampleFile" form).
package attachment

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"
)

// Action describes how the file reached the input.
type Action string

const (
	ActionSelect   Action = "select"
	ActionDragDrop Action = "drag-drop"
)

var (
	// ErrUnknownAlias is returned when an "@alias" reference was never registered.
	ErrUnknownAlias = errors.New("attachment: unknown alias")
	// ErrEmptyReference is returned for blank references.
	ErrEmptyReference = errors.New("attachment: reference is required")
	// ErrUnsupportedAction is returned for actions other than select/drag-drop.
	ErrUnsupportedAction = errors.New("attachment: unsupported action")
)

// File is the selected file as observed by the upload input.
type File struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Size   int64  `json:"size"`
	Action Action `json:"action"`
}

// Empty reports whether no file is selected.
func (f File) Empty() bool { return f.Name == "" }

// Selector resolves references against a base filesystem.
type Selector struct {
	fsys    fs.FS
	mu      sync.RWMutex
	aliases map[string]string
}

// NewSelector constructs a Selector reading files from fsys.
func NewSelector(fsys fs.FS) *Selector {
	return &Selector{fsys: fsys, aliases: make(map[string]string)}
}

// Alias registers name so that "@name" resolves to filePath. The file must
// exist when the alias is registered.
func (s *Selector) Alias(name, filePath string) error {
	name = strings.TrimPrefix(strings.TrimSpace(name), "@")
	if name == "" {
		return ErrEmptyReference
	}
	if _, err := s.stat(filePath); err != nil {
		return err
	}
	s.mu.Lock()
	s.aliases[name] = cleanPath(filePath)
	s.mu.Unlock()
	return nil
}

// Select resolves ref with ActionSelect.
func (s *Selector) Select(ref string) (File, error) {
	return s.Resolve(ref, ActionSelect)
}

// Resolve turns ref into a File. References starting with '@' go through the
// alias table; anything else is a path inside the base filesystem.
func (s *Selector) Resolve(ref string, action Action) (File, error) {
	switch action {
	case "":
		action = ActionSelect
	case ActionSelect, ActionDragDrop:
	default:
		return File{}, fmt.Errorf("%w: %q", ErrUnsupportedAction, action)
	}

	ref = strings.TrimSpace(ref)
	if ref == "" || ref == "@" {
		return File{}, ErrEmptyReference
	}

	target := ref
	if strings.HasPrefix(ref, "@") {
		s.mu.RLock()
		resolved, ok := s.aliases[ref[1:]]
		s.mu.RUnlock()
		if !ok {
			return File{}, fmt.Errorf("%w: %q", ErrUnknownAlias, ref)
		}
		target = resolved
	}

	info, err := s.stat(target)
	if err != nil {
		return File{}, err
	}
	return File{
		Name:   info.Name(),
		Path:   cleanPath(target),
		Size:   info.Size(),
		Action: action,
	}, nil
}

func (s *Selector) stat(filePath string) (fs.FileInfo, error) {
	if s == nil || s.fsys == nil {
		return nil, errors.New("attachment: filesystem is not configured")
	}
	p := cleanPath(filePath)
	if p == "" {
		return nil, ErrEmptyReference
	}
	info, err := fs.Stat(s.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("attachment: stat %s: %w", p, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("attachment: %s is a directory", p)
	}
	return info, nil
}

func cleanPath(p string) string {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	if p == "" {
		return ""
	}
	p = path.Clean(strings.TrimPrefix(p, "./"))
	return strings.TrimPrefix(p, "/")
}
