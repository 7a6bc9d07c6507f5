// Package item defines the upload payload and its validation rules.
package item

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
)

// Draft is the freely-editable form of the upload payload. Any field may be
// empty or point at a path that does not exist; a Draft only becomes an Info
// through Validate.
type Draft struct {
	Name         string
	PreviewImage string
	TargetFolder string
	ChangeNotes  string
}

// Info is a validated upload payload. Construct it only via Draft.Validate;
// an Info always has a non-empty name and an existing target folder, and its
// preview path is either empty or an existing file at validation time.
type Info struct {
	Name         string
	PreviewImage string
	TargetFolder string
	ChangeNotes  string
}

// Draft converts a validated payload back into an editable draft, preserving
// every field. Used by the go-back edges of the upload workflow.
func (i Info) Draft() Draft {
	return Draft(i)
}

// Validate checks the draft against fs and produces the validated payload.
// Rules are applied in a fixed order and the first violation wins:
// name must be non-empty; the preview image, when set, must be an existing
// file; the target folder must be set and an existing directory.
func (d Draft) Validate(fs afero.Fs) (Info, error) {
	if d.Name == "" {
		return Info{}, fmt.Errorf("Name cannot be empty.")
	}

	if preview := strings.TrimSpace(d.PreviewImage); preview != "" {
		info, err := fs.Stat(preview)
		if err != nil {
			return Info{}, fmt.Errorf("Preview image %q does not exist.", preview)
		}
		if info.IsDir() {
			return Info{}, fmt.Errorf("Preview image %q is not a file.", preview)
		}
	}

	target := strings.TrimSpace(d.TargetFolder)
	if target == "" {
		return Info{}, fmt.Errorf("Target folder cannot be empty.")
	}
	info, err := fs.Stat(target)
	if err != nil {
		return Info{}, fmt.Errorf("Target folder %q does not exist.", target)
	}
	if !info.IsDir() {
		return Info{}, fmt.Errorf("Target folder %q is not a directory.", target)
	}

	return Info{
		Name:         d.Name,
		PreviewImage: strings.TrimSpace(d.PreviewImage),
		TargetFolder: target,
		ChangeNotes:  d.ChangeNotes,
	}, nil
}
