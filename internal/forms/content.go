package forms

import (
	"net/url"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"compendi/internal/config"
)

// Child kinds accepted by the folder-view creation form.
const (
	KindFolder = "folder"
	KindFile   = "file"
)

var noSlashPattern = regexp.MustCompile(`^[^/]+$`)

// ProjectForm carries a project creation or settings submission.
type ProjectForm struct {
	Name        string
	Description string
}

// ParseProjectForm builds a ProjectForm from submitted values.
func ParseProjectForm(values url.Values) ProjectForm {
	return ProjectForm{
		Name:        field(values, "project_name"),
		Description: field(values, "description"),
	}
}

// Validate checks the project form.
func (f ProjectForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name,
			validation.Required,
			validation.Length(1, config.MaxProjectNameLength),
		),
		validation.Field(&f.Description,
			validation.Length(0, config.MaxDescriptionLength),
		),
	)
}

// ChildForm carries a folder/file creation submission. Kind selects which of
// the two gets created.
type ChildForm struct {
	Name string
	Kind string
}

// ParseChildForm builds a ChildForm from submitted values.
func ParseChildForm(values url.Values) ChildForm {
	return ChildForm{
		Name: field(values, "name"),
		Kind: field(values, "type_selection"),
	}
}

// Validate checks the child form, constraining Kind to the folder/file enum.
func (f ChildForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
			validation.Match(noSlashPattern).Error("cannot contain slashes"),
		),
		validation.Field(&f.Kind,
			validation.Required,
			validation.In(KindFolder, KindFile),
		),
	)
}

// FileMainForm carries a file's main metadata submission.
type FileMainForm struct {
	Name    string
	SubName string
}

// ParseFileMainForm builds a FileMainForm from submitted values.
func ParseFileMainForm(values url.Values) FileMainForm {
	return FileMainForm{
		Name:    field(values, "name"),
		SubName: field(values, "sub_name"),
	}
}

// Validate checks the file metadata form.
func (f FileMainForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name,
			validation.Required,
			validation.Length(1, config.MaxFileNameLength),
		),
		validation.Field(&f.SubName,
			validation.Length(0, config.MaxFileNameLength),
		),
	)
}

// FileImageForm carries an image attachment submission. The source is a URL
// the asset host fetches directly; the bytes never pass through here.
type FileImageForm struct {
	SourceURL string
}

// ParseFileImageForm builds a FileImageForm from submitted values.
func ParseFileImageForm(values url.Values) FileImageForm {
	return FileImageForm{
		SourceURL: field(values, "image_url"),
	}
}

// Validate checks the image form.
func (f FileImageForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.SourceURL, validation.Required, is.URL),
	)
}

// FileSectionForm carries a section append submission. The file id rides in
// the form because the original route carries no path parameter.
type FileSectionForm struct {
	FileID string
	Body   string
}

// ParseFileSectionForm builds a FileSectionForm from submitted values.
func ParseFileSectionForm(values url.Values) FileSectionForm {
	return FileSectionForm{
		FileID: field(values, "file_id"),
		Body:   field(values, "body"),
	}
}

// Validate checks the section form.
func (f FileSectionForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.FileID, validation.Required, is.UUID),
		validation.Field(&f.Body,
			validation.Required,
			validation.Length(1, config.MaxSectionLength),
		),
	)
}
