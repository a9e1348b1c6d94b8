package markdowncmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const convertMessageType = "sitepub.markdown.convert"

// ConvertCommand runs the Markdown pipeline over NotesDir and writes the
// finalized documents into TargetDir.
type ConvertCommand struct {
	// NotesDir is the directory scanned recursively for Markdown notes.
	NotesDir string `json:"notes_dir"`
	// TargetDir receives the converted documents and relocated figures.
	TargetDir string `json:"target_dir"`
}

// Type implements command.Message.
func (ConvertCommand) Type() string { return convertMessageType }

// Validate ensures both directories are present before handlers execute.
func (cmd ConvertCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.NotesDir, validation.Required, validation.By(notBlank("sitepub.markdown.convert.notes_dir_required", "notes directory is required"))),
		validation.Field(&cmd.TargetDir, validation.Required, validation.By(notBlank("sitepub.markdown.convert.target_dir_required", "target directory is required"))),
	)
}

func notBlank(code, message string) validation.RuleFunc {
	return func(value any) error {
		if strings.TrimSpace(value.(string)) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
