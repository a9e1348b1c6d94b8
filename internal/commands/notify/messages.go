package notifycmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const pushMessageType = "sitepub.notify.push"

// PushCommand announces the URLs listed in UpdatedPath, and optionally the
// removals listed in RemovedPath, to a search-engine notifier.
type PushCommand struct {
	// UpdatedPath is the live sitemap text file.
	UpdatedPath string `json:"updated_path"`
	// RemovedPath is the dead sitemap text file. Providers without deletion
	// support ignore it.
	RemovedPath string `json:"removed_path,omitempty"`
}

// Type implements command.Message.
func (PushCommand) Type() string { return pushMessageType }

// Validate ensures the live URL list is supplied.
func (cmd PushCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.UpdatedPath, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("sitepub.notify.push.updated_path_required", "updated path is required")
			}
			return nil
		})),
	)
}
