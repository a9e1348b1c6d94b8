package sitemapcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	buildMessageType  = "sitepub.sitemap.build"
	updateMessageType = "sitepub.sitemap.update"
)

// BuildCommand regenerates every sitemap artifact from a posts directory.
type BuildCommand struct {
	AllPath    string `json:"all_path"`
	PostsDir   string `json:"posts_dir"`
	XMLPath    string `json:"xml_path"`
	TextPath   string `json:"text_path"`
	DeadPath   string `json:"dead_path"`
	RobotsPath string `json:"robots_path"`
	// Site overrides dominant-site detection (host or scheme://host).
	Site string `json:"site,omitempty"`
}

// Type implements command.Message.
func (BuildCommand) Type() string { return buildMessageType }

// Validate ensures every artifact path is supplied.
func (cmd BuildCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		pathField(&cmd.AllPath, buildMessageType, "all_path"),
		pathField(&cmd.PostsDir, buildMessageType, "posts_dir"),
		pathField(&cmd.XMLPath, buildMessageType, "xml_path"),
		pathField(&cmd.TextPath, buildMessageType, "text_path"),
		pathField(&cmd.DeadPath, buildMessageType, "dead_path"),
		pathField(&cmd.RobotsPath, buildMessageType, "robots_path"),
	)
}

// UpdateCommand reconciles an existing live URL list against the historical inventory.
type UpdateCommand struct {
	AllPath    string `json:"all_path"`
	LivePath   string `json:"live_path"`
	DeadPath   string `json:"dead_path"`
	RobotsPath string `json:"robots_path"`
	Site       string `json:"site,omitempty"`
}

// Type implements command.Message.
func (UpdateCommand) Type() string { return updateMessageType }

// Validate ensures every artifact path is supplied.
func (cmd UpdateCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		pathField(&cmd.AllPath, updateMessageType, "all_path"),
		pathField(&cmd.LivePath, updateMessageType, "live_path"),
		pathField(&cmd.DeadPath, updateMessageType, "dead_path"),
		pathField(&cmd.RobotsPath, updateMessageType, "robots_path"),
	)
}

func pathField(value *string, messageType, name string) *validation.FieldRules {
	return validation.Field(value, validation.Required, validation.By(func(v any) error {
		if strings.TrimSpace(v.(string)) == "" {
			return validation.NewError(messageType+"."+name+"_required", name+" is required")
		}
		return nil
	}))
}
