package notify

import (
	"errors"
	"fmt"
	"os"

	"github.com/goliatone/go-sitepub/internal/validation"
)

// ErrInvalidCredentials reports a service-account key file that does not
// match the expected shape.
var ErrInvalidCredentials = errors.New("notify: invalid service account credentials")

const serviceAccountSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["type", "client_email", "private_key"],
  "properties": {
    "type": {"const": "service_account"},
    "client_email": {"type": "string", "minLength": 3, "pattern": "@"},
    "private_key": {"type": "string", "pattern": "BEGIN (RSA )?PRIVATE KEY"},
    "private_key_id": {"type": "string"},
    "token_uri": {"type": "string", "format": "uri"},
    "project_id": {"type": "string"}
  }
}`

var credentialsSchema = validation.MustCompile("service_account.json", []byte(serviceAccountSchema))

// ValidateCredentials checks that data is a Google service-account key.
func ValidateCredentials(data []byte) error {
	if err := credentialsSchema.ValidateJSON(data); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	return nil
}

// LoadCredentials reads and validates a service-account key file.
func LoadCredentials(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("notify: read credentials %s: %w", path, err)
	}
	if err := ValidateCredentials(data); err != nil {
		return nil, err
	}
	return data, nil
}
