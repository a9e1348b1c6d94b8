package markdown

import (
	"errors"
	"fmt"
	"hash/crc32"
	"strconv"
)

// ErrAbbrlinkCollision reports two documents of one run hashing to the same
// abbrlink.
var ErrAbbrlinkCollision = errors.New("markdown: abbrlink collision")

// Abbrlink returns the lowercase hex IEEE CRC32 of the UTF-8 title, without a
// prefix or zero padding.
func Abbrlink(title string) string {
	return strconv.FormatUint(uint64(crc32.ChecksumIEEE([]byte(title))), 16)
}

// Registry tracks which source file claimed each abbrlink during one run.
// It is not safe for concurrent use.
type Registry struct {
	owners map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{owners: map[string]string{}}
}

// Claim records path as the owner of abbrlink. Claiming an abbrlink already
// owned by a different path fails with ErrAbbrlinkCollision.
func (r *Registry) Claim(abbrlink, path string) error {
	if owner, ok := r.owners[abbrlink]; ok && owner != path {
		return fmt.Errorf("%w: %s is already used by %s, also wanted by %s", ErrAbbrlinkCollision, abbrlink, owner, path)
	}
	r.owners[abbrlink] = path
	return nil
}

// Owner returns the path that claimed abbrlink.
func (r *Registry) Owner(abbrlink string) (string, bool) {
	owner, ok := r.owners[abbrlink]
	return owner, ok
}

// Len returns the number of claimed abbrlinks.
func (r *Registry) Len() int {
	return len(r.owners)
}
