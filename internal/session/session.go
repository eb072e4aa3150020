// Package session reads the hints a signed-in user leaves behind: roles,
// owner id and practitioner id. They decide which visit stream a user sees.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Roles known to the gateway.
const (
	RoleAdmin = "ADMIN"
	RoleVet   = "VET"
	RoleOwner = "OWNER"
)

// ErrNoVisitAccess is returned when no role grants a visit list.
var ErrNoVisitAccess = errors.New("no role grants access to visits")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Hints is the persisted session state.
type Hints struct {
	Roles []string `json:"roles" validate:"required,min=1,dive,required"`

	// PractitionerIDAndMonth is "<practitionerId>,<month>".
	PractitionerIDAndMonth string `json:"practitionerIdAndMonth"`

	UUID  string `json:"UUID" validate:"omitempty,uuid"`
	Email string `json:"email" validate:"omitempty,email"`
}

// Load reads hints from a JSON file.
func Load(path string) (Hints, error) {
	f, err := os.Open(path)
	if err != nil {
		return Hints{}, fmt.Errorf("failed to open session hints: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads hints from r and validates them.
func Parse(r io.Reader) (Hints, error) {
	var h Hints
	if err := json.NewDecoder(r).Decode(&h); err != nil {
		return Hints{}, fmt.Errorf("failed to decode session hints: %w", err)
	}
	if err := h.Validate(); err != nil {
		return Hints{}, err
	}
	return h, nil
}

// Validate checks field formats.
func (h Hints) Validate() error {
	if err := validate.Struct(h); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			fe := ve[0]
			return fmt.Errorf("invalid session hints: %s failed on %q", fe.Field(), fe.Tag())
		}
		return fmt.Errorf("invalid session hints: %w", err)
	}
	return nil
}

// HasRole reports whether the user holds role.
func (h Hints) HasRole(role string) bool {
	return slices.Contains(h.Roles, role)
}

// PractitionerID returns the practitioner part of PractitionerIDAndMonth.
func (h Hints) PractitionerID() string {
	id, _, _ := strings.Cut(h.PractitionerIDAndMonth, ",")
	return strings.TrimSpace(id)
}

// VisitsPath returns the gateway path of the visit stream the user may see.
// ADMIN wins over VET, which wins over OWNER.
func (h Hints) VisitsPath() (string, error) {
	switch {
	case h.HasRole(RoleAdmin):
		return "/visits", nil
	case h.HasRole(RoleVet):
		id := h.PractitionerID()
		if id == "" {
			return "", fmt.Errorf("%w: vet without practitioner id", ErrNoVisitAccess)
		}
		return "/visits/vets/" + url.PathEscape(id), nil
	case h.HasRole(RoleOwner):
		if h.UUID == "" {
			return "", fmt.Errorf("%w: owner without id", ErrNoVisitAccess)
		}
		return "/visits/owners/" + url.PathEscape(h.UUID), nil
	default:
		return "", ErrNoVisitAccess
	}
}
