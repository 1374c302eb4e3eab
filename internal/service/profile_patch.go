package service

import (
	"encoding/json"
	"fmt"

	"github.com/d60-Lab/friendgraph/internal/model"
)

// Nullable distinguishes "absent" (Set=false) from "explicitly null" (Set, Value=nil).
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// ProfilePatch is the allow-listed set of profile fields a user may change.
type ProfilePatch struct {
	CountryCode *string
	IsPublic    *bool
	Phone       Nullable[string]
	Image       Nullable[string]
}

var immutableProfileKeys = map[string]bool{"login": true, "email": true, "password": true}

// ParseProfilePatch decodes a JSON object into a ProfilePatch. login, email and
// password yield ErrImmutableField; any other unknown key or a value of the
// wrong type yields ErrValidation.
func ParseProfilePatch(fields map[string]json.RawMessage) (ProfilePatch, error) {
	var p ProfilePatch
	for key := range fields {
		if immutableProfileKeys[key] {
			return ProfilePatch{}, fmt.Errorf("%w: %s", ErrImmutableField, key)
		}
	}
	for key, raw := range fields {
		var err error
		null := string(raw) == "null"
		switch key {
		case "countryCode":
			if null {
				return ProfilePatch{}, fmt.Errorf("%w: countryCode is required", ErrValidation)
			}
			var v string
			if err = json.Unmarshal(raw, &v); err == nil {
				p.CountryCode = &v
			}
		case "isPublic":
			if null {
				return ProfilePatch{}, fmt.Errorf("%w: isPublic is required", ErrValidation)
			}
			var v bool
			if err = json.Unmarshal(raw, &v); err == nil {
				p.IsPublic = &v
			}
		case "phone":
			p.Phone.Set = true
			err = json.Unmarshal(raw, &p.Phone.Value)
		case "image":
			p.Image.Set = true
			err = json.Unmarshal(raw, &p.Image.Value)
		default:
			return ProfilePatch{}, fmt.Errorf("%w: unknown field %s", ErrValidation, key)
		}
		if err != nil {
			return ProfilePatch{}, fmt.Errorf("%w: %s: %v", ErrValidation, key, err)
		}
	}
	return p, nil
}

func (p ProfilePatch) Empty() bool {
	return p.CountryCode == nil && p.IsPublic == nil && !p.Phone.Set && !p.Image.Set
}

// Apply copies the set fields onto u.
func (p ProfilePatch) Apply(u *model.User) {
	if p.CountryCode != nil {
		u.CountryCode = *p.CountryCode
	}
	if p.IsPublic != nil {
		u.IsPublic = *p.IsPublic
	}
	if p.Phone.Set {
		u.Phone = p.Phone.Value
	}
	if p.Image.Set {
		u.Image = p.Image.Value
	}
}
