package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Length caps, mirrored in the validate tags of Branding and ProfileUpdate.
const (
	MaxAboutCompanyLen = 300
	MaxAboutLen        = 5000
	MaxHeroTextLen     = 300
	MaxDescriptionLen  = 2000
	MaxExtraKeys       = 16
	MaxExtraValueBytes = 2048
	maxExtraKeyLen     = 64
)

var (
	ErrInvalidBranding = errors.New("domain: invalid branding")
	ErrInvalidSettings = errors.New("domain: invalid settings")
)

// Branding is the careers page look and feel. Recognised fields are typed;
// anything else lands in Extra, bounded by MaxExtraKeys/MaxExtraValueBytes.
type Branding struct {
	Logo         string                     `json:"logo" validate:"omitempty,http_url"`
	PrimaryColor string                     `json:"primaryColor" validate:"omitempty,hexcolor,len=4|len=7"`
	AboutCompany string                     `json:"aboutCompany" validate:"max=300"`
	About        string                     `json:"about" validate:"max=5000"`
	HeroText     string                     `json:"heroText" validate:"max=300"`
	Extra        map[string]json.RawMessage `json:"-"`
}

func (b Branding) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(b.Extra)+5)
	for k, v := range b.Extra {
		out[k] = v
	}
	setIfNotEmpty(out, "logo", b.Logo)
	setIfNotEmpty(out, "primaryColor", b.PrimaryColor)
	setIfNotEmpty(out, "aboutCompany", b.AboutCompany)
	setIfNotEmpty(out, "about", b.About)
	setIfNotEmpty(out, "heroText", b.HeroText)
	return json.Marshal(out)
}

func (b *Branding) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBranding, err)
	}

	*b = Branding{}
	for k, v := range raw {
		var dst *string
		switch k {
		case "logo":
			dst = &b.Logo
		case "primaryColor":
			dst = &b.PrimaryColor
		case "aboutCompany":
			dst = &b.AboutCompany
		case "about":
			dst = &b.About
		case "heroText":
			dst = &b.HeroText
		default:
			if b.Extra == nil {
				b.Extra = make(map[string]json.RawMessage)
			}
			b.Extra[k] = append(json.RawMessage(nil), v...)
			continue
		}
		if bytes.Equal(v, []byte("null")) {
			continue
		}
		if err := json.Unmarshal(v, dst); err != nil {
			return fmt.Errorf("%w: %s must be a string", ErrInvalidBranding, k)
		}
	}
	return nil
}

// Validate enforces the branding schema. Field rules live in the struct
// tags; Extra is bounded separately.
func (b Branding) Validate() error {
	if err := ValidateStruct(b); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBranding, err)
	}
	if err := validateExtra(b.Extra); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBranding, err)
	}
	return nil
}

// Settings has no recognised fields yet; every key is an Extra key.
type Settings struct {
	Extra map[string]json.RawMessage
}

func (s Settings) MarshalJSON() ([]byte, error) {
	if s.Extra == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s.Extra)
}

func (s *Settings) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	s.Extra = raw
	return nil
}

func (s Settings) Validate() error {
	if err := validateExtra(s.Extra); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return nil
}

func validateExtra(extra map[string]json.RawMessage) error {
	if len(extra) > MaxExtraKeys {
		return fmt.Errorf("at most %d additional keys allowed", MaxExtraKeys)
	}
	for k, v := range extra {
		if k == "" || len(k) > maxExtraKeyLen {
			return fmt.Errorf("key %q has an invalid length", k)
		}
		if len(v) > MaxExtraValueBytes {
			return fmt.Errorf("value for %q exceeds %d bytes", k, MaxExtraValueBytes)
		}
		if !json.Valid(v) {
			return fmt.Errorf("value for %q is not valid JSON", k)
		}
	}
	return nil
}

func setIfNotEmpty(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}
