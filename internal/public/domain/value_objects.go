package domain

import (
	"fmt"
	"net/mail"
	"strings"
)

// MenuKind is the top-level category of a store.
type MenuKind string

const (
	MenuKindFood MenuKind = "food"
	MenuKindCafe MenuKind = "cafe"
	// MenuKindEtc is accepted as a listing filter only; stores are never persisted with it.
	MenuKindEtc MenuKind = "ect"
)

// NewMenuKind validates a menu kind for persistence.
func NewMenuKind(value string) (MenuKind, error) {
	switch MenuKind(strings.TrimSpace(value)) {
	case MenuKindFood:
		return MenuKindFood, nil
	case MenuKindCafe:
		return MenuKindCafe, nil
	case "":
		return "", fmt.Errorf("kind_menu is required")
	}
	return "", fmt.Errorf("kind_menu %q is not one of food, cafe", value)
}

func (k MenuKind) String() string {
	return string(k)
}

// DetailKind is the cuisine subcategory of a store.
type DetailKind string

const (
	DetailKorean   DetailKind = "KOREAN"
	DetailJapanese DetailKind = "JAPANESE"
	DetailChinese  DetailKind = "CHINESE"
	DetailWestern  DetailKind = "WESTERN"
	DetailOther    DetailKind = "OTHER"
)

var allowedDetailKinds = []DetailKind{DetailKorean, DetailJapanese, DetailChinese, DetailWestern, DetailOther}

// NewDetailKind validates a cuisine subcategory. Empty is allowed.
func NewDetailKind(value string) (DetailKind, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(value))
	if trimmed == "" {
		return "", nil
	}
	for _, allowed := range allowedDetailKinds {
		if DetailKind(trimmed) == allowed {
			return allowed, nil
		}
	}
	return "", fmt.Errorf("kind_detail %q is not supported", value)
}

func (k DetailKind) String() string {
	return string(k)
}

// Email is a normalized email address.
type Email string

func NewEmail(value string) (Email, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("email is required")
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid email: %w", err)
	}
	return Email(strings.ToLower(addr.Address)), nil
}

func (e Email) String() string {
	return string(e)
}

// SubRating is a single review criterion in the range 0..MaxSubRating.
type SubRating int

func NewSubRating(field string, value int) (SubRating, error) {
	if value < 0 || value > MaxSubRating {
		return 0, fmt.Errorf("%s must be between 0 and %d", field, MaxSubRating)
	}
	return SubRating(value), nil
}
