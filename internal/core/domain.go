package core

import (
	"errors"
	"strings"
	"unicode"
)

const (
	Solo    ProfileKind = "Solo"
	Casal   ProfileKind = "Casal"
	Familia ProfileKind = "Família"
)

type (
	// ProfileKind is the household configuration set during onboarding.
	ProfileKind string

	// Entry is a single recorded expense. Entries are never edited or
	// deleted once recorded; duplicates are additive.
	Entry struct {
		Category string
		Amount   Money
	}

	// Ledger maps a calendar day to the entries recorded for each
	// participant on that day, in recording order.
	Ledger map[Date]map[string][]Entry

	// State is the whole persisted document: profile, participants and
	// the ledger. It is loaded and rewritten wholesale around every
	// mutation.
	State struct {
		Profile      ProfileKind
		Nickname     string
		Participants []string
		Incomes      map[string]Money
		FixedCosts   map[string]FixedCost
		Expenses     Ledger
	}
)

var (
	ErrInvalidProfileKind   = errors.New("invalid profile kind")
	ErrEmptyParticipantList = errors.New("empty participant list")
	ErrUnknownParticipant   = errors.New("unknown participant")
	ErrInvalidAmount        = errors.New("invalid amount")
)

// IsOnboarded reports whether a valid profile kind has been set.
func (s State) IsOnboarded() bool {
	switch s.Profile {
	case Solo, Casal, Familia:
		return true
	}
	return false
}

// HasParticipant reports whether name is in the registered set.
func (s State) HasParticipant(name string) bool {
	for _, n := range s.Participants {
		if n == name {
			return true
		}
	}
	return false
}

// IsGroup reports whether reports use per-participant group phrasing.
func (s State) IsGroup() bool {
	return s.Profile == Casal || s.Profile == Familia
}

// SetIncome parses text as a monetary amount and records it for name.
// The participant must already be registered.
func (s *State) SetIncome(name, text string) error {
	if !s.HasParticipant(name) {
		return ErrUnknownParticipant
	}
	cents, err := ParseAmountToCents(text)
	if err != nil {
		return err
	}
	if s.Incomes == nil {
		s.Incomes = make(map[string]Money)
	}
	s.Incomes[name] = Money{Cents: cents}
	return nil
}

// ParseProfileKind normalizes free text into one of the three recognized
// profile kinds. Matching is case-insensitive and tolerates missing or
// extra accents ("familia", "FAMÍLIA" and "Família" are the same kind).
func ParseProfileKind(s string) (ProfileKind, error) {
	switch foldAccents(strings.ToLower(strings.TrimSpace(s))) {
	case "solo":
		return Solo, nil
	case "casal":
		return Casal, nil
	case "familia":
		return Familia, nil
	}
	return "", ErrInvalidProfileKind
}

// ParseParticipants splits a comma-separated list of names, trimming
// whitespace, dropping empty items and capitalizing each name. The result
// replaces any previously registered set wholesale.
func ParseParticipants(s string) ([]string, error) {
	var names []string
	for _, part := range strings.Split(s, ",") {
		name := Capitalize(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, ErrEmptyParticipantList
	}
	return names, nil
}

// Capitalize upper-cases the first rune and lower-cases the rest, matching
// how the bot has always normalized names and categories.
func Capitalize(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if i == 0 {
			runes[i] = unicode.ToUpper(r)
		} else {
			runes[i] = unicode.ToLower(r)
		}
	}
	return string(runes)
}

// foldAccents maps the accented vowels that appear in the recognized
// profile kinds onto their bare forms.
func foldAccents(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case 'á', 'à', 'â', 'ã':
			return 'a'
		case 'é', 'ê':
			return 'e'
		case 'í':
			return 'i'
		case 'ó', 'ô', 'õ':
			return 'o'
		case 'ú':
			return 'u'
		}
		return r
	}, s)
}
