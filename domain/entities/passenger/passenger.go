package passenger

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrUnknownGender        = errors.New("unknown gender")
	ErrUnknownAgeGroup      = errors.New("unknown age group")
	ErrUnknownReductionCard = errors.New("unknown reduction card")
)

const (
	passengerType = "person"
	isoDateLayout = "2006-01-02"
)

type Gender string

const (
	Male    Gender = "male"
	Female  Gender = "female"
	Diverse Gender = "diverse"
)

// ParseGender validates a gender tag
func ParseGender(value string) (Gender, error) {
	switch gender := Gender(strings.ToLower(value)); gender {
	case Male, Female, Diverse:
		return gender, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGender, value)
}

// AgeGroup tag of an age range. The booking platform prices by birth date, so every tag is resolved
// to a reference birth date at request time.
type AgeGroup string

const (
	Adult    AgeGroup = "adult"
	Kid      AgeGroup = "kid"
	SmallKid AgeGroup = "small_kid"
)

// ageGroupYears age, in years, used as the reference for each tag
var ageGroupYears = map[AgeGroup]int{
	Adult:    30,
	Kid:      8,
	SmallKid: 0,
}

// ParseAgeGroup validates an age group tag
func ParseAgeGroup(value string) (AgeGroup, error) {
	ageGroup := AgeGroup(strings.ToLower(value))
	if _, ok := ageGroupYears[ageGroup]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAgeGroup, value)
	}
	return ageGroup, nil
}

// BirthDate returns the reference birth date of the age group relative to now
func (ag AgeGroup) BirthDate(now time.Time) time.Time {
	return now.AddDate(-ageGroupYears[ag], 0, 0)
}

// ReductionCard platform identifier of a discount card. Many more exist, these are the common ones.
type ReductionCard int

const (
	DBBahnCard25SecondClass        ReductionCard = 127
	DBBahnCard50SecondClass        ReductionCard = 129
	DBTicketDeutschlandSecondClass ReductionCard = 9098153
	Klimaticket                    ReductionCard = 100000042
)

var reductionCardsByName = map[string]ReductionCard{
	"DB_BAHNCARD_25_2KL":        DBBahnCard25SecondClass,
	"DB_BAHNCARD_50_2KL":        DBBahnCard50SecondClass,
	"DB_TICKET_DEUTSCHLAND_2KL": DBTicketDeutschlandSecondClass,
	"KLIMATICKET":               Klimaticket,
}

// ParseReductionCard accepts either a known card name or a raw numeric platform identifier
func ParseReductionCard(value string) (ReductionCard, error) {
	if card, ok := reductionCardsByName[strings.ToUpper(strings.TrimSpace(value))]; ok {
		return card, nil
	}
	id, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownReductionCard, value)
	}
	return ReductionCard(id), nil
}

// Passenger one traveler of a booking request
// + Gender: gender of the traveler
// + AgeGroup: age group, resolved to a birth date when the request is built
// + ReductionCards: discount cards, in order. Duplicates are kept
type Passenger struct {
	Gender         Gender
	AgeGroup       AgeGroup
	ReductionCards []ReductionCard
}

// RequestObject passenger as expected by the offer endpoint
type RequestObject struct {
	Type      string          `json:"type"`
	Gender    Gender          `json:"gender"`
	BirthDate string          `json:"birthDate"`
	Cards     []ReductionCard `json:"cards"`
}

func NewPassenger(gender Gender, ageGroup AgeGroup, cards ...ReductionCard) Passenger {
	reductionCards := make([]ReductionCard, len(cards))
	copy(reductionCards, cards)
	return Passenger{
		Gender:         gender,
		AgeGroup:       ageGroup,
		ReductionCards: reductionCards,
	}
}

// ToRequestObject renders the passenger for a request sent at now
func (p Passenger) ToRequestObject(now time.Time) RequestObject {
	cards := make([]ReductionCard, len(p.ReductionCards))
	copy(cards, p.ReductionCards)
	return RequestObject{
		Type:      passengerType,
		Gender:    p.Gender,
		BirthDate: p.AgeGroup.BirthDate(now).Format(isoDateLayout),
		Cards:     cards,
	}
}

// ToRequestObjects renders a passenger set. The returned slice is always freshly allocated.
func ToRequestObjects(passengers []Passenger, now time.Time) []RequestObject {
	objects := make([]RequestObject, 0, len(passengers))
	for _, p := range passengers {
		objects = append(objects, p.ToRequestObject(now))
	}
	return objects
}
