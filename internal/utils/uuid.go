package utils

import "github.com/google/uuid"

// UUIDGenerator produces the stable identifiers assigned to locally
// created entities. V7 UUIDs are preferred for their time-ordered
// prefix; the random V4 form is the fallback.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
