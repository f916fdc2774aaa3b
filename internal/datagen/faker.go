//-------------------------------------------------------------------------
//
// procgen - procurement data synthesizer
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"github.com/brianvoe/gofakeit/v7"
)

// Faker provides fake master-data fields using gofakeit.
type Faker struct {
	faker *gofakeit.Faker
}

// NewFakerWithSeed creates a new Faker with a specific seed for reproducibility.
func NewFakerWithSeed(seed uint64) *Faker {
	return &Faker{
		faker: gofakeit.New(seed),
	}
}

// Company generates a random company name.
func (f *Faker) Company() string {
	return f.faker.Company()
}

// CountryCode generates a random two-letter country code.
func (f *Faker) CountryCode() string {
	return f.faker.CountryAbr()
}

// City generates a random city name.
func (f *Faker) City() string {
	return f.faker.City()
}

// Street generates a random street address.
func (f *Faker) Street() string {
	return f.faker.Street()
}

// Phone generates a random phone number.
func (f *Faker) Phone() string {
	return f.faker.Phone()
}

// Email generates a random company email address.
func (f *Faker) Email() string {
	return f.faker.Email()
}

// BuzzPhrase generates a short business phrase, used for material
// descriptions.
func (f *Faker) BuzzPhrase() string {
	return f.faker.JobDescriptor() + " " + f.faker.JobLevel()
}

// ProductName generates a random product name.
func (f *Faker) ProductName() string {
	return f.faker.ProductName()
}

// Truncate truncates a string to max length if needed.
func Truncate(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen]
	}
	return s
}
