//-------------------------------------------------------------------------
//
// procgen - procurement data synthesizer
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import "testing"

func TestNewFakerWithSeed(t *testing.T) {
	seed := uint64(12345)
	f1 := NewFakerWithSeed(seed)
	f2 := NewFakerWithSeed(seed)

	// Same seed should produce same sequence
	for i := 0; i < 10; i++ {
		v1 := f1.Company()
		v2 := f2.Company()
		if v1 != v2 {
			t.Errorf("Same seed produced different values: %q != %q", v1, v2)
		}
	}
}

func TestFakerCompany(t *testing.T) {
	f := NewFakerWithSeed(1)
	if f.Company() == "" {
		t.Error("Company returned empty string")
	}
}

func TestFakerCountryCode(t *testing.T) {
	f := NewFakerWithSeed(1)
	for i := 0; i < 50; i++ {
		code := f.CountryCode()
		if len(code) != 2 {
			t.Fatalf("CountryCode returned %q, want two letters", code)
		}
	}
}

func TestFakerAddressFields(t *testing.T) {
	f := NewFakerWithSeed(1)
	if f.City() == "" {
		t.Error("City returned empty string")
	}
	if f.Street() == "" {
		t.Error("Street returned empty string")
	}
	if f.Phone() == "" {
		t.Error("Phone returned empty string")
	}
}

func TestFakerEmail(t *testing.T) {
	f := NewFakerWithSeed(1)
	email := f.Email()
	if len(email) < 5 {
		t.Errorf("Email too short: %q", email)
	}
}

func TestFakerBuzzPhrase(t *testing.T) {
	f := NewFakerWithSeed(1)
	phrase := f.BuzzPhrase()
	if phrase == "" || phrase == " " {
		t.Errorf("BuzzPhrase returned %q", phrase)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("abcdef", 3); got != "abc" {
		t.Errorf("Truncate(abcdef, 3) = %q", got)
	}
	if got := Truncate("ab", 3); got != "ab" {
		t.Errorf("Truncate(ab, 3) = %q", got)
	}
}
