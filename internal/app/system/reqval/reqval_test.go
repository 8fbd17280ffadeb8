package reqval

import "testing"

type day struct {
	DayNumber int    `json:"dayNumber" validate:"min=1"`
	Title     string `json:"title" validate:"required"`
}

type sample struct {
	Slug      string  `json:"slug" validate:"required,slug"`
	Email     string  `json:"email" validate:"required,email"`
	Adults    int     `json:"numberOfAdults" validate:"min=1"`
	Rating    int     `json:"rating" validate:"min=1,max=5"`
	Status    string  `json:"status" validate:"omitempty,oneof=draft published archived"`
	Name      string  `json:"name" validate:"notblank,max=10"`
	Itinerary []day   `json:"itinerary" validate:"dive"`
	Currency  string  `json:"currencyCode" validate:"omitempty,iso4217"`
	Price     float64 `json:"startingPricePerPerson" validate:"gte=0"`
	Internal  string  `json:"-"`
}

func valid() sample {
	return sample{
		Slug:   "test-trip",
		Email:  "a@example.com",
		Adults: 2,
		Rating: 5,
		Name:   "Asha",
		Itinerary: []day{
			{DayNumber: 1, Title: "Arrive"},
		},
		Currency: "INR",
	}
}

func TestStruct_Valid(t *testing.T) {
	if got := Struct(valid()); got != nil {
		t.Errorf("Struct() = %v, want nil", got)
	}
}

func TestStruct_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*sample)
		field   string
		message string
	}{
		{"zero adults", func(s *sample) { s.Adults = 0 }, "numberOfAdults", "Must be at least 1"},
		{"rating too high", func(s *sample) { s.Rating = 6 }, "rating", "Must be at most 5"},
		{"bad email", func(s *sample) { s.Email = "nope" }, "email", "Invalid email format"},
		{"missing email", func(s *sample) { s.Email = "" }, "email", "This field is required"},
		{"bad slug", func(s *sample) { s.Slug = "Test Trip" }, "slug", "Must contain only lowercase letters, digits and single hyphens"},
		{"bad status", func(s *sample) { s.Status = "live" }, "status", "Must be one of: draft, published, archived"},
		{"blank name", func(s *sample) { s.Name = "   " }, "name", "This field is required"},
		{"long name", func(s *sample) { s.Name = "abcdefghijk" }, "name", "Maximum length is 10"},
		{"itinerary day zero", func(s *sample) { s.Itinerary[0].DayNumber = 0 }, "itinerary[0].dayNumber", "Must be at least 1"},
		{"bad currency", func(s *sample) { s.Currency = "RUPEES" }, "currencyCode", "Must be a 3-letter currency code"},
		{"negative price", func(s *sample) { s.Price = -1 }, "startingPricePerPerson", "Must be at least 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(&s)
			got := Struct(s)
			if got == nil {
				t.Fatal("Struct() = nil, want errors")
			}
			if got[tt.field] != tt.message {
				t.Errorf("Struct()[%q] = %q, want %q (all: %v)", tt.field, got[tt.field], tt.message, got)
			}
		})
	}
}

func TestVar(t *testing.T) {
	if msg := Var("top", "oneof=top offbeat"); msg != "" {
		t.Errorf("Var(top) = %q, want valid", msg)
	}
	if msg := Var("middle", "oneof=top offbeat"); msg != "Must be one of: top, offbeat" {
		t.Errorf("Var(middle) = %q", msg)
	}
}
