package chat

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	destinationstore "github.com/dalemusser/stratatrips/internal/app/store/destinations"
	packagestore "github.com/dalemusser/stratatrips/internal/app/store/packages"
)

// maxPromptPackages bounds how much of the catalog goes into one prompt.
const maxPromptPackages = 30

// Agency identifies the business the assistant speaks for.
type Agency struct {
	Name  string
	Phone string
	Email string
}

// PackageSummary is the slice of a package the assistant needs to answer
// questions. It is what the catalog cache stores.
type PackageSummary struct {
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Destination string  `json:"destination"`
	Days        int     `json:"days"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Featured    bool    `json:"featured"`
}

// Catalog is the snapshot rendered into the system prompt.
type Catalog struct {
	Packages     []PackageSummary
	Destinations []string
}

func loadPackageSummaries(store *packagestore.Store) func(context.Context) ([]PackageSummary, error) {
	return func(ctx context.Context) ([]PackageSummary, error) {
		list, err := store.ListPublished(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]PackageSummary, 0, min(len(list), maxPromptPackages))
		for _, p := range list {
			if len(out) == maxPromptPackages {
				break
			}
			out = append(out, PackageSummary{
				Title:       p.Title,
				Slug:        p.Slug,
				Destination: p.DestinationName,
				Days:        p.DurationDays,
				Price:       p.StartingPricePerPerson,
				Currency:    p.CurrencyCode,
				Featured:    p.IsFeatured,
			})
		}
		return out, nil
	}
}

func loadDestinationNames(store *destinationstore.Store) func(context.Context) ([]string, error) {
	return func(ctx context.Context) ([]string, error) {
		list, err := store.ListActive(ctx)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(list))
		for _, d := range list {
			names = append(names, d.Name)
		}
		return names, nil
	}
}

// BuildPrompt renders the system prompt for one chat turn.
func BuildPrompt(agency Agency, cat Catalog) string {
	name := agency.Name
	if name == "" {
		name = "StrataTrips"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are the travel assistant for %s, a travel agency. ", name)
	b.WriteString("Help visitors pick a trip from the catalog below and answer questions about it. ")
	b.WriteString("Keep answers to a few short sentences.\n\n")

	b.WriteString("Rules:\n")
	b.WriteString("- Only recommend packages listed in the catalog. Never invent trips, prices or availability.\n")
	b.WriteString("- Prices are starting prices per person; final quotes come from an agent.\n")
	b.WriteString("- When the visitor wants a quote, a booking or a callback, ask for their name and a phone number or email address so an agent can follow up.\n")
	b.WriteString("- Once contact details are shared, confirm that an agent will be in touch. Do not ask for them again.\n")
	b.WriteString("- Politely steer unrelated questions back to travel.\n")
	if agency.Phone != "" || agency.Email != "" {
		b.WriteString("- Visitors can also reach the agency directly:")
		if agency.Phone != "" {
			b.WriteString(" phone " + agency.Phone)
		}
		if agency.Email != "" {
			b.WriteString(" email " + agency.Email)
		}
		b.WriteString(".\n")
	}

	b.WriteString("\nPackages:\n")
	if len(cat.Packages) == 0 {
		b.WriteString("(none published right now; offer to have an agent plan a custom trip)\n")
	}
	for _, p := range cat.Packages {
		fmt.Fprintf(&b, "- %s (%s), %d %s, from %s %s per person. Page: /packages/%s",
			p.Title, p.Destination, p.Days, plural(p.Days, "day", "days"),
			p.Currency, formatPrice(p.Price), p.Slug)
		if p.Featured {
			b.WriteString(" [featured]")
		}
		b.WriteByte('\n')
	}

	if len(cat.Destinations) > 0 {
		b.WriteString("\nPopular destinations: ")
		b.WriteString(strings.Join(cat.Destinations, ", "))
		b.WriteByte('\n')
	}
	return b.String()
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
