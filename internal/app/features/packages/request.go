package packages

import (
	"strings"

	packagestore "github.com/dalemusser/stratatrips/internal/app/store/packages"
	"github.com/dalemusser/stratatrips/internal/app/system/htmlsanitize"
	"github.com/dalemusser/stratatrips/internal/app/system/normalize"
	"github.com/dalemusser/stratatrips/internal/domain/models"
)

type itineraryDayRequest struct {
	DayNumber   int    `json:"dayNumber" validate:"min=1,max=365"`
	Title       string `json:"title" validate:"required,notblank,max=200"`
	Description string `json:"description" validate:"max=4000"`
}

type createRequest struct {
	Slug                   string                `json:"slug" validate:"required,slug,max=120"`
	Title                  string                `json:"title" validate:"required,notblank,max=200"`
	DestinationName        string                `json:"destinationName" validate:"required,notblank,max=120"`
	DurationDays           int                   `json:"durationDays" validate:"min=1,max=365"`
	StartingPricePerPerson float64               `json:"startingPricePerPerson" validate:"min=0"`
	CurrencyCode           string                `json:"currencyCode" validate:"omitempty,iso4217"`
	ShortDescription       string                `json:"shortDescription" validate:"max=500"`
	LongDescription        string                `json:"longDescription" validate:"max=20000"`
	HeroImageURL           string                `json:"heroImageUrl" validate:"max=2048"`
	Highlights             []string              `json:"highlights" validate:"max=50,dive,max=300"`
	Inclusions             []string              `json:"inclusions" validate:"max=50,dive,max=300"`
	Exclusions             []string              `json:"exclusions" validate:"max=50,dive,max=300"`
	Itinerary              []itineraryDayRequest `json:"itinerary" validate:"max=365,dive"`
	GalleryImageURLs       []string              `json:"galleryImageUrls" validate:"max=30,dive,max=2048"`
	IsFeatured             bool                  `json:"isFeatured"`
	Status                 string                `json:"status" validate:"omitempty,oneof=draft published archived"`
}

// canonicalize rewrites fields whose accepted form is case-insensitive, so
// validation sees the stored form.
func (req *createRequest) canonicalize() {
	req.CurrencyCode = normalize.CurrencyCode(req.CurrencyCode)
}

func (req createRequest) input() packagestore.CreateInput {
	return packagestore.CreateInput{
		Slug:                   strings.TrimSpace(req.Slug),
		Title:                  normalize.Name(req.Title),
		DestinationName:        normalize.Name(req.DestinationName),
		DurationDays:           req.DurationDays,
		StartingPricePerPerson: req.StartingPricePerPerson,
		CurrencyCode:           req.CurrencyCode,
		ShortDescription:       htmlsanitize.StripTags(req.ShortDescription),
		LongDescription:        htmlsanitize.Sanitize(req.LongDescription),
		HeroImageURL:           strings.TrimSpace(req.HeroImageURL),
		Highlights:             cleanList(req.Highlights),
		Inclusions:             cleanList(req.Inclusions),
		Exclusions:             cleanList(req.Exclusions),
		Itinerary:              itinerary(req.Itinerary),
		GalleryImageURLs:       cleanList(req.GalleryImageURLs),
		IsFeatured:             req.IsFeatured,
		Status:                 req.Status,
	}
}

type updateRequest struct {
	Slug                   *string                `json:"slug" validate:"omitnil,slug,max=120"`
	Title                  *string                `json:"title" validate:"omitnil,notblank,max=200"`
	DestinationName        *string                `json:"destinationName" validate:"omitnil,notblank,max=120"`
	DurationDays           *int                   `json:"durationDays" validate:"omitnil,min=1,max=365"`
	StartingPricePerPerson *float64               `json:"startingPricePerPerson" validate:"omitnil,min=0"`
	CurrencyCode           *string                `json:"currencyCode" validate:"omitnil,iso4217"`
	ShortDescription       *string                `json:"shortDescription" validate:"omitnil,max=500"`
	LongDescription        *string                `json:"longDescription" validate:"omitnil,max=20000"`
	HeroImageURL           *string                `json:"heroImageUrl" validate:"omitnil,max=2048"`
	Highlights             *[]string              `json:"highlights" validate:"omitnil,max=50,dive,max=300"`
	Inclusions             *[]string              `json:"inclusions" validate:"omitnil,max=50,dive,max=300"`
	Exclusions             *[]string              `json:"exclusions" validate:"omitnil,max=50,dive,max=300"`
	Itinerary              *[]itineraryDayRequest `json:"itinerary" validate:"omitnil,max=365,dive"`
	GalleryImageURLs       *[]string              `json:"galleryImageUrls" validate:"omitnil,max=30,dive,max=2048"`
	IsFeatured             *bool                  `json:"isFeatured"`
	Status                 *string                `json:"status" validate:"omitnil,oneof=draft published archived"`
}

func (req *updateRequest) canonicalize() {
	if req.CurrencyCode != nil {
		v := normalize.CurrencyCode(*req.CurrencyCode)
		req.CurrencyCode = &v
	}
}

func (req updateRequest) input() packagestore.UpdateInput {
	in := packagestore.UpdateInput{
		Slug:                   trimmed(req.Slug),
		DurationDays:           req.DurationDays,
		StartingPricePerPerson: req.StartingPricePerPerson,
		IsFeatured:             req.IsFeatured,
		Status:                 req.Status,
		HeroImageURL:           trimmed(req.HeroImageURL),
		CurrencyCode:           req.CurrencyCode,
	}
	if req.Title != nil {
		v := normalize.Name(*req.Title)
		in.Title = &v
	}
	if req.DestinationName != nil {
		v := normalize.Name(*req.DestinationName)
		in.DestinationName = &v
	}
	if req.ShortDescription != nil {
		v := htmlsanitize.StripTags(*req.ShortDescription)
		in.ShortDescription = &v
	}
	if req.LongDescription != nil {
		v := htmlsanitize.Sanitize(*req.LongDescription)
		in.LongDescription = &v
	}
	in.Highlights = cleanListPtr(req.Highlights)
	in.Inclusions = cleanListPtr(req.Inclusions)
	in.Exclusions = cleanListPtr(req.Exclusions)
	in.GalleryImageURLs = cleanListPtr(req.GalleryImageURLs)
	if req.Itinerary != nil {
		days := itinerary(*req.Itinerary)
		in.Itinerary = &days
	}
	return in
}

func itinerary(days []itineraryDayRequest) []models.ItineraryDay {
	out := make([]models.ItineraryDay, 0, len(days))
	for _, d := range days {
		out = append(out, models.ItineraryDay{
			DayNumber:   d.DayNumber,
			Title:       htmlsanitize.StripTags(d.Title),
			Description: htmlsanitize.StripTags(d.Description),
		})
	}
	return out
}

// cleanList strips markup and drops blank entries, keeping order.
func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = htmlsanitize.StripTags(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func cleanListPtr(items *[]string) *[]string {
	if items == nil {
		return nil
	}
	out := cleanList(*items)
	return &out
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
