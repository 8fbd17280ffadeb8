package seeding

import (
	homecollectionstore "github.com/dalemusser/stratatrips/internal/app/store/homecollections"
	packagestore "github.com/dalemusser/stratatrips/internal/app/store/packages"
	reviewstore "github.com/dalemusser/stratatrips/internal/app/store/reviews"
	"github.com/dalemusser/stratatrips/internal/domain/models"
)

func demoPackages() []packagestore.CreateInput {
	return []packagestore.CreateInput{
		{
			Slug:                   "kerala-backwaters-escape",
			Title:                  "Kerala Backwaters Escape",
			DestinationName:        "Kerala",
			DurationDays:           5,
			StartingPricePerPerson: 24999,
			CurrencyCode:           "INR",
			ShortDescription:       "Houseboat nights on Alleppey's canals and tea country in Munnar.",
			LongDescription:        "<p>Slow days on the water, spice gardens and misty hill stations.</p>",
			HeroImageURL:           "/files/demo/kerala.jpg",
			Highlights:             []string{"Overnight houseboat", "Munnar tea estates", "Kathakali performance"},
			Inclusions:             []string{"Breakfast daily", "Private transfers", "Houseboat meals"},
			Exclusions:             []string{"Flights", "Entry tickets"},
			Itinerary: []models.ItineraryDay{
				{DayNumber: 1, Title: "Arrive in Kochi", Description: "Fort Kochi walk and sunset at the Chinese fishing nets."},
				{DayNumber: 2, Title: "Munnar", Description: "Drive to the hills and visit a tea museum."},
				{DayNumber: 3, Title: "Munnar sightseeing", Description: "Eravikulam National Park and Mattupetty Dam."},
				{DayNumber: 4, Title: "Alleppey houseboat", Description: "Board the houseboat and cruise the backwaters."},
				{DayNumber: 5, Title: "Depart", Description: "Transfer to Kochi airport."},
			},
			IsFeatured: true,
			Status:     models.PackageStatusPublished,
		},
		{
			Slug:                   "ladakh-high-passes",
			Title:                  "Ladakh High Passes",
			DestinationName:        "Ladakh",
			DurationDays:           7,
			StartingPricePerPerson: 38500,
			CurrencyCode:           "INR",
			ShortDescription:       "Monasteries, Pangong Lake and the road over Khardung La.",
			HeroImageURL:           "/files/demo/ladakh.jpg",
			Highlights:             []string{"Pangong Lake camp", "Nubra Valley dunes", "Thiksey Monastery"},
			Inclusions:             []string{"Breakfast and dinner", "Inner line permits", "Oxygen support"},
			Exclusions:             []string{"Flights", "Bike rental"},
			Itinerary: []models.ItineraryDay{
				{DayNumber: 1, Title: "Arrive in Leh", Description: "Rest and acclimatise."},
				{DayNumber: 2, Title: "Leh monasteries", Description: "Shey Palace, Thiksey and Hemis."},
				{DayNumber: 3, Title: "Nubra Valley", Description: "Cross Khardung La to Hunder."},
			},
			Status: models.PackageStatusPublished,
		},
		{
			Slug:                   "andaman-island-hopper",
			Title:                  "Andaman Island Hopper",
			DestinationName:        "Andaman Islands",
			DurationDays:           6,
			StartingPricePerPerson: 32000,
			CurrencyCode:           "INR",
			ShortDescription:       "Havelock beaches, Neil Island reefs and Port Blair history.",
			HeroImageURL:           "/files/demo/andaman.jpg",
			Highlights:             []string{"Radhanagar Beach", "Snorkelling at Neil Island", "Cellular Jail light show"},
			Inclusions:             []string{"Ferry tickets", "Breakfast daily"},
			Status:                 models.PackageStatusPublished,
		},
	}
}

func demoReviews() []reviewstore.CreateInput {
	return []reviewstore.CreateInput{
		{FullName: "Ananya Rao", Location: "Bengaluru", Rating: 5, Comment: "The houseboat night was the highlight of our year.", IsFeatured: true, Status: models.ReviewStatusApproved},
		{FullName: "Rohan Mehta", Location: "Pune", Rating: 5, Comment: "Every permit and transfer in Ladakh was handled for us.", IsFeatured: true, Status: models.ReviewStatusApproved},
		{FullName: "Sara Thomas", Location: "Kochi", Rating: 4, Comment: "Lovely islands, ferries ran late but the team kept us posted.", Status: models.ReviewStatusApproved},
	}
}

func demoHomeCollections() []homecollectionstore.CreateInput {
	return []homecollectionstore.CreateInput{
		{Category: models.CollectionCategoryTop, Badge: "Bestseller", Title: "Kerala", Subtitle: "Backwaters and hills", ImageURL: "/files/demo/kerala.jpg", Order: 1},
		{Category: models.CollectionCategoryTop, Badge: "Trending", Title: "Ladakh", Subtitle: "High passes", ImageURL: "/files/demo/ladakh.jpg", Order: 2},
		{Category: models.CollectionCategoryTop, Title: "Andamans", Subtitle: "Island beaches", ImageURL: "/files/demo/andaman.jpg", Order: 3},
		{Category: models.CollectionCategoryOffbeat, Badge: "Hidden gem", Title: "Ziro Valley", Subtitle: "Apatani villages", ImageURL: "/files/demo/ziro.jpg", Order: 1},
		{Category: models.CollectionCategoryOffbeat, Title: "Spiti", Subtitle: "Cold desert monasteries", ImageURL: "/files/demo/spiti.jpg", Order: 2},
	}
}
