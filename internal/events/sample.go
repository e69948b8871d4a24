package events

// SampleEvents returns the built-in catalog used when the upstream events API
// is unconfigured or unreachable. Ten events spanning varied categories,
// locations and price points so search stays meaningful offline.
func SampleEvents() []Event {
	return []Event{
		{
			ID:            "1",
			Title:         "Tech Conference 2023",
			Description:   "Annual technology conference featuring talks on AI, machine learning, and software development. Join industry leaders for three days of innovation.",
			Tags:          []string{"technology", "AI", "machine learning", "software", "conference"},
			Location:      "San Francisco, CA",
			CreatedAt:     "2023-08-01T00:00:00",
			ImageURL:      "https://example.com/event1.jpg",
			StartDateTime: "2023-11-15T09:00:00",
			EndDateTime:   "2023-11-15T17:00:00",
			Price:         "TBD",
			IsFree:        false,
			URL:           "https://example.com/events/1",
			Category:      Category{ID: "c1", Name: "Technology"},
			Organizer:     Organizer{ID: "o1", FirstName: "John", LastName: "Doe"},
		},
		{
			ID:            "2",
			Title:         "Jazz Festival",
			Description:   "Weekend jazz festival with performances from world-renowned artists. Food and drinks available throughout the event.",
			Tags:          []string{"music", "jazz", "festival", "live performance", "food"},
			Location:      "New York, NY",
			CreatedAt:     "2023-08-02T00:00:00",
			ImageURL:      "https://example.com/event2.jpg",
			StartDateTime: "2023-09-22T10:00:00",
			EndDateTime:   "2023-09-22T22:00:00",
			Price:         "50",
			IsFree:        false,
			URL:           "https://example.com/events/2",
			Category:      Category{ID: "c2", Name: "Music"},
			Organizer:     Organizer{ID: "o2", FirstName: "Alice", LastName: "Smith"},
		},
		{
			ID:            "3",
			Title:         "Startup Pitch Competition",
			Description:   "Watch promising startups pitch their ideas to a panel of investors. Great opportunity for networking with entrepreneurs.",
			Tags:          []string{"business", "startup", "pitching", "investors", "networking"},
			Location:      "Austin, TX",
			CreatedAt:     "2023-08-03T00:00:00",
			ImageURL:      "https://example.com/event3.jpg",
			StartDateTime: "2023-10-05T14:00:00",
			EndDateTime:   "2023-10-05T18:00:00",
			Price:         "0",
			IsFree:        true,
			URL:           "https://example.com/events/3",
			Category:      Category{ID: "c3", Name: "Business"},
			Organizer:     Organizer{ID: "o3", FirstName: "Bob", LastName: "Johnson"},
		},
		{
			ID:            "4",
			Title:         "Marathon for Charity",
			Description:   "Annual marathon raising funds for children's hospitals. All fitness levels welcome with 5K, 10K, and full marathon options.",
			Tags:          []string{"sports", "marathon", "charity", "fitness", "running"},
			Location:      "Chicago, IL",
			CreatedAt:     "2023-08-04T00:00:00",
			ImageURL:      "https://example.com/event4.jpg",
			StartDateTime: "2023-10-28T07:00:00",
			EndDateTime:   "2023-10-28T13:00:00",
			Price:         "25",
			IsFree:        false,
			URL:           "https://example.com/events/4",
			Category:      Category{ID: "c4", Name: "Sports"},
			Organizer:     Organizer{ID: "o4", FirstName: "Sarah", LastName: "Lee"},
		},
		{
			ID:            "5",
			Title:         "Digital Marketing Workshop",
			Description:   "Hands-on workshop teaching the latest digital marketing strategies, SEO techniques, and social media advertising.",
			Tags:          []string{"education", "marketing", "SEO", "social media", "workshop"},
			Location:      "Online Event",
			CreatedAt:     "2023-08-05T00:00:00",
			ImageURL:      "https://example.com/event5.jpg",
			StartDateTime: "2023-09-30T09:00:00",
			EndDateTime:   "2023-09-30T16:00:00",
			Price:         "0",
			IsFree:        true,
			URL:           "https://example.com/events/5",
			Category:      Category{ID: "c5", Name: "Education"},
			Organizer:     Organizer{ID: "o5", FirstName: "David", LastName: "Kim"},
		},
		{
			ID:            "6",
			Title:         "Food & Wine Festival",
			Description:   "Sample gourmet foods and fine wines from top chefs and vineyards. Cooking demonstrations and tasting sessions throughout the day.",
			Tags:          []string{"food", "wine", "festival", "cooking", "tasting"},
			Location:      "Napa Valley, CA",
			CreatedAt:     "2023-08-06T00:00:00",
			ImageURL:      "https://example.com/event6.jpg",
			StartDateTime: "2023-11-10T11:00:00",
			EndDateTime:   "2023-11-10T20:00:00",
			Price:         "75",
			IsFree:        false,
			URL:           "https://example.com/events/6",
			Category:      Category{ID: "c6", Name: "Food & Drink"},
			Organizer:     Organizer{ID: "o6", FirstName: "Emma", LastName: "Williams"},
		},
		{
			ID:            "7",
			Title:         "VR Gaming Expo",
			Description:   "Experience the latest in virtual reality gaming technology. Try new games, meet developers, and participate in tournaments.",
			Tags:          []string{"gaming", "VR", "virtual reality", "expo", "tournaments"},
			Location:      "Los Angeles, CA",
			CreatedAt:     "2023-08-07T00:00:00",
			ImageURL:      "https://example.com/event7.jpg",
			StartDateTime: "2023-10-14T10:00:00",
			EndDateTime:   "2023-10-14T18:00:00",
			Price:         "30",
			IsFree:        false,
			URL:           "https://example.com/events/7",
			Category:      Category{ID: "c7", Name: "Gaming"},
			Organizer:     Organizer{ID: "o7", FirstName: "Liam", LastName: "Brown"},
		},
		{
			ID:            "8",
			Title:         "Yoga & Wellness Retreat",
			Description:   "Weekend retreat focusing on yoga, meditation, and holistic wellness practices. Suitable for all experience levels.",
			Tags:          []string{"health", "wellness", "yoga", "meditation", "retreat"},
			Location:      "Sedona, AZ",
			CreatedAt:     "2023-08-08T00:00:00",
			ImageURL:      "https://example.com/event8.jpg",
			StartDateTime: "2023-11-05T08:00:00",
			EndDateTime:   "2023-11-05T17:00:00",
			Price:         "100",
			IsFree:        false,
			URL:           "https://example.com/events/8",
			Category:      Category{ID: "c8", Name: "Health & Wellness"},
			Organizer:     Organizer{ID: "o8", FirstName: "Sophia", LastName: "Martinez"},
		},
		{
			ID:            "9",
			Title:         "Tech Meetup: AI Applications",
			Description:   "Monthly meetup discussing practical applications of artificial intelligence in various industries. Networking session included.",
			Tags:          []string{"technology", "AI", "meetup", "networking", "applications"},
			Location:      "San Francisco, CA",
			CreatedAt:     "2023-08-09T00:00:00",
			ImageURL:      "https://example.com/event9.jpg",
			StartDateTime: "2023-10-12T18:00:00",
			EndDateTime:   "2023-10-12T21:00:00",
			Price:         "0",
			IsFree:        true,
			URL:           "https://example.com/events/9",
			Category:      Category{ID: "c9", Name: "Technology"},
			Organizer:     Organizer{ID: "o9", FirstName: "Olivia", LastName: "Davis"},
		},
		{
			ID:            "10",
			Title:         "Blockchain Conference",
			Description:   "Exploring the future of blockchain technology, cryptocurrencies, and decentralized applications. Features industry experts.",
			Tags:          []string{"technology", "blockchain", "crypto", "conference", "decentralized"},
			Location:      "Austin, TX",
			CreatedAt:     "2023-08-10T00:00:00",
			ImageURL:      "https://example.com/event10.jpg",
			StartDateTime: "2023-11-20T09:00:00",
			EndDateTime:   "2023-11-20T17:00:00",
			Price:         "120",
			IsFree:        false,
			URL:           "https://example.com/events/10",
			Category:      Category{ID: "c10", Name: "Technology"},
			Organizer:     Organizer{ID: "o10", FirstName: "James", LastName: "Miller"},
		},
	}
}
