package usecase

import "talentdesk-backend/internal/talent/domain"

type sample struct {
	talentID    string
	fullName    string
	nationality string
	location    string
	slug        string
	links       []domain.ExternalLink
}

var samples = []sample{
	{"talent-001", "John Doe", "American", "New York, NY", "john-doe", []domain.ExternalLink{
		{Name: "LinkedIn", URL: "https://linkedin.com/in/johndoe"},
		{Name: "GitHub", URL: "https://github.com/johndoe"},
	}},
	{"talent-002", "Jane Smith", "Canadian", "Toronto, ON", "jane-smith", []domain.ExternalLink{
		{Name: "LinkedIn", URL: "https://linkedin.com/in/janesmith"},
		{Name: "Portfolio", URL: "https://janesmith.dev"},
	}},
	{"talent-003", "Alex Chen", "Chinese", "Shanghai, China", "alex-chen", []domain.ExternalLink{
		{Name: "LinkedIn", URL: "https://linkedin.com/in/alexchen"},
		{Name: "Twitter", URL: "https://twitter.com/alexchen"},
	}},
	{"talent-004", "Maria Garcia", "Spanish", "Madrid, Spain", "maria-garcia", []domain.ExternalLink{
		{Name: "LinkedIn", URL: "https://linkedin.com/in/mariagarcia"},
		{Name: "Behance", URL: "https://behance.net/mariagarcia"},
	}},
	{"talent-005", "David Kim", "South Korean", "Seoul, South Korea", "david-kim", []domain.ExternalLink{
		{Name: "LinkedIn", URL: "https://linkedin.com/in/davidkim"},
		{Name: "GitHub", URL: "https://github.com/davidkim"},
	}},
}

// sampleTalents builds fresh records on every call so callers may mutate them
func sampleTalents() []*domain.Talent {
	out := make([]*domain.Talent, 0, len(samples))
	for _, s := range samples {
		url := "https://example.com/" + s.slug
		nationality, location := s.nationality, s.location
		out = append(out, &domain.Talent{
			TalentID:      s.talentID,
			TalentURL:     &url,
			FullName:      s.fullName,
			Nationality:   &nationality,
			Location:      &location,
			ExternalLinks: domain.CloneLinks(s.links),
		})
	}
	return out
}
