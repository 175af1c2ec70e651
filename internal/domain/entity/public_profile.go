package entity

// PublicProfile is the subset of a user exposed through profile search.
// Only users with Settings.ShowProfile are searchable.
type PublicProfile struct {
	ID                 string   `json:"id"`
	FirstName          string   `json:"firstName"`
	LastName           string   `json:"lastName"`
	AvatarURL          string   `json:"avatarUrl,omitempty"`
	Bio                string   `json:"bio,omitempty"`
	City               string   `json:"city,omitempty"`
	Country            string   `json:"country,omitempty"`
	PreferredLanguages []string `json:"preferredLanguages,omitempty"`
	InterestedTopics   []string `json:"interestedTopics,omitempty"`
	Companies          []string `json:"companies,omitempty"`
	Colleges           []string `json:"colleges,omitempty"`
}

// Public builds the searchable view of u.
func (u *User) Public() PublicProfile {
	p := PublicProfile{
		ID:                 u.ID,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		AvatarURL:          u.AvatarURL,
		Bio:                u.Bio,
		PreferredLanguages: u.PreferredLanguages,
		InterestedTopics:   u.InterestedTopics,
	}
	if u.Address != nil {
		p.City, p.Country = u.Address.City, u.Address.Country
	}
	for _, w := range u.WorkExperience {
		p.Companies = append(p.Companies, w.Company)
	}
	for _, e := range u.Education {
		p.Colleges = append(p.Colleges, e.College)
	}
	return p
}
