package postgres

import (
	"encoding/json"
	"time"

	"github.com/oksasatya/go-profile-service/internal/domain/entity"
)

// JSON shapes of the jsonb columns. Keys follow the API naming so the column
// content reads the same as the public user view.

type profileJSON struct {
	Age                *int             `json:"age,omitempty"`
	Gender             string           `json:"gender,omitempty"`
	Phone              string           `json:"phone,omitempty"`
	Bio                string           `json:"bio,omitempty"`
	Address            *addressJSON     `json:"address,omitempty"`
	PreferredLanguages []string         `json:"preferredLanguages,omitempty"`
	InterestedTopics   []string         `json:"interestedTopics,omitempty"`
	SocialMedia        *socialMediaJSON `json:"socialMedia,omitempty"`
}

type addressJSON struct {
	Line1   string `json:"line1,omitempty"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Pincode string `json:"pincode,omitempty"`
	Country string `json:"country,omitempty"`
}

type socialMediaJSON struct {
	LinkedIn  string `json:"linkedin,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
}

type educationJSON struct {
	ID           string     `json:"id"`
	Degree       string     `json:"degree"`
	College      string     `json:"college"`
	FieldOfStudy string     `json:"fieldOfStudy"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      *time.Time `json:"endDate,omitempty"`
}

type workExperienceJSON struct {
	ID             string     `json:"id"`
	JobTitle       string     `json:"jobTitle"`
	Company        string     `json:"company"`
	StartDate      time.Time  `json:"startDate"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	EmploymentType string     `json:"employmentType"`
	Industry       string     `json:"industry"`
	Location       string     `json:"location"`
}

type settingsJSON struct {
	Theme              *string `json:"theme,omitempty"`
	Language           *string `json:"language,omitempty"`
	EmailNotifications *bool   `json:"emailNotifications,omitempty"`
	ShowProfile        *bool   `json:"showProfile,omitempty"`
}

func toAddressJSON(a *entity.Address) *addressJSON {
	if a == nil {
		return nil
	}
	return &addressJSON{Line1: a.Line1, Line2: a.Line2, City: a.City, State: a.State, Pincode: a.Pincode, Country: a.Country}
}

func toSocialMediaJSON(s *entity.SocialMedia) *socialMediaJSON {
	if s == nil {
		return nil
	}
	return &socialMediaJSON{LinkedIn: s.LinkedIn, Twitter: s.Twitter, Instagram: s.Instagram, Facebook: s.Facebook, YouTube: s.YouTube}
}

func toEducationJSON(e entity.Education) educationJSON {
	return educationJSON{ID: e.ID, Degree: e.Degree, College: e.College, FieldOfStudy: e.FieldOfStudy, StartDate: e.StartDate, EndDate: e.EndDate}
}

func toWorkExperienceJSON(w entity.WorkExperience) workExperienceJSON {
	return workExperienceJSON{
		ID: w.ID, JobTitle: w.JobTitle, Company: w.Company, StartDate: w.StartDate, EndDate: w.EndDate,
		EmploymentType: w.EmploymentType, Industry: w.Industry, Location: w.Location,
	}
}

func toSettingsJSON(s entity.Settings) settingsJSON {
	return settingsJSON{Theme: &s.Theme, Language: &s.Language, EmailNotifications: &s.EmailNotifications, ShowProfile: &s.ShowProfile}
}

func marshalProfile(u *entity.User) ([]byte, error) {
	return json.Marshal(profileJSON{
		Age: u.Age, Gender: u.Gender, Phone: u.Phone, Bio: u.Bio,
		Address:            toAddressJSON(u.Address),
		PreferredLanguages: u.PreferredLanguages,
		InterestedTopics:   u.InterestedTopics,
		SocialMedia:        toSocialMediaJSON(u.SocialMedia),
	})
}

// marshalProfilePatch encodes only the supplied profile keys, so that
// `profile || patch` keeps everything else.
func marshalProfilePatch(p entity.ProfilePatch) ([]byte, error) {
	m := map[string]any{}
	if p.Age != nil {
		m["age"] = *p.Age
	}
	if p.Gender != nil {
		m["gender"] = *p.Gender
	}
	if p.Phone != nil {
		m["phone"] = *p.Phone
	}
	if p.Bio != nil {
		m["bio"] = *p.Bio
	}
	if p.Address != nil {
		m["address"] = toAddressJSON(p.Address)
	}
	if p.PreferredLanguages != nil {
		m["preferredLanguages"] = *p.PreferredLanguages
	}
	if p.InterestedTopics != nil {
		m["interestedTopics"] = *p.InterestedTopics
	}
	if p.SocialMedia != nil {
		m["socialMedia"] = toSocialMediaJSON(p.SocialMedia)
	}
	return json.Marshal(m)
}

func marshalEducation(list []entity.Education) ([]byte, error) {
	out := make([]educationJSON, 0, len(list))
	for _, e := range list {
		out = append(out, toEducationJSON(e))
	}
	return json.Marshal(out)
}

func marshalWorkExperience(list []entity.WorkExperience) ([]byte, error) {
	out := make([]workExperienceJSON, 0, len(list))
	for _, w := range list {
		out = append(out, toWorkExperienceJSON(w))
	}
	return json.Marshal(out)
}

// decodeDocuments fills the jsonb-backed fields of u.
func decodeDocuments(u *entity.User, profileRaw, educationRaw, workRaw, settingsRaw []byte) error {
	var p profileJSON
	if len(profileRaw) > 0 {
		if err := json.Unmarshal(profileRaw, &p); err != nil {
			return err
		}
	}
	u.Age, u.Gender, u.Phone, u.Bio = p.Age, p.Gender, p.Phone, p.Bio
	u.PreferredLanguages, u.InterestedTopics = p.PreferredLanguages, p.InterestedTopics
	if p.Address != nil {
		a := p.Address
		u.Address = &entity.Address{Line1: a.Line1, Line2: a.Line2, City: a.City, State: a.State, Pincode: a.Pincode, Country: a.Country}
	}
	if p.SocialMedia != nil {
		s := p.SocialMedia
		u.SocialMedia = &entity.SocialMedia{LinkedIn: s.LinkedIn, Twitter: s.Twitter, Instagram: s.Instagram, Facebook: s.Facebook, YouTube: s.YouTube}
	}

	var edu []educationJSON
	if len(educationRaw) > 0 {
		if err := json.Unmarshal(educationRaw, &edu); err != nil {
			return err
		}
	}
	for _, e := range edu {
		u.Education = append(u.Education, entity.Education{
			ID: e.ID, Degree: e.Degree, College: e.College, FieldOfStudy: e.FieldOfStudy, StartDate: e.StartDate, EndDate: e.EndDate,
		})
	}

	var work []workExperienceJSON
	if len(workRaw) > 0 {
		if err := json.Unmarshal(workRaw, &work); err != nil {
			return err
		}
	}
	for _, w := range work {
		u.WorkExperience = append(u.WorkExperience, entity.WorkExperience{
			ID: w.ID, JobTitle: w.JobTitle, Company: w.Company, StartDate: w.StartDate, EndDate: w.EndDate,
			EmploymentType: w.EmploymentType, Industry: w.Industry, Location: w.Location,
		})
	}

	var s settingsJSON
	if len(settingsRaw) > 0 {
		if err := json.Unmarshal(settingsRaw, &s); err != nil {
			return err
		}
	}
	u.Settings = entity.SettingsInput{
		Theme: s.Theme, Language: s.Language, EmailNotifications: s.EmailNotifications, ShowProfile: s.ShowProfile,
	}.Resolve()
	return nil
}
