package handlers

import (
	"time"

	"github.com/oksasatya/go-profile-service/internal/domain/entity"
)

type addressView struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country"`
}

type socialMediaView struct {
	LinkedIn  string `json:"linkedin"`
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	YouTube   string `json:"youtube"`
}

type educationView struct {
	ID           string     `json:"_id"`
	Degree       string     `json:"degree"`
	College      string     `json:"college"`
	FieldOfStudy string     `json:"fieldOfStudy"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      *time.Time `json:"endDate,omitempty"`
}

type workExperienceView struct {
	ID             string     `json:"_id"`
	JobTitle       string     `json:"jobTitle"`
	Company        string     `json:"company"`
	StartDate      time.Time  `json:"startDate"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	EmploymentType string     `json:"employmentType"`
	Industry       string     `json:"industry"`
	Location       string     `json:"location"`
}

type settingsView struct {
	Theme              string `json:"theme"`
	Language           string `json:"language"`
	EmailNotifications bool   `json:"emailNotifications"`
	ShowProfile        bool   `json:"showProfile"`
}

// userView is the password-free user document.
type userView struct {
	ID                 string               `json:"id"`
	Email              string               `json:"email"`
	FirstName          string               `json:"firstName"`
	LastName           string               `json:"lastName"`
	AvatarURL          string               `json:"avatarUrl,omitempty"`
	Age                *int                 `json:"age,omitempty"`
	Gender             string               `json:"gender,omitempty"`
	Phone              string               `json:"phone,omitempty"`
	Bio                string               `json:"bio,omitempty"`
	Address            *addressView         `json:"address,omitempty"`
	PreferredLanguages []string             `json:"preferredLanguages"`
	InterestedTopics   []string             `json:"interestedTopics"`
	SocialMedia        *socialMediaView     `json:"socialMedia,omitempty"`
	Education          []educationView      `json:"education"`
	WorkExperience     []workExperienceView `json:"workExperience"`
	Settings           settingsView         `json:"settings"`
	CreatedAt          time.Time            `json:"createdAt"`
	UpdatedAt          time.Time            `json:"updatedAt"`
}

// userSummary is the user returned next to a fresh token.
type userSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func toSummary(u *entity.User) userSummary {
	return userSummary{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
}

func toUserView(u *entity.User) userView {
	v := userView{
		ID:                 u.ID,
		Email:              u.Email,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		AvatarURL:          u.AvatarURL,
		Age:                u.Age,
		Gender:             u.Gender,
		Phone:              u.Phone,
		Bio:                u.Bio,
		PreferredLanguages: nonNil(u.PreferredLanguages),
		InterestedTopics:   nonNil(u.InterestedTopics),
		Education:          make([]educationView, 0, len(u.Education)),
		WorkExperience:     make([]workExperienceView, 0, len(u.WorkExperience)),
		Settings: settingsView{
			Theme:              u.Settings.Theme,
			Language:           u.Settings.Language,
			EmailNotifications: u.Settings.EmailNotifications,
			ShowProfile:        u.Settings.ShowProfile,
		},
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if a := u.Address; a != nil {
		v.Address = &addressView{Line1: a.Line1, Line2: a.Line2, City: a.City, State: a.State, Pincode: a.Pincode, Country: a.Country}
	}
	if s := u.SocialMedia; s != nil {
		v.SocialMedia = &socialMediaView{LinkedIn: s.LinkedIn, Twitter: s.Twitter, Instagram: s.Instagram, Facebook: s.Facebook, YouTube: s.YouTube}
	}
	for _, e := range u.Education {
		v.Education = append(v.Education, educationView{
			ID: e.ID, Degree: e.Degree, College: e.College, FieldOfStudy: e.FieldOfStudy,
			StartDate: e.StartDate, EndDate: e.EndDate,
		})
	}
	for _, w := range u.WorkExperience {
		v.WorkExperience = append(v.WorkExperience, workExperienceView{
			ID: w.ID, JobTitle: w.JobTitle, Company: w.Company, StartDate: w.StartDate, EndDate: w.EndDate,
			EmploymentType: w.EmploymentType, Industry: w.Industry, Location: w.Location,
		})
	}
	return v
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
