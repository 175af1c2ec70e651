package client

import "time"

type Address struct {
	Line1   string `json:"line1,omitempty"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Pincode string `json:"pincode,omitempty"`
	Country string `json:"country,omitempty"`
}

type SocialMedia struct {
	LinkedIn  string `json:"linkedin,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
}

type Education struct {
	ID           string     `json:"_id,omitempty"`
	Degree       string     `json:"degree"`
	College      string     `json:"college"`
	FieldOfStudy string     `json:"fieldOfStudy"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      *time.Time `json:"endDate,omitempty"`
}

type WorkExperience struct {
	ID             string     `json:"_id,omitempty"`
	JobTitle       string     `json:"jobTitle"`
	Company        string     `json:"company"`
	StartDate      time.Time  `json:"startDate"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	EmploymentType string     `json:"employmentType"`
	Industry       string     `json:"industry"`
	Location       string     `json:"location"`
}

type Settings struct {
	Theme              string `json:"theme"`
	Language           string `json:"language"`
	EmailNotifications bool   `json:"emailNotifications"`
	ShowProfile        bool   `json:"showProfile"`
}

// User is the profile document returned by the API.
type User struct {
	ID                 string           `json:"id"`
	Email              string           `json:"email"`
	FirstName          string           `json:"firstName"`
	LastName           string           `json:"lastName"`
	AvatarURL          string           `json:"avatarUrl,omitempty"`
	Age                *int             `json:"age,omitempty"`
	Gender             string           `json:"gender,omitempty"`
	Phone              string           `json:"phone,omitempty"`
	Bio                string           `json:"bio,omitempty"`
	Address            *Address         `json:"address,omitempty"`
	PreferredLanguages []string         `json:"preferredLanguages"`
	InterestedTopics   []string         `json:"interestedTopics"`
	SocialMedia        *SocialMedia     `json:"socialMedia,omitempty"`
	Education          []Education      `json:"education"`
	WorkExperience     []WorkExperience `json:"workExperience"`
	Settings           Settings         `json:"settings"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

// UserSummary is returned by Register and Login.
type UserSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

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

type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// ProfileUpdate only sends the fields that are set.
type ProfileUpdate struct {
	FirstName          *string      `json:"firstName,omitempty"`
	LastName           *string      `json:"lastName,omitempty"`
	Age                *int         `json:"age,omitempty"`
	Gender             *string      `json:"gender,omitempty"`
	Phone              *string      `json:"phone,omitempty"`
	Bio                *string      `json:"bio,omitempty"`
	Address            *Address     `json:"address,omitempty"`
	PreferredLanguages *[]string    `json:"preferredLanguages,omitempty"`
	InterestedTopics   *[]string    `json:"interestedTopics,omitempty"`
	SocialMedia        *SocialMedia `json:"socialMedia,omitempty"`
}

// SettingsUpdate replaces the settings; nil fields reset to server defaults.
type SettingsUpdate struct {
	Theme              *string `json:"theme,omitempty"`
	Language           *string `json:"language,omitempty"`
	EmailNotifications *bool   `json:"emailNotifications,omitempty"`
	ShowProfile        *bool   `json:"showProfile,omitempty"`
}
