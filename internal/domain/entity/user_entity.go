package entity

import (
	"time"
)

// User is the aggregate root for the profile domain.
// Password holds the bcrypt hash, never the plain text.
// Education and WorkExperience are owned lists and only reachable through the user.
type User struct {
	ID        string
	Email     string
	Password  string
	FirstName string
	LastName  string
	AvatarURL string

	Age                *int
	Gender             string
	Phone              string
	Bio                string
	Address            *Address
	PreferredLanguages []string
	InterestedTopics   []string
	SocialMedia        *SocialMedia

	Education      []Education
	WorkExperience []WorkExperience
	Settings       Settings

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Address struct {
	Line1   string
	Line2   string
	City    string
	State   string
	Pincode string
	Country string
}

type SocialMedia struct {
	LinkedIn  string
	Twitter   string
	Instagram string
	Facebook  string
	YouTube   string
}

// Education is an entry of the user's education history.
// ID is assigned by the store on append and stays stable until the entry is deleted.
type Education struct {
	ID           string
	Degree       string
	College      string
	FieldOfStudy string
	StartDate    time.Time
	EndDate      *time.Time
}

type WorkExperience struct {
	ID             string
	JobTitle       string
	Company        string
	StartDate      time.Time
	EndDate        *time.Time
	EmploymentType string
	Industry       string
	Location       string
}

// FullName joins first and last name.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// EducationIndex returns the position of the entry with the given id, or -1.
func (u *User) EducationIndex(id string) int {
	for i := range u.Education {
		if u.Education[i].ID == id {
			return i
		}
	}
	return -1
}

// WorkExperienceIndex returns the position of the entry with the given id, or -1.
func (u *User) WorkExperienceIndex(id string) int {
	for i := range u.WorkExperience {
		if u.WorkExperience[i].ID == id {
			return i
		}
	}
	return -1
}
