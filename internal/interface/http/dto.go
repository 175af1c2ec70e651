package handlers

import (
	"time"

	"github.com/oksasatya/go-profile-service/internal/domain/entity"
	"github.com/oksasatya/go-profile-service/pkg/helpers"
)

type registerRequest struct {
	FirstName string `json:"firstName" binding:"required,max=50"`
	LastName  string `json:"lastName" binding:"required,max=50"`
	Email     string `json:"email" binding:"required,email,max=254"`
	Password  string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,pwd"`
}

type addressRequest struct {
	Line1   string `json:"line1" binding:"max=200"`
	Line2   string `json:"line2" binding:"max=200"`
	City    string `json:"city" binding:"max=100"`
	State   string `json:"state" binding:"max=100"`
	Pincode string `json:"pincode" binding:"max=20"`
	Country string `json:"country" binding:"max=100"`
}

type socialMediaRequest struct {
	LinkedIn  string `json:"linkedin" binding:"omitempty,url"`
	Twitter   string `json:"twitter" binding:"omitempty,url"`
	Instagram string `json:"instagram" binding:"omitempty,url"`
	Facebook  string `json:"facebook" binding:"omitempty,url"`
	YouTube   string `json:"youtube" binding:"omitempty,url"`
}

// updateProfileRequest distinguishes omitted fields (nil) from supplied ones.
type updateProfileRequest struct {
	FirstName          *string             `json:"firstName" binding:"omitempty,min=1,max=50"`
	LastName           *string             `json:"lastName" binding:"omitempty,min=1,max=50"`
	Age                *int                `json:"age" binding:"omitempty,gte=0,lte=150"`
	Gender             *string             `json:"gender" binding:"omitempty,max=30"`
	Phone              *string             `json:"phone" binding:"omitempty,phone"`
	Bio                *string             `json:"bio" binding:"omitempty,max=1000"`
	Address            *addressRequest     `json:"address"`
	PreferredLanguages *[]string           `json:"preferredLanguages" binding:"omitempty,taglist"`
	InterestedTopics   *[]string           `json:"interestedTopics" binding:"omitempty,taglist"`
	SocialMedia        *socialMediaRequest `json:"socialMedia"`
}

func (r updateProfileRequest) toPatch() entity.ProfilePatch {
	p := entity.ProfilePatch{
		FirstName:          r.FirstName,
		LastName:           r.LastName,
		Age:                r.Age,
		Gender:             r.Gender,
		Phone:              r.Phone,
		Bio:                r.Bio,
		PreferredLanguages: r.PreferredLanguages,
		InterestedTopics:   r.InterestedTopics,
	}
	if a := r.Address; a != nil {
		p.Address = &entity.Address{Line1: a.Line1, Line2: a.Line2, City: a.City, State: a.State, Pincode: a.Pincode, Country: a.Country}
	}
	if s := r.SocialMedia; s != nil {
		p.SocialMedia = &entity.SocialMedia{LinkedIn: s.LinkedIn, Twitter: s.Twitter, Instagram: s.Instagram, Facebook: s.Facebook, YouTube: s.YouTube}
	}
	return p
}

// Dates are YYYY-MM-DD or RFC 3339 strings.
type educationRequest struct {
	Degree       string `json:"degree" binding:"required,max=100"`
	College      string `json:"college" binding:"required,max=150"`
	FieldOfStudy string `json:"fieldOfStudy" binding:"max=100"`
	StartDate    string `json:"startDate" binding:"required"`
	EndDate      string `json:"endDate"`
}

func (r educationRequest) toEntity() (entity.Education, map[string]string) {
	start, end, details := parseRange(r.StartDate, r.EndDate)
	return entity.Education{Degree: r.Degree, College: r.College, FieldOfStudy: r.FieldOfStudy, StartDate: start, EndDate: end}, details
}

type workExperienceRequest struct {
	JobTitle       string `json:"jobTitle" binding:"required,max=100"`
	Company        string `json:"company" binding:"required,max=150"`
	StartDate      string `json:"startDate" binding:"required"`
	EndDate        string `json:"endDate"`
	EmploymentType string `json:"employmentType" binding:"max=50"`
	Industry       string `json:"industry" binding:"max=100"`
	Location       string `json:"location" binding:"max=150"`
}

func (r workExperienceRequest) toEntity() (entity.WorkExperience, map[string]string) {
	start, end, details := parseRange(r.StartDate, r.EndDate)
	return entity.WorkExperience{
		JobTitle: r.JobTitle, Company: r.Company, StartDate: start, EndDate: end,
		EmploymentType: r.EmploymentType, Industry: r.Industry, Location: r.Location,
	}, details
}

type settingsRequest struct {
	Theme              *string `json:"theme" binding:"omitempty,theme"`
	Language           *string `json:"language" binding:"omitempty,min=2,max=10"`
	EmailNotifications *bool   `json:"emailNotifications"`
	ShowProfile        *bool   `json:"showProfile"`
}

func (r settingsRequest) toInput() entity.SettingsInput {
	return entity.SettingsInput{Theme: r.Theme, Language: r.Language, EmailNotifications: r.EmailNotifications, ShowProfile: r.ShowProfile}
}

type searchQuery struct {
	Q    string `form:"q" binding:"max=200"`
	Size int    `form:"size" binding:"omitempty,gte=1,lte=50"`
}

func parseRange(startRaw, endRaw string) (start time.Time, end *time.Time, details map[string]string) {
	details = map[string]string{}
	start, err := helpers.ParseDate(startRaw)
	if err != nil {
		details["startDate"] = "must be a date (YYYY-MM-DD)"
	}
	end, err = helpers.ParseOptionalDate(endRaw)
	if err != nil {
		details["endDate"] = "must be a date (YYYY-MM-DD)"
	}
	if len(details) == 0 {
		details = nil
	}
	return start, end, details
}
