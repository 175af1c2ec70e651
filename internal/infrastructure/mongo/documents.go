package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/oksasatya/go-profile-service/internal/domain/entity"
)

const (
	fieldEducation      = "education"
	fieldWorkExperience = "workExperience"
)

type userDocument struct {
	ID                 bson.ObjectID            `bson:"_id,omitempty"`
	FirstName          string                   `bson:"firstName"`
	LastName           string                   `bson:"lastName"`
	Email              string                   `bson:"email"`
	Password           string                   `bson:"password"`
	AvatarURL          string                   `bson:"avatarUrl,omitempty"`
	Age                *int                     `bson:"age,omitempty"`
	Gender             string                   `bson:"gender,omitempty"`
	Phone              string                   `bson:"phone,omitempty"`
	Bio                string                   `bson:"bio,omitempty"`
	Address            *addressDocument         `bson:"address,omitempty"`
	PreferredLanguages []string                 `bson:"preferredLanguages,omitempty"`
	InterestedTopics   []string                 `bson:"interestedTopics,omitempty"`
	SocialMedia        *socialMediaDocument     `bson:"socialMedia,omitempty"`
	Education          []educationDocument      `bson:"education"`
	WorkExperience     []workExperienceDocument `bson:"workExperience"`
	Settings           *settingsDocument        `bson:"settings,omitempty"`
	CreatedAt          time.Time                `bson:"createdAt"`
	UpdatedAt          time.Time                `bson:"updatedAt"`
}

type addressDocument struct {
	Line1   string `bson:"line1,omitempty"`
	Line2   string `bson:"line2,omitempty"`
	City    string `bson:"city,omitempty"`
	State   string `bson:"state,omitempty"`
	Pincode string `bson:"pincode,omitempty"`
	Country string `bson:"country,omitempty"`
}

type socialMediaDocument struct {
	LinkedIn  string `bson:"linkedin,omitempty"`
	Twitter   string `bson:"twitter,omitempty"`
	Instagram string `bson:"instagram,omitempty"`
	Facebook  string `bson:"facebook,omitempty"`
	YouTube   string `bson:"youtube,omitempty"`
}

type educationDocument struct {
	ID           bson.ObjectID `bson:"_id"`
	Degree       string        `bson:"degree"`
	College      string        `bson:"college"`
	FieldOfStudy string        `bson:"fieldOfStudy"`
	StartDate    time.Time     `bson:"startDate"`
	EndDate      *time.Time    `bson:"endDate,omitempty"`
}

type workExperienceDocument struct {
	ID             bson.ObjectID `bson:"_id"`
	JobTitle       string        `bson:"jobTitle"`
	Company        string        `bson:"company"`
	StartDate      time.Time     `bson:"startDate"`
	EndDate        *time.Time    `bson:"endDate,omitempty"`
	EmploymentType string        `bson:"employmentType"`
	Industry       string        `bson:"industry"`
	Location       string        `bson:"location"`
}

// settingsDocument keeps pointers so that fields missing in older documents
// resolve to defaults instead of zero values.
type settingsDocument struct {
	Theme              *string `bson:"theme,omitempty"`
	Language           *string `bson:"language,omitempty"`
	EmailNotifications *bool   `bson:"emailNotifications,omitempty"`
	ShowProfile        *bool   `bson:"showProfile,omitempty"`
}

func toUserDocument(u *entity.User) userDocument {
	doc := userDocument{
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Email:              u.Email,
		Password:           u.Password,
		AvatarURL:          u.AvatarURL,
		Age:                u.Age,
		Gender:             u.Gender,
		Phone:              u.Phone,
		Bio:                u.Bio,
		Address:            toAddressDocument(u.Address),
		PreferredLanguages: u.PreferredLanguages,
		InterestedTopics:   u.InterestedTopics,
		SocialMedia:        toSocialMediaDocument(u.SocialMedia),
		Education:          make([]educationDocument, 0, len(u.Education)),
		WorkExperience:     make([]workExperienceDocument, 0, len(u.WorkExperience)),
		Settings:           toSettingsDocument(u.Settings),
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
	for _, e := range u.Education {
		doc.Education = append(doc.Education, toEducationDocument(e, bson.NewObjectID()))
	}
	for _, w := range u.WorkExperience {
		doc.WorkExperience = append(doc.WorkExperience, toWorkExperienceDocument(w, bson.NewObjectID()))
	}
	return doc
}

func (d *userDocument) toEntity() *entity.User {
	u := &entity.User{
		ID:                 d.ID.Hex(),
		Email:              d.Email,
		Password:           d.Password,
		FirstName:          d.FirstName,
		LastName:           d.LastName,
		AvatarURL:          d.AvatarURL,
		Age:                d.Age,
		Gender:             d.Gender,
		Phone:              d.Phone,
		Bio:                d.Bio,
		PreferredLanguages: d.PreferredLanguages,
		InterestedTopics:   d.InterestedTopics,
		Settings:           entity.DefaultSettings(),
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
	if d.Address != nil {
		u.Address = &entity.Address{
			Line1: d.Address.Line1, Line2: d.Address.Line2, City: d.Address.City,
			State: d.Address.State, Pincode: d.Address.Pincode, Country: d.Address.Country,
		}
	}
	if d.SocialMedia != nil {
		u.SocialMedia = &entity.SocialMedia{
			LinkedIn: d.SocialMedia.LinkedIn, Twitter: d.SocialMedia.Twitter, Instagram: d.SocialMedia.Instagram,
			Facebook: d.SocialMedia.Facebook, YouTube: d.SocialMedia.YouTube,
		}
	}
	if d.Settings != nil {
		u.Settings = entity.SettingsInput{
			Theme:              d.Settings.Theme,
			Language:           d.Settings.Language,
			EmailNotifications: d.Settings.EmailNotifications,
			ShowProfile:        d.Settings.ShowProfile,
		}.Resolve()
	}
	for _, e := range d.Education {
		u.Education = append(u.Education, entity.Education{
			ID: e.ID.Hex(), Degree: e.Degree, College: e.College, FieldOfStudy: e.FieldOfStudy,
			StartDate: e.StartDate, EndDate: e.EndDate,
		})
	}
	for _, w := range d.WorkExperience {
		u.WorkExperience = append(u.WorkExperience, entity.WorkExperience{
			ID: w.ID.Hex(), JobTitle: w.JobTitle, Company: w.Company, StartDate: w.StartDate, EndDate: w.EndDate,
			EmploymentType: w.EmploymentType, Industry: w.Industry, Location: w.Location,
		})
	}
	return u
}

func toAddressDocument(a *entity.Address) *addressDocument {
	if a == nil {
		return nil
	}
	return &addressDocument{Line1: a.Line1, Line2: a.Line2, City: a.City, State: a.State, Pincode: a.Pincode, Country: a.Country}
}

func toSocialMediaDocument(s *entity.SocialMedia) *socialMediaDocument {
	if s == nil {
		return nil
	}
	return &socialMediaDocument{LinkedIn: s.LinkedIn, Twitter: s.Twitter, Instagram: s.Instagram, Facebook: s.Facebook, YouTube: s.YouTube}
}

func toSettingsDocument(s entity.Settings) *settingsDocument {
	return &settingsDocument{
		Theme:              &s.Theme,
		Language:           &s.Language,
		EmailNotifications: &s.EmailNotifications,
		ShowProfile:        &s.ShowProfile,
	}
}

func toEducationDocument(e entity.Education, id bson.ObjectID) educationDocument {
	return educationDocument{
		ID: id, Degree: e.Degree, College: e.College, FieldOfStudy: e.FieldOfStudy,
		StartDate: e.StartDate, EndDate: e.EndDate,
	}
}

func toWorkExperienceDocument(w entity.WorkExperience, id bson.ObjectID) workExperienceDocument {
	return workExperienceDocument{
		ID: id, JobTitle: w.JobTitle, Company: w.Company, StartDate: w.StartDate, EndDate: w.EndDate,
		EmploymentType: w.EmploymentType, Industry: w.Industry, Location: w.Location,
	}
}

// profileUpdate builds a $set of the supplied top-level fields only.
func profileUpdate(p entity.ProfilePatch, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if p.FirstName != nil {
		set["firstName"] = *p.FirstName
	}
	if p.LastName != nil {
		set["lastName"] = *p.LastName
	}
	if p.Age != nil {
		set["age"] = *p.Age
	}
	if p.Gender != nil {
		set["gender"] = *p.Gender
	}
	if p.Phone != nil {
		set["phone"] = *p.Phone
	}
	if p.Bio != nil {
		set["bio"] = *p.Bio
	}
	if p.Address != nil {
		set["address"] = toAddressDocument(p.Address)
	}
	if p.PreferredLanguages != nil {
		set["preferredLanguages"] = *p.PreferredLanguages
	}
	if p.InterestedTopics != nil {
		set["interestedTopics"] = *p.InterestedTopics
	}
	if p.SocialMedia != nil {
		set["socialMedia"] = toSocialMediaDocument(p.SocialMedia)
	}
	return bson.M{"$set": set}
}

func setUpdate(field string, value any, now time.Time) bson.M {
	return bson.M{"$set": bson.M{field: value, "updatedAt": now}}
}

func pushEntryUpdate(field string, entry any, now time.Time) bson.M {
	return bson.M{
		"$push": bson.M{field: entry},
		"$set":  bson.M{"updatedAt": now},
	}
}

// replaceEntryUpdate replaces the array element matched by entryFilter through
// the positional operator.
func replaceEntryUpdate(field string, entry any, now time.Time) bson.M {
	return bson.M{"$set": bson.M{field + ".$": entry, "updatedAt": now}}
}

func pullEntryUpdate(field string, entryID bson.ObjectID, now time.Time) bson.M {
	return bson.M{
		"$pull": bson.M{field: bson.M{"_id": entryID}},
		"$set":  bson.M{"updatedAt": now},
	}
}

func entryFilter(userID bson.ObjectID, field string, entryID bson.ObjectID) bson.M {
	return bson.M{"_id": userID, field + "._id": entryID}
}
