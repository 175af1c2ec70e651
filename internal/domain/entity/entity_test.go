package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/go-profile-service/internal/domain/entity"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestSettingsInputResolve_OmittedFieldsTakeDefaults(t *testing.T) {
	got := entity.SettingsInput{Theme: strPtr("dark")}.Resolve()

	assert.Equal(t, entity.Settings{
		Theme:              "dark",
		Language:           entity.DefaultLanguage,
		EmailNotifications: true,
		ShowProfile:        true,
	}, got)
}

func TestSettingsInputResolve_ExplicitFalse(t *testing.T) {
	got := entity.SettingsInput{EmailNotifications: boolPtr(false), ShowProfile: boolPtr(false)}.Resolve()

	assert.False(t, got.EmailNotifications)
	assert.False(t, got.ShowProfile)
	assert.Equal(t, entity.DefaultTheme, got.Theme)
}

func TestProfilePatchApply_LeavesOmittedFieldsUntouched(t *testing.T) {
	age := 30
	u := &entity.User{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Bio:       "math",
		Age:       &age,
		Address:   &entity.Address{City: "London"},
	}

	entity.ProfilePatch{Bio: strPtr("engines")}.Apply(u)

	assert.Equal(t, "Ada", u.FirstName)
	assert.Equal(t, "Lovelace", u.LastName)
	assert.Equal(t, "engines", u.Bio)
	assert.Equal(t, 30, *u.Age)
	assert.Equal(t, "London", u.Address.City)
}

func TestProfilePatchApply_ReplacesNestedObjects(t *testing.T) {
	u := &entity.User{Address: &entity.Address{City: "London", Country: "UK"}}

	entity.ProfilePatch{Address: &entity.Address{City: "Paris"}}.Apply(u)

	assert.Equal(t, &entity.Address{City: "Paris"}, u.Address)
}

func TestProfilePatchFieldsAndIsEmpty(t *testing.T) {
	assert.True(t, entity.ProfilePatch{}.IsEmpty())

	langs := []string{"en"}
	p := entity.ProfilePatch{Phone: strPtr("1"), PreferredLanguages: &langs}
	assert.False(t, p.IsEmpty())
	assert.Equal(t, []string{"phone", "preferredLanguages"}, p.Fields())
}

func TestUserFullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", (&entity.User{FirstName: "Ada", LastName: "Lovelace"}).FullName())
	assert.Equal(t, "Ada", (&entity.User{FirstName: "Ada"}).FullName())
	assert.Equal(t, "Lovelace", (&entity.User{LastName: "Lovelace"}).FullName())
}

func TestUserEntryIndex(t *testing.T) {
	u := &entity.User{
		Education:      []entity.Education{{ID: "e1", Degree: "BSc"}, {ID: "e2", Degree: "MSc"}},
		WorkExperience: []entity.WorkExperience{{ID: "w1", Company: "Acme"}},
	}

	assert.Equal(t, 1, u.EducationIndex("e2"))
	assert.Equal(t, -1, u.EducationIndex("nope"))
	assert.Equal(t, 0, u.WorkExperienceIndex("w1"))
	assert.Equal(t, -1, u.WorkExperienceIndex(""))
}
