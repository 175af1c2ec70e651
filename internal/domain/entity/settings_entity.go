package entity

const (
	DefaultTheme    = "light"
	DefaultLanguage = "en"
)

// Settings is the per-user preferences sub-object.
type Settings struct {
	Theme              string
	Language           string
	EmailNotifications bool
	ShowProfile        bool
}

// DefaultSettings returns the values a fresh user starts with.
func DefaultSettings() Settings {
	return Settings{
		Theme:              DefaultTheme,
		Language:           DefaultLanguage,
		EmailNotifications: true,
		ShowProfile:        true,
	}
}

// SettingsInput carries a settings payload where every field is optional.
// Resolve fills omitted fields with defaults: an update replaces the whole
// sub-object and does not fall back to previously stored values.
type SettingsInput struct {
	Theme              *string
	Language           *string
	EmailNotifications *bool
	ShowProfile        *bool
}

func (in SettingsInput) Resolve() Settings {
	s := DefaultSettings()
	if in.Theme != nil && *in.Theme != "" {
		s.Theme = *in.Theme
	}
	if in.Language != nil && *in.Language != "" {
		s.Language = *in.Language
	}
	if in.EmailNotifications != nil {
		s.EmailNotifications = *in.EmailNotifications
	}
	if in.ShowProfile != nil {
		s.ShowProfile = *in.ShowProfile
	}
	return s
}
