package templates

import (
	"time"
)

// Brand carries the application identity shown in every email.
type Brand struct {
	AppName string
	AppURL  string
}

// EmailData defines the fields available to the templates.
type EmailData struct {
	Name    string   `json:"Name"`
	Email   string   `json:"Email"`
	AppName string   `json:"AppName"`
	AppURL  string   `json:"AppURL"`
	Time    string   `json:"Time"`
	Changes []string `json:"Changes"`
}

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) { d.Time = t.UTC().Format("02 January 2006, 15:04 MST") }
}

func WithChanges(changes []string) Option {
	return func(d *EmailData) { d.Changes = changes }
}

func newEmailData(b Brand, name, email string, opts ...Option) EmailData {
	d := EmailData{Name: name, Email: email, AppName: b.AppName, AppURL: b.AppURL}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// ToMap converts EmailData to the map carried by EmailJob.Data.
func (d EmailData) ToMap() map[string]any {
	changes := make([]any, 0, len(d.Changes))
	for _, c := range d.Changes {
		changes = append(changes, c)
	}
	return map[string]any{
		"Name":    d.Name,
		"Email":   d.Email,
		"AppName": d.AppName,
		"AppURL":  d.AppURL,
		"Time":    d.Time,
		"Changes": changes,
	}
}

func NewWelcomeData(b Brand, name, email string, opts ...Option) map[string]any {
	return newEmailData(b, name, email, opts...).ToMap()
}

func NewProfileUpdatedData(b Brand, name, email string, changes []string, opts ...Option) map[string]any {
	opts = append([]Option{WithChanges(changes)}, opts...)
	return newEmailData(b, name, email, opts...).ToMap()
}
