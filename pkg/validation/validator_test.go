package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type address struct {
	City string `json:"city" validate:"max=5"`
}

type sample struct {
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required,pwd"`
	Theme     string   `json:"theme" validate:"omitempty,theme"`
	Topics    []string `json:"interestedTopics" validate:"omitempty,taglist"`
	LinkedIn  string   `json:"linkedin" validate:"omitempty,url"`
	Age       int      `json:"age" validate:"gte=0,lte=150"`
	Address   *address `json:"address"`
	Untracked string   `json:"-"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	Configure(v)
	return v
}

func TestToDetails_ValidationErrors(t *testing.T) {
	topics := make([]string, MaxTags+1)
	for i := range topics {
		topics[i] = "t"
	}
	err := newValidator().Struct(sample{
		Email:    "nope",
		Password: "123",
		Theme:    "pink",
		Topics:   topics,
		LinkedIn: "not a url",
		Age:      200,
		Address:  &address{City: "Amsterdam"},
	})

	details := ToDetails(err)
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "must be between 6 and 72 characters", details["password"])
	assert.Equal(t, "must be one of: light, dark, system", details["theme"])
	assert.Equal(t, "must contain at most 20 items", details["interestedTopics"])
	assert.Equal(t, "must be a valid URL", details["linkedin"])
	assert.Equal(t, "must be less than or equal to 150", details["age"])
	assert.Equal(t, "must be at most 5 characters", details["address.city"])
}

func TestToDetails_Valid(t *testing.T) {
	err := newValidator().Struct(sample{Email: "a@b.co", Password: "secret1", Topics: []string{"go"}})
	assert.NoError(t, err)
	assert.Nil(t, ToDetails(err))
}

func TestToDetails_JSONErrors(t *testing.T) {
	var v sample
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(json.Unmarshal([]byte("{"), &v)))

	err := json.Unmarshal([]byte(`{"age":"old"}`), &v)
	assert.Equal(t, map[string]string{"age": "must be a int"}, ToDetails(err))

	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("boom")))
}
