package entity

// ProfilePatch is a merge update of top-level profile fields.
// A nil field is left untouched; nested objects (Address, SocialMedia) are
// replaced as a whole when present.
type ProfilePatch struct {
	FirstName          *string
	LastName           *string
	Age                *int
	Gender             *string
	Phone              *string
	Bio                *string
	Address            *Address
	PreferredLanguages *[]string
	InterestedTopics   *[]string
	SocialMedia        *SocialMedia
}

// IsEmpty reports whether the patch changes nothing.
func (p ProfilePatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Age == nil &&
		p.Gender == nil && p.Phone == nil && p.Bio == nil && p.Address == nil &&
		p.PreferredLanguages == nil && p.InterestedTopics == nil && p.SocialMedia == nil
}

// Fields lists the names of the supplied fields, in JSON naming.
func (p ProfilePatch) Fields() []string {
	var out []string
	add := func(ok bool, name string) {
		if ok {
			out = append(out, name)
		}
	}
	add(p.FirstName != nil, "firstName")
	add(p.LastName != nil, "lastName")
	add(p.Age != nil, "age")
	add(p.Gender != nil, "gender")
	add(p.Phone != nil, "phone")
	add(p.Bio != nil, "bio")
	add(p.Address != nil, "address")
	add(p.PreferredLanguages != nil, "preferredLanguages")
	add(p.InterestedTopics != nil, "interestedTopics")
	add(p.SocialMedia != nil, "socialMedia")
	return out
}

// Apply merges the patch into u in place.
func (p ProfilePatch) Apply(u *User) {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Age != nil {
		age := *p.Age
		u.Age = &age
	}
	if p.Gender != nil {
		u.Gender = *p.Gender
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.Address != nil {
		a := *p.Address
		u.Address = &a
	}
	if p.PreferredLanguages != nil {
		u.PreferredLanguages = append([]string(nil), (*p.PreferredLanguages)...)
	}
	if p.InterestedTopics != nil {
		u.InterestedTopics = append([]string(nil), (*p.InterestedTopics)...)
	}
	if p.SocialMedia != nil {
		s := *p.SocialMedia
		u.SocialMedia = &s
	}
}
