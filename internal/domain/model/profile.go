package model

import "slices"

// EducationEntry is one school a student attended.
type EducationEntry struct {
	School      string `json:"school"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Start       string `json:"start"`
	End         string `json:"end,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

// ExperienceEntry is one position a student held.
type ExperienceEntry struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Start       string `json:"start"`
	End         string `json:"end,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

// Preferences holds what a student is looking for.
type Preferences struct {
	Location       string `json:"location,omitempty"`
	EmploymentType string `json:"employment_type,omitempty"`
}

// Profile is a student's profile. Any field may be empty.
type Profile struct {
	FullName    string            `json:"full_name"`
	Email       string            `json:"email"`
	Phone       string            `json:"phone,omitempty"`
	School      string            `json:"school,omitempty"`
	Country     string            `json:"country,omitempty"`
	Skills      []string          `json:"skills"`
	Languages   []string          `json:"languages"`
	Education   []EducationEntry  `json:"education"`
	Experience  []ExperienceEntry `json:"experience"`
	Preferences Preferences       `json:"preferences"`
}

// Clone returns a deep copy.
func (p Profile) Clone() Profile {
	p.Skills = slices.Clone(p.Skills)
	p.Languages = slices.Clone(p.Languages)
	p.Education = slices.Clone(p.Education)
	p.Experience = slices.Clone(p.Experience)
	return p
}

// ProfilePatch is a partial profile update. Nil fields are left unchanged;
// non-nil slices replace the stored slice wholesale.
type ProfilePatch struct {
	FullName    *string           `json:"full_name,omitempty"`
	Email       *string           `json:"email,omitempty"`
	Phone       *string           `json:"phone,omitempty"`
	School      *string           `json:"school,omitempty"`
	Country     *string           `json:"country,omitempty"`
	Skills      []string          `json:"skills,omitempty"`
	Languages   []string          `json:"languages,omitempty"`
	Education   []EducationEntry  `json:"education,omitempty"`
	Experience  []ExperienceEntry `json:"experience,omitempty"`
	Preferences *Preferences      `json:"preferences,omitempty"`
}

// Apply returns p with the patch applied. p is not modified.
func (pp ProfilePatch) Apply(p Profile) Profile {
	out := p.Clone()
	if pp.FullName != nil {
		out.FullName = *pp.FullName
	}
	if pp.Email != nil {
		out.Email = *pp.Email
	}
	if pp.Phone != nil {
		out.Phone = *pp.Phone
	}
	if pp.School != nil {
		out.School = *pp.School
	}
	if pp.Country != nil {
		out.Country = *pp.Country
	}
	if pp.Skills != nil {
		out.Skills = slices.Clone(pp.Skills)
	}
	if pp.Languages != nil {
		out.Languages = slices.Clone(pp.Languages)
	}
	if pp.Education != nil {
		out.Education = slices.Clone(pp.Education)
	}
	if pp.Experience != nil {
		out.Experience = slices.Clone(pp.Experience)
	}
	if pp.Preferences != nil {
		out.Preferences = *pp.Preferences
	}
	return out
}
