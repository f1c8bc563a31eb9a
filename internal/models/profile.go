package models

import (
	"encoding/json"
	"time"
)

// Profile is the developer profile owned by exactly one user.
type Profile struct {
	ID             string    `json:"id"`
	User           UserRef   `json:"user"`
	Company        string    `json:"company,omitempty"`
	Website        string    `json:"website,omitempty"`
	Location       string    `json:"location,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	Status         string    `json:"status"`
	GithubUsername string    `json:"githubusername,omitempty"`
	CreatedAt      time.Time `json:"date"`

	// JSON string fields for DB storage
	SkillsJSON     string `json:"-"`
	SocialJSON     string `json:"-"`
	ExperienceJSON string `json:"-"`
	EducationJSON  string `json:"-"`

	// Slice/struct fields for API interaction
	Skills     []string     `json:"skills"`
	Social     Social       `json:"social"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
}

// Social holds the optional links to a user's social accounts.
type Social struct {
	YouTube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Experience is a single job entry on a profile.
type Experience struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	From        string `json:"from"`
	To          string `json:"to,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

// Education is a single school entry on a profile.
type Education struct {
	ID           string `json:"id"`
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to,omitempty"`
	Current      bool   `json:"current"`
	Description  string `json:"description,omitempty"`
}

// PrepareForSave marshals the nested fields into their JSON columns.
func (p *Profile) PrepareForSave() {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Experience == nil {
		p.Experience = []Experience{}
	}
	if p.Education == nil {
		p.Education = []Education{}
	}

	skillsBytes, _ := json.Marshal(p.Skills)
	p.SkillsJSON = string(skillsBytes)

	socialBytes, _ := json.Marshal(p.Social)
	p.SocialJSON = string(socialBytes)

	experienceBytes, _ := json.Marshal(p.Experience)
	p.ExperienceJSON = string(experienceBytes)

	educationBytes, _ := json.Marshal(p.Education)
	p.EducationJSON = string(educationBytes)
}

// PrepareForAPI unmarshals the JSON columns into the nested fields.
func (p *Profile) PrepareForAPI() error {
	if p.SkillsJSON != "" {
		if err := json.Unmarshal([]byte(p.SkillsJSON), &p.Skills); err != nil {
			return err
		}
	}
	if p.SocialJSON != "" {
		if err := json.Unmarshal([]byte(p.SocialJSON), &p.Social); err != nil {
			return err
		}
	}
	if p.ExperienceJSON != "" {
		if err := json.Unmarshal([]byte(p.ExperienceJSON), &p.Experience); err != nil {
			return err
		}
	}
	if p.EducationJSON != "" {
		if err := json.Unmarshal([]byte(p.EducationJSON), &p.Education); err != nil {
			return err
		}
	}

	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Experience == nil {
		p.Experience = []Experience{}
	}
	if p.Education == nil {
		p.Education = []Education{}
	}
	return nil
}
