package services

import (
	"strings"

	"github.com/isdelr/devconnect-be/internal/models"
)

// ProfileInput is a partial profile document as submitted by a client. A nil
// field means the client did not send it. It has no owner field; the owner
// always comes from the authenticated caller.
type ProfileInput struct {
	Company        *string `json:"company"`
	Website        *string `json:"website"`
	Location       *string `json:"location"`
	Bio            *string `json:"bio"`
	Status         *string `json:"status" validate:"required,min=1" msg:"Status is required"`
	GithubUsername *string `json:"githubusername"`
	Skills         *string `json:"skills" validate:"required,min=1" msg:"Skills is required"`
	YouTube        *string `json:"youtube"`
	Twitter        *string `json:"twitter"`
	Facebook       *string `json:"facebook"`
	LinkedIn       *string `json:"linkedin"`
	Instagram      *string `json:"instagram"`
}

// Profile columns that can be patched with a plain string value.
const (
	ColCompany        = "company"
	ColWebsite        = "website"
	ColLocation       = "location"
	ColBio            = "bio"
	ColStatus         = "status"
	ColGithubUsername = "github_username"
)

// FieldUpdate sets one scalar profile column.
type FieldUpdate struct {
	Column string
	Value  string
}

// ProfilePatch is the update computed from a ProfileInput. Only Scalars that
// were present in the input are listed; Skills is applied only when HasSkills
// is set; Social is always written.
type ProfilePatch struct {
	UserID    string
	Scalars   []FieldUpdate
	HasSkills bool
	Skills    []string
	Social    models.Social
}

// BuildProfilePatch computes the sparse patch for userID from in.
func BuildProfilePatch(userID string, in ProfileInput) ProfilePatch {
	patch := ProfilePatch{UserID: userID}

	for _, f := range []struct {
		column string
		value  *string
	}{
		{ColCompany, in.Company},
		{ColWebsite, in.Website},
		{ColLocation, in.Location},
		{ColBio, in.Bio},
		{ColStatus, in.Status},
		{ColGithubUsername, in.GithubUsername},
	} {
		if f.value != nil {
			patch.Scalars = append(patch.Scalars, FieldUpdate{Column: f.column, Value: *f.value})
		}
	}

	if in.Skills != nil {
		patch.HasSkills = true
		patch.Skills = SplitSkills(*in.Skills)
	}

	copyIfSet(&patch.Social.YouTube, in.YouTube)
	copyIfSet(&patch.Social.Twitter, in.Twitter)
	copyIfSet(&patch.Social.Facebook, in.Facebook)
	copyIfSet(&patch.Social.LinkedIn, in.LinkedIn)
	copyIfSet(&patch.Social.Instagram, in.Instagram)

	return patch
}

// SplitSkills turns "js, node , go" into ["js" "node" "go"]. Blank entries
// are dropped; the result is never nil.
func SplitSkills(s string) []string {
	skills := []string{}
	for _, skill := range strings.Split(s, ",") {
		if skill = strings.TrimSpace(skill); skill != "" {
			skills = append(skills, skill)
		}
	}
	return skills
}

// Apply writes the patch onto p.
func (patch ProfilePatch) Apply(p *models.Profile) {
	p.User.ID = patch.UserID
	for _, f := range patch.Scalars {
		switch f.Column {
		case ColCompany:
			p.Company = f.Value
		case ColWebsite:
			p.Website = f.Value
		case ColLocation:
			p.Location = f.Value
		case ColBio:
			p.Bio = f.Value
		case ColStatus:
			p.Status = f.Value
		case ColGithubUsername:
			p.GithubUsername = f.Value
		}
	}
	if patch.HasSkills {
		p.Skills = patch.Skills
	}
	p.Social = patch.Social
}

func copyIfSet(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
