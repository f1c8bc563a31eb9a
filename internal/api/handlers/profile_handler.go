package handlers

import (
	"errors"
	"net/http"

	"github.com/isdelr/devconnect-be/internal/models"
	"github.com/isdelr/devconnect-be/internal/services"
)

const msgNoProfile = "there is no profile for this user"

// ProfileHandler handles profile documents and their experience and education lists.
type ProfileHandler struct {
	profiles services.ProfileServiceProvider
	users    services.UserServiceProvider
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profiles services.ProfileServiceProvider, users services.UserServiceProvider) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, users: users}
}

// ExperiencePayload is the body of PUT /profile/experience.
type ExperiencePayload struct {
	Title       string `json:"title" validate:"required" msg:"Title is required"`
	Company     string `json:"company" validate:"required" msg:"Company is required"`
	Location    string `json:"location"`
	From        string `json:"from" validate:"required" msg:"From date is required"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// EducationPayload is the body of PUT /profile/education.
type EducationPayload struct {
	School       string `json:"school" validate:"required" msg:"School is required"`
	Degree       string `json:"degree" validate:"required" msg:"Degree is required"`
	FieldOfStudy string `json:"fieldofstudy" validate:"required" msg:"Field of study is required"`
	From         string `json:"from" validate:"required" msg:"From date is required"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// Me returns the caller's profile.
func (h *ProfileHandler) Me(req *Request) Result {
	profile, err := h.profiles.GetProfileByUserID(req.Context(), req.UserID())
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return Msg(http.StatusBadRequest, msgNoProfile)
		}
		return ServerError(err, "Failed to retrieve profile")
	}
	return OK(profile)
}

// Upsert creates the caller's profile or patches the fields present in the body.
func (h *ProfileHandler) Upsert(req *Request) Result {
	var in services.ProfileInput
	if res, ok := bind(req, &in); !ok {
		return res
	}

	profile, err := h.profiles.UpsertProfile(req.Context(), services.BuildProfilePatch(req.UserID(), in))
	if err != nil {
		return ServerError(err, "Failed to save profile")
	}
	return OK(profile)
}

// GetAll lists every profile.
func (h *ProfileHandler) GetAll(req *Request) Result {
	profiles, err := h.profiles.GetAllProfiles(req.Context())
	if err != nil {
		return ServerError(err, "Failed to retrieve profiles")
	}
	return OK(profiles)
}

// GetByUser returns the profile owned by the user_id route parameter.
func (h *ProfileHandler) GetByUser(req *Request) Result {
	profile, err := h.profiles.GetProfileByUserID(req.Context(), req.Param("user_id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return Msg(http.StatusBadRequest, "Profile not found")
		}
		return ServerError(err, "Failed to retrieve profile")
	}
	return OK(profile)
}

// Delete removes the caller's profile and then the caller's account.
// Posts written by the caller are kept.
func (h *ProfileHandler) Delete(req *Request) Result {
	if err := h.profiles.DeleteProfile(req.Context(), req.UserID()); err != nil {
		return ServerError(err, "Failed to delete profile")
	}
	if err := h.users.DeleteUser(req.Context(), req.UserID()); err != nil {
		return ServerError(err, "Failed to delete user")
	}
	return Msg(http.StatusOK, "User deleted")
}

// AddExperience prepends an experience entry to the caller's profile.
func (h *ProfileHandler) AddExperience(req *Request) Result {
	var payload ExperiencePayload
	if res, ok := bind(req, &payload); !ok {
		return res
	}

	return h.profileResult(h.profiles.AddExperience(req.Context(), req.UserID(), models.Experience{
		Title:       payload.Title,
		Company:     payload.Company,
		Location:    payload.Location,
		From:        payload.From,
		To:          payload.To,
		Current:     payload.Current,
		Description: payload.Description,
	}))
}

// RemoveExperience drops the exp_id entry from the caller's profile.
func (h *ProfileHandler) RemoveExperience(req *Request) Result {
	return h.profileResult(h.profiles.RemoveExperience(req.Context(), req.UserID(), req.Param("exp_id")))
}

// AddEducation prepends an education entry to the caller's profile.
func (h *ProfileHandler) AddEducation(req *Request) Result {
	var payload EducationPayload
	if res, ok := bind(req, &payload); !ok {
		return res
	}

	return h.profileResult(h.profiles.AddEducation(req.Context(), req.UserID(), models.Education{
		School:       payload.School,
		Degree:       payload.Degree,
		FieldOfStudy: payload.FieldOfStudy,
		From:         payload.From,
		To:           payload.To,
		Current:      payload.Current,
		Description:  payload.Description,
	}))
}

// RemoveEducation drops the edu_id entry from the caller's profile.
func (h *ProfileHandler) RemoveEducation(req *Request) Result {
	return h.profileResult(h.profiles.RemoveEducation(req.Context(), req.UserID(), req.Param("edu_id")))
}

func (h *ProfileHandler) profileResult(profile models.Profile, err error) Result {
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return Msg(http.StatusBadRequest, msgNoProfile)
		}
		return ServerError(err, "Failed to update profile")
	}
	return OK(profile)
}
