package services

import (
	"context"
	"errors"
	"testing"

	"github.com/isdelr/devconnect-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_UpsertInsertsThenPatches(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewProfileService(db)
	user := mustCreateUser(t, db, "Ada", "ada@example.com")

	created, err := svc.UpsertProfile(ctx, BuildProfilePatch(user.ID, ProfileInput{
		Company: strPtr("Y"),
		Status:  strPtr("Developer"),
		Skills:  strPtr("js, node , go"),
		Twitter: strPtr("https://twitter.com/ada"),
	}))
	require.NoError(t, err)
	assert.Equal(t, user.ID, created.User.ID)
	assert.Equal(t, "Ada", created.User.Name)
	assert.Equal(t, "Y", created.Company)
	assert.Equal(t, []string{"js", "node", "go"}, created.Skills)
	assert.Equal(t, "https://twitter.com/ada", created.Social.Twitter)

	updated, err := svc.UpsertProfile(ctx, BuildProfilePatch(user.ID, ProfileInput{Status: strPtr("X")}))
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Y", updated.Company, "absent fields must keep their stored value")
	assert.Equal(t, "X", updated.Status)
	assert.Equal(t, []string{"js", "node", "go"}, updated.Skills)
	assert.Empty(t, updated.Social.Twitter)
}

func TestProfileService_UpsertIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewProfileService(db)
	user := mustCreateUser(t, db, "Ada", "ada@example.com")

	in := ProfileInput{Status: strPtr("Dev"), Skills: strPtr("go,sql"), Bio: strPtr("hi"), YouTube: strPtr("yt")}

	first, err := svc.UpsertProfile(ctx, BuildProfilePatch(user.ID, in))
	require.NoError(t, err)
	second, err := svc.UpsertProfile(ctx, BuildProfilePatch(user.ID, in))
	require.NoError(t, err)

	assert.Equal(t, first, second)

	all, err := svc.GetAllProfiles(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "at most one profile per user")
}

func TestProfileService_GetAndList(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewProfileService(db)

	all, err := svc.GetAllProfiles(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	_, err = svc.GetProfileByUserID(ctx, "nobody")
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)

	a := mustCreateUser(t, db, "Ada", "ada@example.com")
	b := mustCreateUser(t, db, "Bob", "bob@example.com")
	for _, u := range []models.User{a, b} {
		_, err := svc.UpsertProfile(ctx, BuildProfilePatch(u.ID, ProfileInput{Status: strPtr("Dev"), Skills: strPtr("go")}))
		require.NoError(t, err)
	}

	all, err = svc.GetAllProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.ElementsMatch(t, []string{"Ada", "Bob"}, []string{all[0].User.Name, all[1].User.Name})
}

func TestProfileService_ExperiencePrependAndRemove(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewProfileService(db)
	user := mustCreateUser(t, db, "Ada", "ada@example.com")

	_, err := svc.AddExperience(ctx, user.ID, models.Experience{Title: "Eng"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.UpsertProfile(ctx, BuildProfilePatch(user.ID, ProfileInput{Status: strPtr("Dev"), Skills: strPtr("go")}))
	require.NoError(t, err)

	p, err := svc.AddExperience(ctx, user.ID, models.Experience{Title: "Intern", Company: "Old Co", From: "2018-01-01"})
	require.NoError(t, err)
	e1 := p.Experience[0]

	p, err = svc.AddExperience(ctx, user.ID, models.Experience{Title: "Eng", Company: "Acme", From: "2020-01-01"})
	require.NoError(t, err)
	require.Len(t, p.Experience, 2)
	assert.Equal(t, "Acme", p.Experience[0].Company)
	assert.Equal(t, e1, p.Experience[1])
	assert.NotEqual(t, e1.ID, p.Experience[0].ID)

	p, err = svc.RemoveExperience(ctx, user.ID, "no-such-entry")
	require.NoError(t, err)
	assert.Len(t, p.Experience, 2)

	p, err = svc.RemoveExperience(ctx, user.ID, e1.ID)
	require.NoError(t, err)
	require.Len(t, p.Experience, 1)
	assert.Equal(t, "Acme", p.Experience[0].Company)

	stored, err := svc.GetProfileByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Experience, stored.Experience)
}

func TestProfileService_Education(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewProfileService(db)
	user := mustCreateUser(t, db, "Ada", "ada@example.com")

	_, err := svc.UpsertProfile(ctx, BuildProfilePatch(user.ID, ProfileInput{Status: strPtr("Dev"), Skills: strPtr("go")}))
	require.NoError(t, err)

	p, err := svc.AddEducation(ctx, user.ID, models.Education{School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: "2010-09-01"})
	require.NoError(t, err)
	require.Len(t, p.Education, 1)

	p, err = svc.RemoveEducation(ctx, user.ID, p.Education[0].ID)
	require.NoError(t, err)
	assert.Empty(t, p.Education)
}

func TestProfileService_DeleteAndOrphans(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewProfileService(db)
	users := NewUserService(db)
	user := mustCreateUser(t, db, "Ada", "ada@example.com")

	_, err := svc.UpsertProfile(ctx, BuildProfilePatch(user.ID, ProfileInput{Status: strPtr("Dev"), Skills: strPtr("go")}))
	require.NoError(t, err)

	n, err := svc.CountOrphanedProfiles(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, users.DeleteUser(ctx, user.ID))
	n, err = svc.CountOrphanedProfiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, svc.DeleteProfile(ctx, user.ID))
	_, err = svc.GetProfileByUserID(ctx, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
