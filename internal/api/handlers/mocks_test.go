package handlers

import (
	"context"

	"github.com/isdelr/devconnect-be/internal/auth"
	"github.com/isdelr/devconnect-be/internal/models"
	"github.com/isdelr/devconnect-be/internal/monitoring"
	"github.com/isdelr/devconnect-be/internal/services"
	"github.com/stretchr/testify/mock"
)

type mockUserService struct{ mock.Mock }

func (m *mockUserService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *mockUserService) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *mockUserService) CreateUser(ctx context.Context, name, email, password string) (models.User, error) {
	args := m.Called(ctx, name, email, password)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *mockUserService) DeleteUser(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserService) AuthenticateUser(ctx context.Context, email, password string) (models.User, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(models.User), args.Error(1)
}

type mockPostService struct{ mock.Mock }

func (m *mockPostService) CreatePost(ctx context.Context, post models.Post) (models.Post, error) {
	args := m.Called(ctx, post)
	return args.Get(0).(models.Post), args.Error(1)
}

func (m *mockPostService) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *mockPostService) GetPostByID(ctx context.Context, id string) (models.Post, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Post), args.Error(1)
}

func (m *mockPostService) DeletePost(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPostService) LikePost(ctx context.Context, postID, userID string) ([]models.Like, error) {
	args := m.Called(ctx, postID, userID)
	return args.Get(0).([]models.Like), args.Error(1)
}

func (m *mockPostService) UnlikePost(ctx context.Context, postID, userID string) ([]models.Like, error) {
	args := m.Called(ctx, postID, userID)
	return args.Get(0).([]models.Like), args.Error(1)
}

func (m *mockPostService) AddComment(ctx context.Context, postID string, comment models.Comment) ([]models.Comment, error) {
	args := m.Called(ctx, postID, comment)
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *mockPostService) RemoveComment(ctx context.Context, postID, commentID, userID string) ([]models.Comment, error) {
	args := m.Called(ctx, postID, commentID, userID)
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *mockPostService) CountOrphanedPosts(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type mockProfileService struct{ mock.Mock }

func (m *mockProfileService) GetProfileByUserID(ctx context.Context, userID string) (models.Profile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.Profile), args.Error(1)
}

func (m *mockProfileService) GetAllProfiles(ctx context.Context) ([]models.Profile, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Profile), args.Error(1)
}

func (m *mockProfileService) UpsertProfile(ctx context.Context, patch services.ProfilePatch) (models.Profile, error) {
	args := m.Called(ctx, patch)
	return args.Get(0).(models.Profile), args.Error(1)
}

func (m *mockProfileService) DeleteProfile(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockProfileService) AddExperience(ctx context.Context, userID string, exp models.Experience) (models.Profile, error) {
	args := m.Called(ctx, userID, exp)
	return args.Get(0).(models.Profile), args.Error(1)
}

func (m *mockProfileService) RemoveExperience(ctx context.Context, userID, expID string) (models.Profile, error) {
	args := m.Called(ctx, userID, expID)
	return args.Get(0).(models.Profile), args.Error(1)
}

func (m *mockProfileService) AddEducation(ctx context.Context, userID string, edu models.Education) (models.Profile, error) {
	args := m.Called(ctx, userID, edu)
	return args.Get(0).(models.Profile), args.Error(1)
}

func (m *mockProfileService) RemoveEducation(ctx context.Context, userID, eduID string) (models.Profile, error) {
	args := m.Called(ctx, userID, eduID)
	return args.Get(0).(models.Profile), args.Error(1)
}

func (m *mockProfileService) CountOrphanedProfiles(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type mockTokens struct{ mock.Mock }

func (m *mockTokens) Issue(identity auth.Identity) (string, error) {
	args := m.Called(identity)
	return args.String(0), args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) Publish(action string, payload interface{}) {
	m.Called(action, payload)
}

type staticHealth monitoring.HealthReport

func (s staticHealth) Check(context.Context) monitoring.HealthReport {
	return monitoring.HealthReport(s)
}
