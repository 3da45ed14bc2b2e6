package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/knitworks/garment_mgmt_app/internal/apperrors"
	"github.com/knitworks/garment_mgmt_app/internal/core/domain"
	portssvc "github.com/knitworks/garment_mgmt_app/internal/core/ports/services"
	"github.com/knitworks/garment_mgmt_app/internal/core/services"
	"github.com/knitworks/garment_mgmt_app/internal/dto"
	"github.com/knitworks/garment_mgmt_app/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	MockUserReader
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Test Suite Setup ---

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
	owner    domain.Actor
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
	suite.owner = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleOwner}
}

// --- CreateUser ---

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Name:     "Test Shopkeeper",
		Username: "shop1",
		Password: "correct-horse-battery",
		Role:     domain.RoleShopkeeper,
	}

	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, suite.owner, req)

	suite.Require().NoError(err)
	suite.NotEmpty(user.UserID)
	suite.Equal(req.Username, user.Username)
	suite.Equal(domain.RoleShopkeeper, user.Role)
	suite.True(user.IsActive)
	suite.NotEqual(req.Password, user.PasswordHash)
	suite.True(utils.CheckPasswordHash(req.Password, user.PasswordHash))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_NotOwner() {
	ctx := context.Background()
	incharge := domain.Actor{UserID: uuid.NewString(), Role: domain.RoleIncharge}
	req := dto.CreateUserRequest{Name: "X", Username: "x", Password: "password123", Role: domain.RoleShopkeeper}

	_, err := suite.service.CreateUser(ctx, incharge, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_UnknownRole() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Name: "X", Username: "x", Password: "password123", Role: domain.UserRole("ADMIN")}

	_, err := suite.service.CreateUser(ctx, suite.owner, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateUsername() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Name: "X", Username: "taken", Password: "password123", Role: domain.RoleIncharge}

	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateUser(ctx, suite.owner, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

// --- AuthenticateUser ---

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("secretpass")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Username: "shop1", PasswordHash: hash, IsActive: true}

	suite.mockRepo.On("FindUserByUsername", ctx, "shop1").Return(user, nil).Once()

	got, err := suite.service.AuthenticateUser(ctx, "shop1", "secretpass")

	suite.Require().NoError(err)
	suite.Equal(user.UserID, got.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("secretpass")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Username: "shop1", PasswordHash: hash, IsActive: true}

	suite.mockRepo.On("FindUserByUsername", ctx, "shop1").Return(user, nil).Once()

	_, err = suite.service.AuthenticateUser(ctx, "shop1", "wrong")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownUser() {
	ctx := context.Background()

	suite.mockRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AuthenticateUser(ctx, "ghost", "whatever")

	suite.Require().Error(err)
	// Unknown user and bad password are indistinguishable to the caller.
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_InactiveUser() {
	ctx := context.Background()
	hash, err := utils.HashPassword("secretpass")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Username: "gone", PasswordHash: hash, IsActive: false}

	suite.mockRepo.On("FindUserByUsername", ctx, "gone").Return(user, nil).Once()

	_, err = suite.service.AuthenticateUser(ctx, "gone", "secretpass")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

// --- ListUsers ---

func (suite *UserServiceTestSuite) TestListUsers_OwnerOnly() {
	ctx := context.Background()
	incharge := domain.Actor{UserID: uuid.NewString(), Role: domain.RoleIncharge}

	_, err := suite.service.ListUsers(ctx, incharge, 50, 0)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
