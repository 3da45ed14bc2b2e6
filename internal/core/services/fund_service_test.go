package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/knitworks/garment_mgmt_app/internal/apperrors"
	"github.com/knitworks/garment_mgmt_app/internal/core/domain"
	portssvc "github.com/knitworks/garment_mgmt_app/internal/core/ports/services"
	"github.com/knitworks/garment_mgmt_app/internal/core/services"
	"github.com/knitworks/garment_mgmt_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockFundRepository is a mock type for the FundRepositoryWithTx interface
type MockFundRepository struct {
	mock.Mock
}

func (m *MockFundRepository) FindFundByID(ctx context.Context, fundID string) (*domain.Fund, error) {
	args := m.Called(ctx, fundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Fund), args.Error(1)
}

func (m *MockFundRepository) ListFundsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Fund, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var tok *string
	if args.Get(1) != nil {
		tok = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Fund), tok, args.Error(2)
}

func (m *MockFundRepository) FindUsagesByFundID(ctx context.Context, fundID string) ([]domain.FundUsage, error) {
	args := m.Called(ctx, fundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FundUsage), args.Error(1)
}

func (m *MockFundRepository) SaveFund(ctx context.Context, fund domain.Fund) error {
	args := m.Called(ctx, fund)
	return args.Error(0)
}

func (m *MockFundRepository) ApplyUsage(ctx context.Context, usage domain.FundUsage) (decimal.Decimal, error) {
	args := m.Called(ctx, usage)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockFundRepository) ApplyUsageInTx(ctx context.Context, tx pgx.Tx, usage domain.FundUsage) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, usage)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockFundRepository) FindReturnByID(ctx context.Context, returnID string) (*domain.FundReturn, error) {
	args := m.Called(ctx, returnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FundReturn), args.Error(1)
}

func (m *MockFundRepository) SumReturnsBySale(ctx context.Context, saleID string) (decimal.Decimal, error) {
	args := m.Called(ctx, saleID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockFundRepository) ListReturnsByStatus(ctx context.Context, status domain.ReturnStatus, limit int, nextToken *string) ([]domain.FundReturn, *string, error) {
	args := m.Called(ctx, status, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var tok *string
	if args.Get(1) != nil {
		tok = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.FundReturn), tok, args.Error(2)
}

func (m *MockFundRepository) SaveFundReturn(ctx context.Context, ret domain.FundReturn, netAmount decimal.Decimal) error {
	args := m.Called(ctx, ret, netAmount)
	return args.Error(0)
}

func (m *MockFundRepository) ProcessReturn(ctx context.Context, returnID string, approve bool, approver string, notes string, newFund *domain.Fund, now time.Time) (*domain.FundReturn, error) {
	args := m.Called(ctx, returnID, approve, approver, notes, newFund, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FundReturn), args.Error(1)
}

func (m *MockFundRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockFundRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockFundRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockSaleRepository is a mock type for the SaleRepository interface
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

// MockUserReader is a mock type for the repository UserReader interface
type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserReader) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserReader) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// --- Test Suite Setup ---

type FundServiceTestSuite struct {
	suite.Suite
	mockFundRepo *MockFundRepository
	mockSaleRepo *MockSaleRepository
	mockUserRepo *MockUserReader
	service      portssvc.FundSvcFacade
	owner        domain.Actor
	incharge     domain.Actor
	shopkeeper   domain.Actor
}

func (suite *FundServiceTestSuite) SetupTest() {
	suite.mockFundRepo = new(MockFundRepository)
	suite.mockSaleRepo = new(MockSaleRepository)
	suite.mockUserRepo = new(MockUserReader)
	suite.service = services.NewFundService(suite.mockFundRepo, suite.mockSaleRepo, suite.mockUserRepo)
	suite.owner = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleOwner}
	suite.incharge = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleIncharge}
	suite.shopkeeper = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleShopkeeper}
}

// --- TransferFunds ---

func (suite *FundServiceTestSuite) TestTransferFunds_Success() {
	ctx := context.Background()
	req := dto.TransferFundsRequest{
		ToUserID:    suite.incharge.UserID,
		Amount:      decimal.NewFromInt(5000),
		Description: "Weekly purchasing budget",
	}

	recipient := &domain.User{UserID: suite.incharge.UserID, Name: "Incharge", Role: domain.RoleIncharge, IsActive: true}
	suite.mockUserRepo.On("FindUserByID", ctx, req.ToUserID).Return(recipient, nil).Once()
	suite.mockFundRepo.On("SaveFund", ctx, mock.AnythingOfType("domain.Fund")).Return(nil).Once()

	fund, err := suite.service.TransferFunds(ctx, suite.owner, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(fund)
	suite.NotEmpty(fund.FundID)
	suite.True(fund.Amount.Equal(req.Amount))
	suite.True(fund.Balance.Equal(req.Amount))
	suite.Equal(suite.owner.UserID, fund.FromUserID)
	suite.Equal(req.ToUserID, fund.ToUserID)
	suite.Equal(domain.FundInvestment, fund.FundType)
	suite.Equal(domain.FundActive, fund.Status)
	suite.WithinDuration(time.Now().UTC(), fund.TransferredAt, time.Second)

	suite.mockFundRepo.AssertExpectations(suite.T())
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *FundServiceTestSuite) TestTransferFunds_NotOwner() {
	ctx := context.Background()
	req := dto.TransferFundsRequest{ToUserID: uuid.NewString(), Amount: decimal.NewFromInt(100)}

	_, err := suite.service.TransferFunds(ctx, suite.incharge, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockFundRepo.AssertNotCalled(suite.T(), "SaveFund", mock.Anything, mock.Anything)
}

func (suite *FundServiceTestSuite) TestTransferFunds_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.TransferFundsRequest{ToUserID: uuid.NewString(), Amount: decimal.Zero}

	_, err := suite.service.TransferFunds(ctx, suite.owner, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *FundServiceTestSuite) TestTransferFunds_RecipientNotIncharge() {
	ctx := context.Background()
	req := dto.TransferFundsRequest{ToUserID: suite.shopkeeper.UserID, Amount: decimal.NewFromInt(100)}

	// An active shopkeeper is still not a valid recipient; investment funds
	// go to incharges only.
	recipient := &domain.User{UserID: suite.shopkeeper.UserID, Role: domain.RoleShopkeeper, IsActive: true}
	suite.mockUserRepo.On("FindUserByID", ctx, req.ToUserID).Return(recipient, nil).Once()

	_, err := suite.service.TransferFunds(ctx, suite.owner, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockFundRepo.AssertNotCalled(suite.T(), "SaveFund", mock.Anything, mock.Anything)
}

func (suite *FundServiceTestSuite) TestTransferFunds_InactiveRecipient() {
	ctx := context.Background()
	recipientID := uuid.NewString()
	req := dto.TransferFundsRequest{ToUserID: recipientID, Amount: decimal.NewFromInt(100)}

	recipient := &domain.User{UserID: recipientID, Role: domain.RoleIncharge, IsActive: false}
	suite.mockUserRepo.On("FindUserByID", ctx, recipientID).Return(recipient, nil).Once()

	_, err := suite.service.TransferFunds(ctx, suite.owner, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockFundRepo.AssertNotCalled(suite.T(), "SaveFund", mock.Anything, mock.Anything)
}

// --- GetFundByID ---

func (suite *FundServiceTestSuite) TestGetFundByID_ForbiddenForStranger() {
	ctx := context.Background()
	fundID := uuid.NewString()
	fund := &domain.Fund{FundID: fundID, FromUserID: uuid.NewString(), ToUserID: uuid.NewString()}
	suite.mockFundRepo.On("FindFundByID", ctx, fundID).Return(fund, nil).Once()

	_, err := suite.service.GetFundByID(ctx, suite.shopkeeper, fundID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *FundServiceTestSuite) TestGetFundByID_HolderCanView() {
	ctx := context.Background()
	fundID := uuid.NewString()
	fund := &domain.Fund{FundID: fundID, FromUserID: uuid.NewString(), ToUserID: suite.incharge.UserID}
	suite.mockFundRepo.On("FindFundByID", ctx, fundID).Return(fund, nil).Once()

	got, err := suite.service.GetFundByID(ctx, suite.incharge, fundID)

	suite.Require().NoError(err)
	suite.Equal(fundID, got.FundID)
}

// --- RecordFundUsage ---

func (suite *FundServiceTestSuite) TestRecordFundUsage_Success() {
	ctx := context.Background()
	fundID := uuid.NewString()
	fund := &domain.Fund{
		FundID:   fundID,
		Amount:   decimal.NewFromInt(1000),
		Balance:  decimal.NewFromInt(1000),
		ToUserID: suite.incharge.UserID,
		Status:   domain.FundActive,
	}
	req := dto.RecordFundUsageRequest{Amount: decimal.NewFromInt(300), UsageType: domain.UsageOther}

	suite.mockFundRepo.On("FindFundByID", ctx, fundID).Return(fund, nil).Once()
	suite.mockFundRepo.On("ApplyUsage", ctx, mock.AnythingOfType("domain.FundUsage")).
		Return(decimal.NewFromInt(700), nil).Once()

	resp, err := suite.service.RecordFundUsage(ctx, suite.incharge, fundID, req)

	suite.Require().NoError(err)
	suite.True(resp.NewBalance.Equal(decimal.NewFromInt(700)))
	suite.Equal(domain.FundActive, resp.Status)
	suite.mockFundRepo.AssertExpectations(suite.T())
}

func (suite *FundServiceTestSuite) TestRecordFundUsage_DepletesFund() {
	ctx := context.Background()
	fundID := uuid.NewString()
	fund := &domain.Fund{
		FundID:   fundID,
		Amount:   decimal.NewFromInt(300),
		Balance:  decimal.NewFromInt(300),
		ToUserID: suite.incharge.UserID,
		Status:   domain.FundActive,
	}
	req := dto.RecordFundUsageRequest{Amount: decimal.NewFromInt(300), UsageType: domain.UsageOther}

	suite.mockFundRepo.On("FindFundByID", ctx, fundID).Return(fund, nil).Once()
	suite.mockFundRepo.On("ApplyUsage", ctx, mock.AnythingOfType("domain.FundUsage")).
		Return(decimal.Zero, nil).Once()

	resp, err := suite.service.RecordFundUsage(ctx, suite.incharge, fundID, req)

	suite.Require().NoError(err)
	suite.True(resp.NewBalance.IsZero())
	suite.Equal(domain.FundDepleted, resp.Status)
}

func (suite *FundServiceTestSuite) TestRecordFundUsage_NotHolder() {
	ctx := context.Background()
	fundID := uuid.NewString()
	fund := &domain.Fund{
		FundID:   fundID,
		Balance:  decimal.NewFromInt(1000),
		ToUserID: uuid.NewString(),
		Status:   domain.FundActive,
	}
	req := dto.RecordFundUsageRequest{Amount: decimal.NewFromInt(10), UsageType: domain.UsageOther}

	suite.mockFundRepo.On("FindFundByID", ctx, fundID).Return(fund, nil).Once()

	// Even the owner cannot debit someone else's fund.
	_, err := suite.service.RecordFundUsage(ctx, suite.owner, fundID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockFundRepo.AssertNotCalled(suite.T(), "ApplyUsage", mock.Anything, mock.Anything)
}

func (suite *FundServiceTestSuite) TestRecordFundUsage_InsufficientBalance() {
	ctx := context.Background()
	fundID := uuid.NewString()
	fund := &domain.Fund{
		FundID:   fundID,
		Amount:   decimal.NewFromInt(100),
		Balance:  decimal.NewFromInt(50),
		ToUserID: suite.incharge.UserID,
		Status:   domain.FundActive,
	}
	req := dto.RecordFundUsageRequest{Amount: decimal.NewFromInt(80), UsageType: domain.UsageOther}

	suite.mockFundRepo.On("FindFundByID", ctx, fundID).Return(fund, nil).Once()

	_, err := suite.service.RecordFundUsage(ctx, suite.incharge, fundID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.mockFundRepo.AssertNotCalled(suite.T(), "ApplyUsage", mock.Anything, mock.Anything)
}

func (suite *FundServiceTestSuite) TestRecordFundUsage_DepletedFund() {
	ctx := context.Background()
	fundID := uuid.NewString()
	fund := &domain.Fund{
		FundID:   fundID,
		Amount:   decimal.NewFromInt(100),
		Balance:  decimal.Zero,
		ToUserID: suite.incharge.UserID,
		Status:   domain.FundDepleted,
	}
	req := dto.RecordFundUsageRequest{Amount: decimal.NewFromInt(1), UsageType: domain.UsageOther}

	suite.mockFundRepo.On("FindFundByID", ctx, fundID).Return(fund, nil).Once()

	_, err := suite.service.RecordFundUsage(ctx, suite.incharge, fundID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
}

// --- RequestFundReturn ---

func (suite *FundServiceTestSuite) TestRequestFundReturn_Success() {
	ctx := context.Background()
	saleID := uuid.NewString()
	sale := &domain.Sale{SaleID: saleID, ShopkeeperID: suite.shopkeeper.UserID, NetAmount: decimal.NewFromInt(1000)}
	req := dto.RequestFundReturnRequest{SaleID: saleID, Amount: decimal.NewFromInt(400)}

	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(sale, nil).Once()
	suite.mockFundRepo.On("SumReturnsBySale", ctx, saleID).Return(decimal.NewFromInt(500), nil).Once()
	suite.mockFundRepo.On("SaveFundReturn", ctx, mock.AnythingOfType("domain.FundReturn"), sale.NetAmount).Return(nil).Once()

	ret, err := suite.service.RequestFundReturn(ctx, suite.shopkeeper, req)

	suite.Require().NoError(err)
	suite.Equal(domain.ReturnPending, ret.Status)
	suite.Equal(suite.shopkeeper.UserID, ret.ReturnedBy)
	suite.mockFundRepo.AssertExpectations(suite.T())
}

func (suite *FundServiceTestSuite) TestRequestFundReturn_ExceedsSaleCap() {
	ctx := context.Background()
	saleID := uuid.NewString()
	sale := &domain.Sale{SaleID: saleID, ShopkeeperID: suite.shopkeeper.UserID, NetAmount: decimal.NewFromInt(1000)}
	req := dto.RequestFundReturnRequest{SaleID: saleID, Amount: decimal.NewFromInt(600)}

	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(sale, nil).Once()
	suite.mockFundRepo.On("SumReturnsBySale", ctx, saleID).Return(decimal.NewFromInt(500), nil).Once()

	_, err := suite.service.RequestFundReturn(ctx, suite.shopkeeper, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockFundRepo.AssertNotCalled(suite.T(), "SaveFundReturn", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FundServiceTestSuite) TestRequestFundReturn_CapReCheckedOnInsert() {
	ctx := context.Background()
	saleID := uuid.NewString()
	sale := &domain.Sale{SaleID: saleID, ShopkeeperID: suite.shopkeeper.UserID, NetAmount: decimal.NewFromInt(1000)}
	req := dto.RequestFundReturnRequest{SaleID: saleID, Amount: decimal.NewFromInt(600)}

	// The pre-check sees stale headroom; the repository, summing under the
	// sale row lock, rejects the insert.
	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(sale, nil).Once()
	suite.mockFundRepo.On("SumReturnsBySale", ctx, saleID).Return(decimal.Zero, nil).Once()
	suite.mockFundRepo.On("SaveFundReturn", ctx, mock.AnythingOfType("domain.FundReturn"), sale.NetAmount).
		Return(apperrors.ErrValidation).Once()

	_, err := suite.service.RequestFundReturn(ctx, suite.shopkeeper, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockFundRepo.AssertExpectations(suite.T())
}

func (suite *FundServiceTestSuite) TestRequestFundReturn_ExactCapAllowed() {
	ctx := context.Background()
	saleID := uuid.NewString()
	sale := &domain.Sale{SaleID: saleID, ShopkeeperID: suite.shopkeeper.UserID, NetAmount: decimal.NewFromInt(1000)}
	req := dto.RequestFundReturnRequest{SaleID: saleID, Amount: decimal.NewFromInt(500)}

	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(sale, nil).Once()
	suite.mockFundRepo.On("SumReturnsBySale", ctx, saleID).Return(decimal.NewFromInt(500), nil).Once()
	suite.mockFundRepo.On("SaveFundReturn", ctx, mock.AnythingOfType("domain.FundReturn"), sale.NetAmount).Return(nil).Once()

	_, err := suite.service.RequestFundReturn(ctx, suite.shopkeeper, req)

	suite.Require().NoError(err)
}

func (suite *FundServiceTestSuite) TestRequestFundReturn_OtherShopkeepersSale() {
	ctx := context.Background()
	saleID := uuid.NewString()
	sale := &domain.Sale{SaleID: saleID, ShopkeeperID: uuid.NewString(), NetAmount: decimal.NewFromInt(1000)}
	req := dto.RequestFundReturnRequest{SaleID: saleID, Amount: decimal.NewFromInt(100)}

	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(sale, nil).Once()

	_, err := suite.service.RequestFundReturn(ctx, suite.shopkeeper, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- ProcessFundReturn ---

func (suite *FundServiceTestSuite) TestProcessFundReturn_Approve() {
	ctx := context.Background()
	returnID := uuid.NewString()
	saleID := uuid.NewString()
	pending := &domain.FundReturn{
		ReturnID:   returnID,
		SaleID:     saleID,
		Amount:     decimal.NewFromInt(250),
		ReturnedBy: suite.shopkeeper.UserID,
		Status:     domain.ReturnPending,
	}
	processed := &domain.FundReturn{
		ReturnID:   returnID,
		SaleID:     saleID,
		Amount:     pending.Amount,
		ReturnedBy: pending.ReturnedBy,
		Status:     domain.ReturnApproved,
	}
	req := dto.ProcessFundReturnRequest{Action: "approve"}

	suite.mockFundRepo.On("FindReturnByID", ctx, returnID).Return(pending, nil).Once()
	suite.mockFundRepo.On("ProcessReturn", ctx, returnID, true, suite.owner.UserID, "",
		mock.AnythingOfType("*domain.Fund"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			// Approval must carry a traceable RETURN fund held by the owner.
			newFund := args.Get(5).(*domain.Fund)
			suite.Require().NotNil(newFund)
			suite.Equal(domain.FundReturned, newFund.FundType)
			suite.Equal(suite.owner.UserID, newFund.ToUserID)
			suite.Require().NotNil(newFund.ReferenceSaleID)
			suite.Equal(saleID, *newFund.ReferenceSaleID)
			suite.True(newFund.Balance.Equal(pending.Amount))
		}).
		Return(processed, nil).Once()

	got, err := suite.service.ProcessFundReturn(ctx, suite.owner, returnID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.ReturnApproved, got.Status)
	suite.mockFundRepo.AssertExpectations(suite.T())
}

func (suite *FundServiceTestSuite) TestProcessFundReturn_Reject() {
	ctx := context.Background()
	returnID := uuid.NewString()
	pending := &domain.FundReturn{
		ReturnID: returnID,
		SaleID:   uuid.NewString(),
		Amount:   decimal.NewFromInt(250),
		Status:   domain.ReturnPending,
	}
	processed := &domain.FundReturn{ReturnID: returnID, Amount: pending.Amount, Status: domain.ReturnRejected}
	req := dto.ProcessFundReturnRequest{Action: "reject", Notes: "no receipt"}

	suite.mockFundRepo.On("FindReturnByID", ctx, returnID).Return(pending, nil).Once()
	suite.mockFundRepo.On("ProcessReturn", ctx, returnID, false, suite.owner.UserID, "no receipt",
		(*domain.Fund)(nil), mock.AnythingOfType("time.Time")).
		Return(processed, nil).Once()

	got, err := suite.service.ProcessFundReturn(ctx, suite.owner, returnID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.ReturnRejected, got.Status)
}

func (suite *FundServiceTestSuite) TestProcessFundReturn_NotOwner() {
	ctx := context.Background()
	req := dto.ProcessFundReturnRequest{Action: "approve"}

	_, err := suite.service.ProcessFundReturn(ctx, suite.shopkeeper, uuid.NewString(), req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *FundServiceTestSuite) TestProcessFundReturn_AlreadyProcessed() {
	ctx := context.Background()
	returnID := uuid.NewString()
	pending := &domain.FundReturn{ReturnID: returnID, SaleID: uuid.NewString(), Amount: decimal.NewFromInt(10), Status: domain.ReturnApproved}
	req := dto.ProcessFundReturnRequest{Action: "reject"}

	suite.mockFundRepo.On("FindReturnByID", ctx, returnID).Return(pending, nil).Once()
	suite.mockFundRepo.On("ProcessReturn", ctx, returnID, false, suite.owner.UserID, "",
		(*domain.Fund)(nil), mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ProcessFundReturn(ctx, suite.owner, returnID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- ListPendingReturns ---

func (suite *FundServiceTestSuite) TestListPendingReturns_OwnerOnly() {
	ctx := context.Background()

	_, err := suite.service.ListPendingReturns(ctx, suite.incharge, dto.ListReturnsParams{Limit: 10})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestFundServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FundServiceTestSuite))
}
