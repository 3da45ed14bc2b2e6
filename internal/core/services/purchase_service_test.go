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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockPurchaseRepository is a mock type for the PurchaseRepository interface
type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) SavePurchase(ctx context.Context, purchase domain.Purchase, usage domain.FundUsage) error {
	args := m.Called(ctx, purchase, usage)
	return args.Error(0)
}

func (m *MockPurchaseRepository) FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchase), args.Error(1)
}

// MockSupplierRepository is a mock type for the SupplierRepository interface
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

// --- Test Suite Setup ---

type PurchaseServiceTestSuite struct {
	suite.Suite
	mockPurchaseRepo *MockPurchaseRepository
	mockFundRepo     *MockFundRepository
	mockSupplierRepo *MockSupplierRepository
	mockProductRepo  *MockProductRepository
	service          portssvc.PurchaseSvcFacade
	incharge         domain.Actor
}

func (suite *PurchaseServiceTestSuite) SetupTest() {
	suite.mockPurchaseRepo = new(MockPurchaseRepository)
	suite.mockFundRepo = new(MockFundRepository)
	suite.mockSupplierRepo = new(MockSupplierRepository)
	suite.mockProductRepo = new(MockProductRepository)
	suite.service = services.NewPurchaseService(suite.mockPurchaseRepo, suite.mockFundRepo, suite.mockSupplierRepo, suite.mockProductRepo, nil)
	suite.incharge = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleIncharge}
}

func (suite *PurchaseServiceTestSuite) validRequest(fundID, supplierID, productID string) dto.CreatePurchaseRequest {
	return dto.CreatePurchaseRequest{
		FundID:      fundID,
		SupplierID:  supplierID,
		TotalAmount: decimal.NewFromInt(600),
		Items: []dto.PurchaseItemRequest{
			{ProductID: productID, Quantity: 20, UnitPrice: decimal.NewFromInt(30), TotalPrice: decimal.NewFromInt(600)},
		},
	}
}

// --- CreatePurchase ---

func (suite *PurchaseServiceTestSuite) TestCreatePurchase_Success() {
	ctx := context.Background()
	fundID := uuid.NewString()
	supplierID := uuid.NewString()
	productID := uuid.NewString()
	req := suite.validRequest(fundID, supplierID, productID)

	fund := &domain.Fund{
		FundID:   fundID,
		Amount:   decimal.NewFromInt(1000),
		Balance:  decimal.NewFromInt(1000),
		ToUserID: suite.incharge.UserID,
		Status:   domain.FundActive,
	}
	settled := &domain.Fund{
		FundID:   fundID,
		Amount:   decimal.NewFromInt(1000),
		Balance:  decimal.NewFromInt(400),
		ToUserID: suite.incharge.UserID,
		Status:   domain.FundActive,
	}

	suite.mockProductRepo.On("FindProductByID", ctx, productID).
		Return(&domain.Product{ProductID: productID}, nil).Once()
	suite.mockSupplierRepo.On("FindSupplierByID", ctx, supplierID).
		Return(&domain.Supplier{SupplierID: supplierID}, nil).Once()
	suite.mockFundRepo.On("FindFundByID", ctx, fundID).Return(fund, nil).Once()
	suite.mockPurchaseRepo.On("SavePurchase", ctx,
		mock.AnythingOfType("domain.Purchase"), mock.AnythingOfType("domain.FundUsage")).
		Run(func(args mock.Arguments) {
			usage := args.Get(2).(domain.FundUsage)
			suite.Equal(domain.UsagePurchase, usage.UsageType)
			suite.True(usage.Amount.Equal(req.TotalAmount))
			suite.Equal(suite.incharge.UserID, usage.UsedBy)
		}).
		Return(nil).Once()
	suite.mockFundRepo.On("FindFundByID", ctx, fundID).Return(settled, nil).Once()

	resp, err := suite.service.CreatePurchase(ctx, suite.incharge, req)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPaid, resp.PaymentStatus)
	suite.Require().NotNil(resp.FundBalance)
	suite.True(resp.FundBalance.Equal(decimal.NewFromInt(400)))
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestCreatePurchase_TotalsMismatch() {
	ctx := context.Background()
	fundID := uuid.NewString()
	supplierID := uuid.NewString()
	productID := uuid.NewString()
	req := suite.validRequest(fundID, supplierID, productID)
	req.TotalAmount = decimal.NewFromInt(700)

	suite.mockProductRepo.On("FindProductByID", ctx, productID).
		Return(&domain.Product{ProductID: productID}, nil).Once()

	_, err := suite.service.CreatePurchase(ctx, suite.incharge, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "SavePurchase", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PurchaseServiceTestSuite) TestCreatePurchase_LineArithmeticOff() {
	ctx := context.Background()
	fundID := uuid.NewString()
	supplierID := uuid.NewString()
	productID := uuid.NewString()
	req := dto.CreatePurchaseRequest{
		FundID:      fundID,
		SupplierID:  supplierID,
		TotalAmount: decimal.NewFromInt(500),
		Items: []dto.PurchaseItemRequest{
			// 20 * 30 != 500
			{ProductID: productID, Quantity: 20, UnitPrice: decimal.NewFromInt(30), TotalPrice: decimal.NewFromInt(500)},
		},
	}

	suite.mockProductRepo.On("FindProductByID", ctx, productID).
		Return(&domain.Product{ProductID: productID}, nil).Once()

	_, err := suite.service.CreatePurchase(ctx, suite.incharge, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PurchaseServiceTestSuite) TestCreatePurchase_FundNotHeldByCaller() {
	ctx := context.Background()
	fundID := uuid.NewString()
	supplierID := uuid.NewString()
	productID := uuid.NewString()
	req := suite.validRequest(fundID, supplierID, productID)

	fund := &domain.Fund{
		FundID:   fundID,
		Balance:  decimal.NewFromInt(1000),
		ToUserID: uuid.NewString(),
		Status:   domain.FundActive,
	}

	suite.mockProductRepo.On("FindProductByID", ctx, productID).
		Return(&domain.Product{ProductID: productID}, nil).Once()
	suite.mockSupplierRepo.On("FindSupplierByID", ctx, supplierID).
		Return(&domain.Supplier{SupplierID: supplierID}, nil).Once()
	suite.mockFundRepo.On("FindFundByID", ctx, fundID).Return(fund, nil).Once()

	_, err := suite.service.CreatePurchase(ctx, suite.incharge, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *PurchaseServiceTestSuite) TestCreatePurchase_InsufficientFunds() {
	ctx := context.Background()
	fundID := uuid.NewString()
	supplierID := uuid.NewString()
	productID := uuid.NewString()
	req := suite.validRequest(fundID, supplierID, productID)

	fund := &domain.Fund{
		FundID:   fundID,
		Amount:   decimal.NewFromInt(1000),
		Balance:  decimal.NewFromInt(100),
		ToUserID: suite.incharge.UserID,
		Status:   domain.FundActive,
	}

	suite.mockProductRepo.On("FindProductByID", ctx, productID).
		Return(&domain.Product{ProductID: productID}, nil).Once()
	suite.mockSupplierRepo.On("FindSupplierByID", ctx, supplierID).
		Return(&domain.Supplier{SupplierID: supplierID}, nil).Once()
	suite.mockFundRepo.On("FindFundByID", ctx, fundID).Return(fund, nil).Once()

	_, err := suite.service.CreatePurchase(ctx, suite.incharge, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "SavePurchase", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PurchaseServiceTestSuite) TestCreatePurchase_UnknownSupplier() {
	ctx := context.Background()
	fundID := uuid.NewString()
	supplierID := uuid.NewString()
	productID := uuid.NewString()
	req := suite.validRequest(fundID, supplierID, productID)

	suite.mockProductRepo.On("FindProductByID", ctx, productID).
		Return(&domain.Product{ProductID: productID}, nil).Once()
	suite.mockSupplierRepo.On("FindSupplierByID", ctx, supplierID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreatePurchase(ctx, suite.incharge, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- GetPurchaseByID ---

func (suite *PurchaseServiceTestSuite) TestGetPurchaseByID_CreatorOnly() {
	ctx := context.Background()
	purchaseID := uuid.NewString()
	purchase := &domain.Purchase{
		PurchaseID: purchaseID,
		AuditFields: domain.AuditFields{
			CreatedBy: uuid.NewString(),
		},
	}

	suite.mockPurchaseRepo.On("FindPurchaseByID", ctx, purchaseID).Return(purchase, nil).Once()

	_, err := suite.service.GetPurchaseByID(ctx, suite.incharge, purchaseID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestPurchaseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PurchaseServiceTestSuite))
}
