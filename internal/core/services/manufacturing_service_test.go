package services_test

import (
	"context"
	"testing"
	"time"

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

// MockBatchRepository is a mock type for the BatchRepository interface
type MockBatchRepository struct {
	mock.Mock
}

func (m *MockBatchRepository) SaveBatch(ctx context.Context, batch domain.ManufacturingBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockBatchRepository) FindBatchByID(ctx context.Context, batchID string) (*domain.ManufacturingBatch, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ManufacturingBatch), args.Error(1)
}

func (m *MockBatchRepository) BatchNumberExists(ctx context.Context, batchNumber string) (bool, error) {
	args := m.Called(ctx, batchNumber)
	return args.Bool(0), args.Error(1)
}

// MockRawMaterialRepository is a mock type for the RawMaterialRepository interface
type MockRawMaterialRepository struct {
	mock.Mock
}

func (m *MockRawMaterialRepository) FindRawMaterialByID(ctx context.Context, materialID string) (*domain.RawMaterial, error) {
	args := m.Called(ctx, materialID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RawMaterial), args.Error(1)
}

func (m *MockRawMaterialRepository) FindRawMaterialsByIDs(ctx context.Context, materialIDs []string) (map[string]domain.RawMaterial, error) {
	args := m.Called(ctx, materialIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.RawMaterial), args.Error(1)
}

// --- Test Suite Setup ---

type ManufacturingServiceTestSuite struct {
	suite.Suite
	mockBatchRepo    *MockBatchRepository
	mockProductRepo  *MockProductRepository
	mockMaterialRepo *MockRawMaterialRepository
	service          portssvc.ManufacturingSvcFacade
	incharge         domain.Actor
}

func (suite *ManufacturingServiceTestSuite) SetupTest() {
	suite.mockBatchRepo = new(MockBatchRepository)
	suite.mockProductRepo = new(MockProductRepository)
	suite.mockMaterialRepo = new(MockRawMaterialRepository)
	suite.service = services.NewManufacturingService(suite.mockBatchRepo, suite.mockProductRepo, suite.mockMaterialRepo, nil)
	suite.incharge = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleIncharge}
}

func (suite *ManufacturingServiceTestSuite) batchRequest(productID, materialID string) dto.CreateBatchRequest {
	return dto.CreateBatchRequest{
		ProductID:        productID,
		QuantityProduced: 100,
		StartDate:        time.Now().UTC(),
		Materials: []dto.MaterialLineRequest{
			{MaterialID: materialID, QuantityRequired: decimal.NewFromInt(50)},
		},
	}
}

// --- CreateBatch ---

func (suite *ManufacturingServiceTestSuite) TestCreateBatch_Success() {
	ctx := context.Background()
	productID := uuid.NewString()
	materialID := uuid.NewString()
	req := suite.batchRequest(productID, materialID)

	suite.mockProductRepo.On("FindProductByID", ctx, productID).
		Return(&domain.Product{ProductID: productID}, nil).Once()
	suite.mockMaterialRepo.On("FindRawMaterialsByIDs", ctx, []string{materialID}).
		Return(map[string]domain.RawMaterial{
			materialID: {MaterialID: materialID, Name: "Cotton", Unit: "kg", StockQuantity: decimal.NewFromInt(200)},
		}, nil).Once()
	suite.mockBatchRepo.On("BatchNumberExists", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()
	suite.mockBatchRepo.On("SaveBatch", ctx, mock.AnythingOfType("domain.ManufacturingBatch")).Return(nil).Once()

	batch, err := suite.service.CreateBatch(ctx, suite.incharge, req)

	suite.Require().NoError(err)
	suite.NotEmpty(batch.BatchID)
	suite.Regexp(`^BATCH-\d{8}-\d{4}$`, batch.BatchNumber)
	suite.Equal(domain.BatchPending, batch.Status)
	suite.Len(batch.Materials, 1)
	suite.mockBatchRepo.AssertExpectations(suite.T())
}

func (suite *ManufacturingServiceTestSuite) TestCreateBatch_InsufficientMaterial() {
	ctx := context.Background()
	productID := uuid.NewString()
	materialID := uuid.NewString()
	req := suite.batchRequest(productID, materialID)

	suite.mockProductRepo.On("FindProductByID", ctx, productID).
		Return(&domain.Product{ProductID: productID}, nil).Once()
	suite.mockMaterialRepo.On("FindRawMaterialsByIDs", ctx, []string{materialID}).
		Return(map[string]domain.RawMaterial{
			materialID: {MaterialID: materialID, Name: "Cotton", Unit: "kg", StockQuantity: decimal.NewFromInt(10)},
		}, nil).Once()

	_, err := suite.service.CreateBatch(ctx, suite.incharge, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
	suite.mockBatchRepo.AssertNotCalled(suite.T(), "SaveBatch", mock.Anything, mock.Anything)
}

func (suite *ManufacturingServiceTestSuite) TestCreateBatch_UnknownMaterial() {
	ctx := context.Background()
	productID := uuid.NewString()
	materialID := uuid.NewString()
	req := suite.batchRequest(productID, materialID)

	suite.mockProductRepo.On("FindProductByID", ctx, productID).
		Return(&domain.Product{ProductID: productID}, nil).Once()
	suite.mockMaterialRepo.On("FindRawMaterialsByIDs", ctx, []string{materialID}).
		Return(map[string]domain.RawMaterial{}, nil).Once()

	_, err := suite.service.CreateBatch(ctx, suite.incharge, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ManufacturingServiceTestSuite) TestCreateBatch_DuplicateLinesAggregated() {
	ctx := context.Background()
	productID := uuid.NewString()
	materialID := uuid.NewString()
	req := dto.CreateBatchRequest{
		ProductID:        productID,
		QuantityProduced: 100,
		StartDate:        time.Now().UTC(),
		Materials: []dto.MaterialLineRequest{
			{MaterialID: materialID, QuantityRequired: decimal.NewFromInt(60)},
			{MaterialID: materialID, QuantityRequired: decimal.NewFromInt(60)},
		},
	}

	// 120 needed in aggregate against 100 in stock must fail even though each
	// line alone would fit.
	suite.mockProductRepo.On("FindProductByID", ctx, productID).
		Return(&domain.Product{ProductID: productID}, nil).Once()
	suite.mockMaterialRepo.On("FindRawMaterialsByIDs", ctx, []string{materialID, materialID}).
		Return(map[string]domain.RawMaterial{
			materialID: {MaterialID: materialID, Name: "Cotton", Unit: "kg", StockQuantity: decimal.NewFromInt(100)},
		}, nil).Once()

	_, err := suite.service.CreateBatch(ctx, suite.incharge, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
}

func (suite *ManufacturingServiceTestSuite) TestCreateBatch_RetriesOnNumberCollision() {
	ctx := context.Background()
	productID := uuid.NewString()
	materialID := uuid.NewString()
	req := suite.batchRequest(productID, materialID)

	suite.mockProductRepo.On("FindProductByID", ctx, productID).
		Return(&domain.Product{ProductID: productID}, nil).Once()
	suite.mockMaterialRepo.On("FindRawMaterialsByIDs", ctx, []string{materialID}).
		Return(map[string]domain.RawMaterial{
			materialID: {MaterialID: materialID, Name: "Cotton", Unit: "kg", StockQuantity: decimal.NewFromInt(200)},
		}, nil).Once()
	suite.mockBatchRepo.On("BatchNumberExists", ctx, mock.AnythingOfType("string")).Return(false, nil)
	// First insert trips the unique constraint, the retry succeeds.
	suite.mockBatchRepo.On("SaveBatch", ctx, mock.AnythingOfType("domain.ManufacturingBatch")).
		Return(apperrors.ErrDuplicate).Once()
	suite.mockBatchRepo.On("SaveBatch", ctx, mock.AnythingOfType("domain.ManufacturingBatch")).
		Return(nil).Once()

	batch, err := suite.service.CreateBatch(ctx, suite.incharge, req)

	suite.Require().NoError(err)
	suite.NotEmpty(batch.BatchNumber)
	suite.mockBatchRepo.AssertNumberOfCalls(suite.T(), "SaveBatch", 2)
}

func (suite *ManufacturingServiceTestSuite) TestCreateBatch_GivesUpAfterRepeatedCollisions() {
	ctx := context.Background()
	productID := uuid.NewString()
	materialID := uuid.NewString()
	req := suite.batchRequest(productID, materialID)

	suite.mockProductRepo.On("FindProductByID", ctx, productID).
		Return(&domain.Product{ProductID: productID}, nil).Once()
	suite.mockMaterialRepo.On("FindRawMaterialsByIDs", ctx, []string{materialID}).
		Return(map[string]domain.RawMaterial{
			materialID: {MaterialID: materialID, Name: "Cotton", Unit: "kg", StockQuantity: decimal.NewFromInt(200)},
		}, nil).Once()
	suite.mockBatchRepo.On("BatchNumberExists", ctx, mock.AnythingOfType("string")).Return(false, nil)
	suite.mockBatchRepo.On("SaveBatch", ctx, mock.AnythingOfType("domain.ManufacturingBatch")).
		Return(apperrors.ErrDuplicate)

	_, err := suite.service.CreateBatch(ctx, suite.incharge, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockBatchRepo.AssertNumberOfCalls(suite.T(), "SaveBatch", 5)
}

func (suite *ManufacturingServiceTestSuite) TestCreateBatch_NoMaterials() {
	ctx := context.Background()
	req := dto.CreateBatchRequest{
		ProductID:        uuid.NewString(),
		QuantityProduced: 10,
		StartDate:        time.Now().UTC(),
	}

	_, err := suite.service.CreateBatch(ctx, suite.incharge, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- GetBatchByID ---

func (suite *ManufacturingServiceTestSuite) TestGetBatchByID_CreatorCanView() {
	ctx := context.Background()
	batchID := uuid.NewString()
	batch := &domain.ManufacturingBatch{
		BatchID: batchID,
		AuditFields: domain.AuditFields{
			CreatedBy: suite.incharge.UserID,
		},
	}

	suite.mockBatchRepo.On("FindBatchByID", ctx, batchID).Return(batch, nil).Once()

	got, err := suite.service.GetBatchByID(ctx, suite.incharge, batchID)

	suite.Require().NoError(err)
	suite.Equal(batchID, got.BatchID)
}

func TestManufacturingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ManufacturingServiceTestSuite))
}
