package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/knitworks/garment_mgmt_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	fundRepo := newPgxFundRepository(dbPool)
	inventoryRepo := newPgxInventoryRepository(dbPool)
	purchaseRepo := newPgxPurchaseRepository(dbPool, fundRepo)
	batchRepo := newPgxBatchRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	productRepo := newPgxProductRepository(dbPool)
	rawMaterialRepo := newPgxRawMaterialRepository(dbPool)
	supplierRepo := newPgxSupplierRepository(dbPool)
	saleRepo := newPgxSaleRepository(dbPool)
	notificationRepo := newPgxNotificationRepository(dbPool)
	activityLogRepo := newPgxActivityLogRepository(dbPool)

	return portsrepo.RepositoryProvider{
		Fund:         fundRepo,
		Inventory:    inventoryRepo,
		Purchase:     purchaseRepo,
		Batch:        batchRepo,
		User:         userRepo,
		Product:      productRepo,
		RawMaterial:  rawMaterialRepo,
		Supplier:     supplierRepo,
		Sale:         saleRepo,
		Notification: notificationRepo,
		ActivityLog:  activityLogRepo,
	}
}
