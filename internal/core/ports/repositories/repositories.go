package repositories

// RepositoryProvider bundles every repository implementation for service wiring.
type RepositoryProvider struct {
	Fund         FundRepositoryWithTx
	Inventory    InventoryRepositoryWithTx
	Purchase     PurchaseRepository
	Batch        BatchRepository
	User         UserRepositoryFacade
	Product      ProductRepository
	RawMaterial  RawMaterialRepository
	Supplier     SupplierRepository
	Sale         SaleRepository
	Notification NotificationRepository
	ActivityLog  ActivityLogRepository
}
