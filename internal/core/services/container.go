package services

import (
	"github.com/knitworks/garment_mgmt_app/internal/adapters/webhook"
	portsrepo "github.com/knitworks/garment_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/knitworks/garment_mgmt_app/internal/core/ports/services"
)

// NewServiceContainer wires every service with its repository dependencies.
// webhookClient may be nil when no webhook endpoint is configured.
func NewServiceContainer(repos portsrepo.RepositoryProvider, webhookClient *webhook.Client) *portssvc.ServiceContainer {
	notifier := NewNotifierService(repos.Notification, webhookClient)
	activity := NewActivityService(repos.ActivityLog)

	return &portssvc.ServiceContainer{
		Fund: NewFundService(repos.Fund, repos.Sale, repos.User,
			WithNotifier(notifier),
			WithActivityLog(activity),
		),
		Inventory: NewInventoryService(repos.Inventory, repos.Product, repos.User,
			WithInventoryNotifier(notifier),
			WithInventoryActivityLog(activity),
		),
		Purchase:      NewPurchaseService(repos.Purchase, repos.Fund, repos.Supplier, repos.Product, activity),
		Manufacturing: NewManufacturingService(repos.Batch, repos.Product, repos.RawMaterial, activity),
		User:          NewUserService(repos.User),
		Notifier:      notifier,
		Activity:      activity,
	}
}
