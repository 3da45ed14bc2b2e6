package mapping

import (
	"github.com/knitworks/garment_mgmt_app/internal/core/domain"
	"github.com/knitworks/garment_mgmt_app/internal/models"
)

// ToModelFund converts a domain Fund to a model Fund
func ToModelFund(d domain.Fund) models.Fund {
	return models.Fund{
		FundID:          d.FundID,
		Amount:          d.Amount,
		Balance:         d.Balance,
		FromUserID:      d.FromUserID,
		ToUserID:        d.ToUserID,
		FundType:        models.FundType(d.FundType),
		Status:          models.FundStatus(d.Status),
		Description:     d.Description,
		ReferenceSaleID: d.ReferenceSaleID,
		TransferredAt:   d.TransferredAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFund converts a model Fund to a domain Fund
func ToDomainFund(m models.Fund) domain.Fund {
	return domain.Fund{
		FundID:          m.FundID,
		Amount:          m.Amount,
		Balance:         m.Balance,
		FromUserID:      m.FromUserID,
		ToUserID:        m.ToUserID,
		FundType:        domain.FundType(m.FundType),
		Status:          domain.FundStatus(m.Status),
		Description:     m.Description,
		ReferenceSaleID: m.ReferenceSaleID,
		TransferredAt:   m.TransferredAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelFundUsage converts a domain FundUsage to a model FundUsage
func ToModelFundUsage(d domain.FundUsage) models.FundUsage {
	return models.FundUsage{
		UsageID:     d.UsageID,
		FundID:      d.FundID,
		Amount:      d.Amount,
		UsageType:   string(d.UsageType),
		ReferenceID: d.ReferenceID,
		UsedBy:      d.UsedBy,
		Notes:       d.Notes,
		UsedAt:      d.UsedAt,
	}
}

// ToDomainFundUsage converts a model FundUsage to a domain FundUsage
func ToDomainFundUsage(m models.FundUsage) domain.FundUsage {
	return domain.FundUsage{
		UsageID:     m.UsageID,
		FundID:      m.FundID,
		Amount:      m.Amount,
		UsageType:   domain.UsageType(m.UsageType),
		ReferenceID: m.ReferenceID,
		UsedBy:      m.UsedBy,
		Notes:       m.Notes,
		UsedAt:      m.UsedAt,
	}
}

// ToModelFundReturn converts a domain FundReturn to a model FundReturn
func ToModelFundReturn(d domain.FundReturn) models.FundReturn {
	return models.FundReturn{
		ReturnID:   d.ReturnID,
		SaleID:     d.SaleID,
		Amount:     d.Amount,
		ReturnedBy: d.ReturnedBy,
		Status:     string(d.Status),
		Notes:      d.Notes,
		ReturnedAt: d.ReturnedAt,
		ApprovedBy: d.ApprovedBy,
		ApprovedAt: d.ApprovedAt,
	}
}

// ToDomainFundReturn converts a model FundReturn to a domain FundReturn
func ToDomainFundReturn(m models.FundReturn) domain.FundReturn {
	return domain.FundReturn{
		ReturnID:   m.ReturnID,
		SaleID:     m.SaleID,
		Amount:     m.Amount,
		ReturnedBy: m.ReturnedBy,
		Status:     domain.ReturnStatus(m.Status),
		Notes:      m.Notes,
		ReturnedAt: m.ReturnedAt,
		ApprovedBy: m.ApprovedBy,
		ApprovedAt: m.ApprovedAt,
	}
}
