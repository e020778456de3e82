// controller/controllers.go
package controller

import (
	"github.com/en18031/conformity/audit"
	"github.com/en18031/conformity/catalog"
	"github.com/en18031/conformity/service"
)

type Controllers struct {
	Project    *ProjectController
	Assessment *AssessmentController
	Evidence   *EvidenceController
	Catalog    *CatalogController
	Session    *SessionController
	Transfer   *TransferController
	Audit      *AuditController
}

func InitializeControllers(services *service.Services, cat *catalog.Catalog, auditService audit.Service) *Controllers {
	return &Controllers{
		Project:    NewProjectController(services.Project),
		Assessment: NewAssessmentController(services.Assessment),
		Evidence:   NewEvidenceController(services.Evidence),
		Catalog:    NewCatalogController(cat),
		Session:    NewSessionController(services.Conceptual),
		Transfer:   NewTransferController(services.Transfer),
		Audit:      NewAuditController(auditService),
	}
}
