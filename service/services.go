// service/services.go
package service

import (
	"github.com/en18031/conformity/audit"
	"github.com/en18031/conformity/catalog"
	"github.com/en18031/conformity/dao"
	"github.com/en18031/conformity/db"
	"github.com/en18031/conformity/session"
	"github.com/en18031/conformity/util"
)

type Services struct {
	Project    IProjectService
	Assessment IAssessmentService
	Evidence   IEvidenceService
	Conceptual IConceptualService
	Transfer   ITransferService
}

func InitializeServices(
	store db.KV,
	cat *catalog.Catalog,
	auditService audit.Service,
	validationUtil *util.ValidationUtil,
	cacheService *util.CacheService,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
) (*Services, error) {
	projectDAO := dao.NewProjectDAO(store, auditService)
	assessmentDAO := dao.NewAssessmentDAO(store, auditService)
	evidenceDAO := dao.NewEvidenceDAO(store, auditService)

	idGen := util.UUIDGenerator{}
	clock := util.SystemClock{}

	projectService := NewProjectService(projectDAO, assessmentDAO, cat, idGen, clock, validationUtil, cacheService, notificationSvc, eventBus)
	assessmentService := NewAssessmentService(assessmentDAO, cat, idGen, clock, validationUtil, cacheService, notificationSvc, eventBus)
	evidenceService := NewEvidenceService(evidenceDAO, assessmentDAO, idGen, clock, validationUtil)
	conceptualService := NewConceptualService(session.NewManager(), cat, assessmentService, projectService, idGen)
	transferService := NewTransferService(projectService, assessmentService, evidenceService, cat, auditService, idGen, clock)

	services := &Services{
		Project:    projectService,
		Assessment: assessmentService,
		Evidence:   evidenceService,
		Conceptual: conceptualService,
		Transfer:   transferService,
	}

	return services, nil
}
