// util/notification_service.go

package util

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	logger "github.com/en18031/conformity/logging"
	"github.com/en18031/conformity/model"
)

type NotificationService struct {
	// You might want to add dependencies here, such as a message queue client
}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

func (n *NotificationService) NotifyProjectChange(ctx context.Context, changeType string, project model.Project) error {
	// In a real implementation, you might send this to a message queue or external notification service
	switch changeType {
	case "created":
		logger.Info("NOTIFICATION: New project created",
			zap.String("projectID", project.ID),
			zap.String("projectName", project.Name))
	case "updated":
		logger.Info("NOTIFICATION: Project updated",
			zap.String("projectID", project.ID),
			zap.String("projectName", project.Name))
	case "deleted":
		logger.Info("NOTIFICATION: Project deleted",
			zap.String("projectID", project.ID))
	default:
		return fmt.Errorf("unknown change type: %s", changeType)
	}

	return nil
}

func (n *NotificationService) NotifyAssessmentChange(ctx context.Context, changeType string, assessment model.Assessment) error {
	logger.Info("Notifying assessment change",
		zap.String("changeType", changeType),
		zap.String("assessmentID", assessment.ID),
		zap.String("projectID", assessment.ProjectID),
		zap.String("testCaseID", assessment.TestCaseID))
	return nil
}

func (n *NotificationService) NotifyAssignees(ctx context.Context, project model.Project, message string) error {
	// Logic to notify the assignees of a project
	logger.Info("Notifying project assignees",
		zap.String("projectID", project.ID),
		zap.Strings("assignees", project.Assignees),
		zap.String("message", message))
	return nil
}

func (n *NotificationService) SendEmail(ctx context.Context, recipient, subject, body string) error {
	// Mock email sending
	logger.Info("Sending email",
		zap.String("recipient", recipient),
		zap.String("subject", subject))

	return nil
}
