package services

import (
	"github.com/taskhive-dev/taskhive/internal/models"
	"gorm.io/gorm"
)

// AccessLevel is the result of the authorization predicate consulted before
// every project or task operation.
type AccessLevel int

const (
	AccessDenied AccessLevel = iota
	// AccessReadOnly covers project reads and task creation.
	AccessReadOnly
	AccessFull
)

// ProjectAccess evaluates the predicate against a loaded project. The owner
// holds full access; team members may read the project and create tasks but
// cannot rename, delete, or touch existing tasks.
func ProjectAccess(userID uint, project *models.Project) AccessLevel {
	if project.OwnerID == userID {
		return AccessFull
	}
	for _, member := range project.TeamMembers {
		if member.ID == userID {
			return AccessReadOnly
		}
	}
	return AccessDenied
}

// TaskAccess mirrors the project predicate: mutating a task requires owning
// the project. Being the assignee alone grants nothing.
func TaskAccess(userID uint, project *models.Project) AccessLevel {
	return ProjectAccess(userID, project)
}

const teamMemberFilter = `owner_id = ? OR EXISTS (
	SELECT 1 FROM project_team_members ptm
	WHERE ptm.project_id = projects.id AND ptm.user_id = ?)`

// ProjectForView fetches a project the user may read. Denial surfaces as
// gorm.ErrRecordNotFound, same as a missing row, so callers answer 404 for
// both without revealing which it was.
func ProjectForView(db *gorm.DB, projectID uint64, userID uint) (*models.Project, error) {
	var project models.Project

	err := db.Preload("TeamMembers").Preload("Category").
		Where("projects.id = ?", projectID).
		Where(teamMemberFilter, userID, userID).
		First(&project).Error

	if err != nil {
		return nil, err
	}

	return &project, nil
}

// ProjectForManage fetches a project the user may mutate: owner only.
func ProjectForManage(db *gorm.DB, projectID uint64, userID uint) (*models.Project, error) {
	var project models.Project

	err := db.Preload("TeamMembers").
		Where("projects.id = ? AND owner_id = ?", projectID, userID).
		First(&project).Error

	if err != nil {
		return nil, err
	}

	return &project, nil
}

// TaskForManage fetches a task within a project the user owns.
func TaskForManage(db *gorm.DB, projectID, taskID uint64, userID uint) (*models.ProjectTask, error) {
	var task models.ProjectTask

	err := db.Joins("JOIN projects ON projects.id = project_tasks.project_id").
		Where("project_tasks.id = ? AND project_tasks.project_id = ? AND projects.owner_id = ?",
			taskID, projectID, userID).
		First(&task).Error

	if err != nil {
		return nil, err
	}

	return &task, nil
}

// ViewableProjects scopes a listing query to projects the user owns or
// belongs to. Staff do not bypass this: the admin override applies to the
// audit surfaces only, never to the regular project listing.
func ViewableProjects(db *gorm.DB, userID uint) *gorm.DB {
	return db.Model(&models.Project{}).Where(teamMemberFilter, userID, userID)
}
