package services

import (
	"github.com/taskhive-dev/taskhive/internal/models"
	"gorm.io/gorm"
)

// ComputeProgress converts task counts into a completion percentage,
// truncating toward zero. The second return is false when there are no
// tasks, in which case stored progress must be left untouched.
func ComputeProgress(completed, total int64) (int, bool) {
	if total == 0 {
		return 0, false
	}
	return int(completed * 100 / total), true
}

// RecomputeProgress derives a project's progress from its task set and
// persists it. Idempotent: with no intervening task change the stored value
// does not move. Returns the persisted (or untouched) progress.
func RecomputeProgress(db *gorm.DB, projectID uint) (int, error) {
	var total, completed int64

	if err := db.Model(&models.ProjectTask{}).
		Where("project_id = ?", projectID).
		Count(&total).Error; err != nil {
		return 0, err
	}

	if err := db.Model(&models.ProjectTask{}).
		Where("project_id = ? AND status = ?", projectID, models.TaskDone).
		Count(&completed).Error; err != nil {
		return 0, err
	}

	progress, ok := ComputeProgress(completed, total)
	if !ok {
		var current models.Project
		if err := db.Select("progress").First(&current, projectID).Error; err != nil {
			return 0, err
		}
		return current.Progress, nil
	}

	// UpdateColumn skips the model hooks: this is a derived-state write,
	// not a user edit.
	if err := db.Model(&models.Project{}).
		Where("id = ?", projectID).
		UpdateColumn("progress", progress).Error; err != nil {
		return 0, err
	}

	return progress, nil
}
