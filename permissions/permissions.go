// Package permissions is the capability-check layer: small pure
// predicates over (caller, resource) evaluated per request. Predicates
// return a Decision value instead of signaling through errors, so
// callers can either abort early (403) or fold the decision into a
// response.
package permissions

import (
	"tracker/models"
)

type Decision struct {
	Allowed bool
	Reason  string
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason string) Decision {
	return Decision{Reason: reason}
}

// CheckManager allows admins and managers only.
func CheckManager(person *models.Person) Decision {
	if person.HasManagerPermissions() {
		return Allow()
	}
	return Deny("requires manager permissions")
}

// CheckSelfOrManager allows a person acting on their own record (avatar
// updates) regardless of role.
func CheckSelfOrManager(person *models.Person, personID string) Decision {
	if person.ID == personID {
		return Allow()
	}
	return CheckManager(person)
}

// CheckAssigned allows managers and the task's assignees. Used on write
// paths: only the people doing the work may attach previews to it.
func CheckAssigned(person *models.Person, taskID string) Decision {
	if person.HasManagerPermissions() {
		return Allow()
	}
	task, err := models.GetTask(taskID)
	if err != nil {
		return Deny("task cannot be resolved")
	}
	if task.IsAssigned(person.ID) {
		return Allow()
	}
	return Deny("not assigned to the task")
}

// CheckTaskRelated allows managers and anyone on the project team. Used
// on read paths: project members may look at each other's previews.
func CheckTaskRelated(person *models.Person, projectID string) Decision {
	if person.HasManagerPermissions() {
		return Allow()
	}
	project, err := models.GetProject(projectID)
	if err != nil {
		return Deny("project cannot be resolved")
	}
	if project.IsInTeam(person.ID) {
		return Allow()
	}
	return Deny("no task related to the project")
}

// CheckPreviewWrite gates preview uploads: the ownership chain is
// preview file -> task, and the caller must be assigned.
func CheckPreviewWrite(person *models.Person, previewFile *models.PreviewFile) Decision {
	return CheckAssigned(person, previewFile.TaskID)
}

// CheckPreviewRead gates preview fetches: the ownership chain is
// preview file -> task -> project. Assignment to the owning task or
// project team membership is enough; read grants cover write grants.
func CheckPreviewRead(person *models.Person, previewFile *models.PreviewFile) Decision {
	if person.HasManagerPermissions() {
		return Allow()
	}
	if decision := CheckAssigned(person, previewFile.TaskID); decision.Allowed {
		return decision
	}
	task, err := models.GetTask(previewFile.TaskID)
	if err != nil {
		return Deny("owning task cannot be resolved")
	}
	return CheckTaskRelated(person, task.ProjectID)
}
