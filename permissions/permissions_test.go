package permissions

import (
	"testing"

	"tracker/db"
	"tracker/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fixture struct {
	admin     models.Person
	manager   models.Person
	assignee  models.Person
	teammate  models.Person
	outsider  models.Person
	project   models.Project
	task      models.Task
	otherTask models.Task
	preview   models.PreviewFile
	other     models.PreviewFile
}

func setupFixture(t *testing.T) fixture {
	t.Helper()
	instance, err := gorm.Open(sqlite.Open(t.TempDir()+"/test.db"), &gorm.Config{})
	if err != nil {
		t.Fatalf("cannot open test DB: %v", err)
	}
	db.Instance = instance
	models.Init()

	f := fixture{}
	f.admin, _ = models.PersonCreate("Admin", "admin@studio.test", "pass", models.RoleAdmin)
	f.manager, _ = models.PersonCreate("Manager", "manager@studio.test", "pass", models.RoleManager)
	f.assignee, _ = models.PersonCreate("Artist", "artist@studio.test", "pass", models.RoleUser)
	f.teammate, _ = models.PersonCreate("Teammate", "teammate@studio.test", "pass", models.RoleUser)
	f.outsider, _ = models.PersonCreate("Other", "other@studio.test", "pass", models.RoleUser)

	// The assignee is deliberately NOT on the project team - assignment
	// and team membership are separate grants
	f.project = models.Project{Name: "Caminandes"}
	if err := db.Instance.Create(&f.project).Error; err != nil {
		t.Fatalf("cannot create project: %v", err)
	}
	if err := db.Instance.Model(&f.project).Association("Team").Append(&f.teammate); err != nil {
		t.Fatalf("cannot add team member: %v", err)
	}

	f.task = models.Task{Name: "Animation", ProjectID: f.project.ID}
	if err := db.Instance.Create(&f.task).Error; err != nil {
		t.Fatalf("cannot create task: %v", err)
	}
	if err := db.Instance.Model(&f.task).Association("Assignees").Append(&f.assignee); err != nil {
		t.Fatalf("cannot assign task: %v", err)
	}

	// A task in an unrelated project with no team overlap
	otherProject := models.Project{Name: "Elephants Dream"}
	if err := db.Instance.Create(&otherProject).Error; err != nil {
		t.Fatalf("cannot create project: %v", err)
	}
	f.otherTask = models.Task{Name: "Compositing", ProjectID: otherProject.ID}
	if err := db.Instance.Create(&f.otherTask).Error; err != nil {
		t.Fatalf("cannot create task: %v", err)
	}

	f.preview = models.PreviewFile{Name: "take-01", TaskID: f.task.ID}
	if err := db.Instance.Create(&f.preview).Error; err != nil {
		t.Fatalf("cannot create preview file: %v", err)
	}
	f.other = models.PreviewFile{Name: "take-02", TaskID: f.otherTask.ID}
	if err := db.Instance.Create(&f.other).Error; err != nil {
		t.Fatalf("cannot create preview file: %v", err)
	}
	return f
}

func TestCheckManager(t *testing.T) {
	f := setupFixture(t)
	if d := CheckManager(&f.admin); !d.Allowed {
		t.Errorf("admin denied: %s", d.Reason)
	}
	if d := CheckManager(&f.manager); !d.Allowed {
		t.Errorf("manager denied: %s", d.Reason)
	}
	if d := CheckManager(&f.assignee); d.Allowed {
		t.Error("regular user passed the manager check")
	}
}

func TestCheckSelfOrManager(t *testing.T) {
	f := setupFixture(t)
	if d := CheckSelfOrManager(&f.assignee, f.assignee.ID); !d.Allowed {
		t.Errorf("self-targeting denied: %s", d.Reason)
	}
	if d := CheckSelfOrManager(&f.assignee, f.outsider.ID); d.Allowed {
		t.Error("regular user allowed on someone else's record")
	}
	if d := CheckSelfOrManager(&f.manager, f.outsider.ID); !d.Allowed {
		t.Errorf("manager denied on another record: %s", d.Reason)
	}
}

func TestCheckAssigned(t *testing.T) {
	f := setupFixture(t)
	if d := CheckAssigned(&f.assignee, f.task.ID); !d.Allowed {
		t.Errorf("assignee denied: %s", d.Reason)
	}
	if d := CheckAssigned(&f.outsider, f.task.ID); d.Allowed {
		t.Error("non-assignee allowed")
	}
	if d := CheckAssigned(&f.admin, f.task.ID); !d.Allowed {
		t.Errorf("admin denied: %s", d.Reason)
	}
}

func TestCheckPreviewRead(t *testing.T) {
	f := setupFixture(t)
	// Assigned to the owning task, not on the project team
	if d := CheckPreviewRead(&f.assignee, &f.preview); !d.Allowed {
		t.Errorf("assignee denied: %s", d.Reason)
	}
	// On the project team, not assigned to the task
	if d := CheckPreviewRead(&f.teammate, &f.preview); !d.Allowed {
		t.Errorf("team member denied: %s", d.Reason)
	}
	// Preview owned by an unrelated task
	if d := CheckPreviewRead(&f.assignee, &f.other); d.Allowed {
		t.Error("unrelated preview readable")
	}
	if d := CheckPreviewRead(&f.outsider, &f.preview); d.Allowed {
		t.Error("outsider allowed to fetch")
	}
	// Admin passes both
	if d := CheckPreviewRead(&f.admin, &f.preview); !d.Allowed {
		t.Errorf("admin denied: %s", d.Reason)
	}
	if d := CheckPreviewRead(&f.admin, &f.other); !d.Allowed {
		t.Errorf("admin denied: %s", d.Reason)
	}
}

func TestCheckPreviewWrite(t *testing.T) {
	f := setupFixture(t)
	if d := CheckPreviewWrite(&f.assignee, &f.preview); !d.Allowed {
		t.Errorf("assignee denied: %s", d.Reason)
	}
	// Team membership alone does not grant uploads
	if d := CheckPreviewWrite(&f.teammate, &f.preview); d.Allowed {
		t.Error("non-assigned team member allowed to upload")
	}
	if d := CheckPreviewWrite(&f.outsider, &f.preview); d.Allowed {
		t.Error("outsider allowed to upload")
	}
}

func TestPreviewReadCoversWriteGrant(t *testing.T) {
	f := setupFixture(t)
	// Whoever may upload a preview may also fetch it back: an assignee
	// outside the project team holds both grants
	if d := CheckPreviewWrite(&f.assignee, &f.preview); !d.Allowed {
		t.Fatalf("assignee upload denied: %s", d.Reason)
	}
	if d := CheckPreviewRead(&f.assignee, &f.preview); !d.Allowed {
		t.Errorf("assignee fetch denied: %s", d.Reason)
	}
}
