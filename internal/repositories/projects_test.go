package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamdesk-dev/teamdesk/internal/models"
)

func seedProject(t *testing.T, projects *ProjectRepository, name string, managerID uint) *models.Project {
	t.Helper()

	project := &models.Project{Name: name, ManagerID: managerID}
	require.NoError(t, projects.Create(project))

	return project
}

func TestProjectCreateDefaultsAndValidation(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	projects := NewProjectRepository(db)

	manager := seedUser(t, users, "Ana", "Silva", "ana@x.com")

	t.Run("defaults fill absent fields", func(t *testing.T) {
		project := seedProject(t, projects, "Website", manager.ID)
		assert.Equal(t, "Planejamento", project.Status)
		assert.Equal(t, "Média", project.Priority)
		assert.Equal(t, 0, project.ProgressPct)
	})

	t.Run("progress bounds are inclusive", func(t *testing.T) {
		for _, pct := range []int{0, 100} {
			project := &models.Project{Name: "Bounds", ManagerID: manager.ID, ProgressPct: pct}
			require.NoError(t, projects.Create(project))
		}
	})

	t.Run("out-of-range progress never reaches storage", func(t *testing.T) {
		var before int64
		require.NoError(t, db.Model(&models.Project{}).Count(&before).Error)

		err := projects.Create(&models.Project{Name: "Broken", ManagerID: manager.ID, ProgressPct: 150})
		assert.ErrorIs(t, err, ErrInvalidProgress)

		var after int64
		require.NoError(t, db.Model(&models.Project{}).Count(&after).Error)
		assert.Equal(t, before, after)
	})

	t.Run("unknown status and priority are rejected", func(t *testing.T) {
		err := projects.Create(&models.Project{Name: "Broken", ManagerID: manager.ID, Status: "Bogus"})
		assert.ErrorIs(t, err, ErrInvalidStatus)

		err = projects.Create(&models.Project{Name: "Broken", ManagerID: manager.ID, Priority: "Urgente"})
		assert.ErrorIs(t, err, ErrInvalidPriority)
	})
}

func TestProjectListWithManagerName(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	projects := NewProjectRepository(db)

	manager := seedUser(t, users, "Ana", "Silva", "ana@x.com")

	older := &models.Project{Name: "Older", ManagerID: manager.ID, CreatedAt: time.Now().Add(-time.Hour)}
	require.NoError(t, projects.Create(older))
	newer := &models.Project{Name: "Newer", ManagerID: manager.ID}
	require.NoError(t, projects.Create(newer))

	rows, err := projects.List(50, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Newer", rows[0].Name, "list is ordered by creation time, newest first")
	assert.Equal(t, "Ana Silva", rows[0].ManagerName)

	t.Run("pagination", func(t *testing.T) {
		page, err := projects.List(1, 1)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, "Older", page[0].Name)
	})
}

func TestProjectGetByID(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	projects := NewProjectRepository(db)

	manager := seedUser(t, users, "Ana", "Silva", "ana@x.com")
	project := seedProject(t, projects, "Website", manager.ID)

	detail, err := projects.GetByID(project.ID)
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, "Website", detail.Name)
	assert.Equal(t, "Ana Silva", detail.ManagerName)
	assert.Empty(t, detail.Members)

	absent, err := projects.GetByID(9999)
	require.NoError(t, err)
	assert.Nil(t, absent)
}

func TestProjectUpdate(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	projects := NewProjectRepository(db)

	manager := seedUser(t, users, "Ana", "Silva", "ana@x.com")
	project := seedProject(t, projects, "Website", manager.ID)

	t.Run("valid status is applied and visible on re-read", func(t *testing.T) {
		updated, err := projects.Update(project.ID, map[string]interface{}{"status": "Concluído"})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "Concluído", updated.Status)

		detail, err := projects.GetByID(project.ID)
		require.NoError(t, err)
		assert.Equal(t, "Concluído", detail.Status)
	})

	t.Run("bogus status is rejected", func(t *testing.T) {
		_, err := projects.Update(project.ID, map[string]interface{}{"status": "Bogus"})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("progress is re-validated", func(t *testing.T) {
		_, err := projects.Update(project.ID, map[string]interface{}{"progress_pct": float64(150)})
		assert.ErrorIs(t, err, ErrInvalidProgress)

		updated, err := projects.Update(project.ID, map[string]interface{}{"progress_pct": float64(100)})
		require.NoError(t, err)
		assert.Equal(t, 100, updated.ProgressPct)
	})

	t.Run("deadline accepts a date-only string", func(t *testing.T) {
		updated, err := projects.Update(project.ID, map[string]interface{}{"deadline": "2026-12-31"})
		require.NoError(t, err)
		require.NotNil(t, updated.Deadline)
		assert.Equal(t, 2026, updated.Deadline.Year())
	})

	t.Run("empty payload behaves as a read", func(t *testing.T) {
		updated, err := projects.Update(project.ID, map[string]interface{}{})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "Website", updated.Name)
		assert.Equal(t, "Ana Silva", updated.ManagerName)
	})

	t.Run("unknown id reports absence", func(t *testing.T) {
		updated, err := projects.Update(9999, map[string]interface{}{"name": "X"})
		require.NoError(t, err)
		assert.Nil(t, updated)
	})
}

func TestProjectDelete(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	projects := NewProjectRepository(db)

	manager := seedUser(t, users, "Ana", "Silva", "ana@x.com")
	project := seedProject(t, projects, "Website", manager.ID)

	deleted, err := projects.Delete(project.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, "Website", deleted.Name)

	again, err := projects.Delete(project.ID)
	require.NoError(t, err)
	assert.Nil(t, again)
}

func TestReplaceMembers(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	projects := NewProjectRepository(db)

	manager := seedUser(t, users, "Ana", "Silva", "ana@x.com")
	bruno := seedUser(t, users, "Bruno", "Santana", "bruno@x.com")
	carla := seedUser(t, users, "Carla", "Mota", "carla@x.com")
	project := seedProject(t, projects, "Website", manager.ID)

	t.Run("full replacement", func(t *testing.T) {
		members, err := projects.ReplaceMembers(project.ID, []uint{bruno.ID, carla.ID}, "Dev")
		require.NoError(t, err)
		require.Len(t, members, 2)
		assert.Equal(t, "Bruno Santana", members[0].Name, "members are ordered by name")
		assert.Equal(t, "Dev", members[0].Role)
		assert.False(t, members[0].AddedAt.IsZero())

		members, err = projects.ReplaceMembers(project.ID, []uint{carla.ID}, "")
		require.NoError(t, err)
		require.Len(t, members, 1)
		assert.Equal(t, "Carla Mota", members[0].Name)
		assert.Equal(t, "Membro", members[0].Role, "role defaults when omitted")
	})

	t.Run("empty id list clears the membership", func(t *testing.T) {
		members, err := projects.ReplaceMembers(project.ID, []uint{}, "Membro")
		require.NoError(t, err)
		assert.Empty(t, members)

		members, err = projects.Members(project.ID)
		require.NoError(t, err)
		assert.Empty(t, members)
	})

	t.Run("mid-batch failure rolls everything back", func(t *testing.T) {
		_, err := projects.ReplaceMembers(project.ID, []uint{bruno.ID}, "Dev")
		require.NoError(t, err)

		// A duplicated id violates the composite key on the second row.
		_, err = projects.ReplaceMembers(project.ID, []uint{carla.ID, carla.ID}, "Dev")
		require.Error(t, err)

		members, err := projects.Members(project.ID)
		require.NoError(t, err)
		require.Len(t, members, 1, "prior membership must survive the failed replacement")
		assert.Equal(t, "Bruno Santana", members[0].Name)
	})
}

func TestParseDeadline(t *testing.T) {
	date, err := ParseDeadline("2026-12-31")
	require.NoError(t, err)
	assert.Equal(t, time.December, date.Month())

	stamp, err := ParseDeadline("2026-12-31T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, stamp.Hour())

	_, err = ParseDeadline("matanã")
	assert.Error(t, err)
}

// Guard against the gorm handle leaking soft-delete semantics: deletes are
// hard, so a recreated email must not conflict with a removed row.
func TestDeleteFreesUniqueEmail(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)

	first := seedUser(t, users, "Ana", "Silva", "ana@x.com")
	_, err := users.Delete(first.ID)
	require.NoError(t, err)

	err = users.Create(&models.User{Nome: "Ana", Sobrenome: "Silva", Email: "ana@x.com", SenhaHash: "d2"})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
