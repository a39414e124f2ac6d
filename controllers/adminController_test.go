package controllers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecotrack-backend/database"
	"ecotrack-backend/models"
)

func TestReviewActivityApprove(t *testing.T) {
	resetTables(t)

	user := createUser(t, 0)
	admin := createUser(t, 0)
	activity := createActivity(t, user.Id, "cycling", 2) // 2kg * 12 = 24 points
	app := newTestApp(admin.Id, models.RoleAdmin)

	resp, body := doJSON(t, app, "PATCH", "/api/admin/activities/"+activity.Id+"/review",
		`{"decision":"approved","note":"looks good"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	var fresh models.Activity
	require.NoError(t, database.DB.First(&fresh, "id = ?", activity.Id).Error)
	assert.Equal(t, models.ActivityApproved, fresh.Status)
	assert.Equal(t, 24, fresh.Points)
	assert.Equal(t, admin.Id, fresh.ReviewerId)
	assert.Equal(t, "looks good", fresh.ReviewNote)
	require.NotNil(t, fresh.ReviewedAt)

	var freshUser models.User
	require.NoError(t, database.DB.First(&freshUser, "id = ?", user.Id).Error)
	assert.Equal(t, 24, freshUser.Points)

	var ledger models.PointTransaction
	require.NoError(t, database.DB.First(&ledger, "user_id = ?", user.Id).Error)
	assert.Equal(t, 24, ledger.Delta)
	assert.Equal(t, models.ReasonActivityApproved, ledger.Reason)
	assert.Equal(t, activity.Id, ledger.ReferenceId)
}

func TestReviewActivityReject(t *testing.T) {
	resetTables(t)

	user := createUser(t, 0)
	admin := createUser(t, 0)
	activity := createActivity(t, user.Id, "cycling", 2)
	app := newTestApp(admin.Id, models.RoleAdmin)

	resp, _ := doJSON(t, app, "PATCH", "/api/admin/activities/"+activity.Id+"/review",
		`{"decision":"rejected","note":"no proof"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var fresh models.Activity
	require.NoError(t, database.DB.First(&fresh, "id = ?", activity.Id).Error)
	assert.Equal(t, models.ActivityRejected, fresh.Status)
	assert.Zero(t, fresh.Points)

	// rejection credits nothing
	var freshUser models.User
	require.NoError(t, database.DB.First(&freshUser, "id = ?", user.Id).Error)
	assert.Zero(t, freshUser.Points)

	var count int64
	database.DB.Model(&models.PointTransaction{}).Count(&count)
	assert.Zero(t, count)
}

func TestReviewActivityInvalidDecision(t *testing.T) {
	resetTables(t)

	user := createUser(t, 0)
	admin := createUser(t, 0)
	activity := createActivity(t, user.Id, "cycling", 2)
	app := newTestApp(admin.Id, models.RoleAdmin)

	resp, _ := doJSON(t, app, "PATCH", "/api/admin/activities/"+activity.Id+"/review",
		`{"decision":"maybe"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestReviewActivityUnknownId(t *testing.T) {
	resetTables(t)

	admin := createUser(t, 0)
	app := newTestApp(admin.Id, models.RoleAdmin)

	resp, _ := doJSON(t, app, "PATCH", "/api/admin/activities/00000000-0000-4000-8000-000000000000/review",
		`{"decision":"approved"}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestReviewActivityCreditsOnlyOnce(t *testing.T) {
	resetTables(t)

	user := createUser(t, 0)
	admin := createUser(t, 0)
	activity := createActivity(t, user.Id, "cycling", 2)
	app := newTestApp(admin.Id, models.RoleAdmin)

	resp, _ := doJSON(t, app, "PATCH", "/api/admin/activities/"+activity.Id+"/review",
		`{"decision":"approved"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// the pending->reviewed transition is one-shot; a repeat conflicts and
	// must not credit the balance a second time
	resp, body := doJSON(t, app, "PATCH", "/api/admin/activities/"+activity.Id+"/review",
		`{"decision":"approved"}`)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "activity already reviewed", body["message"])

	var freshUser models.User
	require.NoError(t, database.DB.First(&freshUser, "id = ?", user.Id).Error)
	assert.Equal(t, 24, freshUser.Points)

	var count int64
	database.DB.Model(&models.PointTransaction{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
