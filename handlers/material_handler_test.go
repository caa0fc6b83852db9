package handlers_test

import (
	"net/http"
	"testing"

	"github.com/asifrahman/collab_study/database"
	"github.com/asifrahman/collab_study/models"
	"github.com/gofiber/fiber/v2"
)

// A material upload and the parent session's hasMaterials/imageUrl/driveLink
// fields must land together.
func TestUploadMaterial_UpdatesParentSession(t *testing.T) {
	app := newTestApp(t)
	tutor := seedUser(t, "tutor@example.com", "tutor")
	session := seedSession(t, tutor.Email, "approved", 0)

	resp := doJSON(t, app, fiber.MethodPost, "/api/v1/materials", tokenFor(t, tutor), fiber.Map{
		"sessionId": session.ID.String(),
		"title":     "Week 1 slides",
		"imageUrl":  "https://cdn.example.com/slides.png",
		"driveLink": "https://drive.example.com/folder/abc",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var material models.Material
	decodeBody(t, resp, &material)
	if material.SessionID != session.ID || material.TutorEmail != tutor.Email {
		t.Errorf("material not linked to session/tutor: %+v", material)
	}

	reloaded := reloadSession(t, session.ID)
	if !reloaded.HasMaterials {
		t.Errorf("session hasMaterials not set")
	}
	if reloaded.ImageURL != "https://cdn.example.com/slides.png" {
		t.Errorf("session imageUrl not updated, got %q", reloaded.ImageURL)
	}
	if reloaded.DriveLink != "https://drive.example.com/folder/abc" {
		t.Errorf("session driveLink not updated, got %q", reloaded.DriveLink)
	}
}

// A second upload to the same session wins the denormalized fields.
func TestUploadMaterial_LatestUploadWinsDenorm(t *testing.T) {
	app := newTestApp(t)
	tutor := seedUser(t, "tutor@example.com", "tutor")
	session := seedSession(t, tutor.Email, "approved", 0)
	token := tokenFor(t, tutor)

	doJSON(t, app, fiber.MethodPost, "/api/v1/materials", token, fiber.Map{
		"sessionId": session.ID.String(),
		"title":     "First upload",
		"imageUrl":  "https://cdn.example.com/first.png",
	})
	doJSON(t, app, fiber.MethodPost, "/api/v1/materials", token, fiber.Map{
		"sessionId": session.ID.String(),
		"title":     "Second upload",
		"imageUrl":  "https://cdn.example.com/second.png",
		"driveLink": "https://drive.example.com/second",
	})

	reloaded := reloadSession(t, session.ID)
	if reloaded.ImageURL != "https://cdn.example.com/second.png" {
		t.Errorf("expected the latest upload's imageUrl, got %q", reloaded.ImageURL)
	}
}

func TestUploadMaterial_OnlyApprovedSessions(t *testing.T) {
	app := newTestApp(t)
	tutor := seedUser(t, "tutor@example.com", "tutor")
	session := seedSession(t, tutor.Email, "pending", 0)

	resp := doJSON(t, app, fiber.MethodPost, "/api/v1/materials", tokenFor(t, tutor), fiber.Map{
		"sessionId": session.ID.String(),
		"title":     "Too early",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for an unapproved session, got %d", resp.StatusCode)
	}

	// the rejected transaction must leave no trace
	var n int64
	if err := database.DB.Model(&models.Material{}).Count(&n).Error; err != nil {
		t.Fatalf("count materials: %v", err)
	}
	if n != 0 {
		t.Errorf("expected no materials, got %d", n)
	}
	if reloadSession(t, session.ID).HasMaterials {
		t.Errorf("session hasMaterials must stay false")
	}
}

func TestUploadMaterial_OwnerOnly(t *testing.T) {
	app := newTestApp(t)
	owner := seedUser(t, "owner@example.com", "tutor")
	other := seedUser(t, "other@example.com", "tutor")
	session := seedSession(t, owner.Email, "approved", 0)

	resp := doJSON(t, app, fiber.MethodPost, "/api/v1/materials", tokenFor(t, other), fiber.Map{
		"sessionId": session.ID.String(),
		"title":     "Not mine",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestUpdateMaterial_OwnerOnly(t *testing.T) {
	app := newTestApp(t)
	owner := seedUser(t, "owner@example.com", "tutor")
	other := seedUser(t, "other@example.com", "tutor")
	session := seedSession(t, owner.Email, "approved", 0)

	resp := doJSON(t, app, fiber.MethodPost, "/api/v1/materials", tokenFor(t, owner), fiber.Map{
		"sessionId": session.ID.String(),
		"title":     "Original title",
	})
	var material models.Material
	decodeBody(t, resp, &material)

	resp = doJSON(t, app, fiber.MethodPatch, "/api/v1/materials/"+material.ID.String(), tokenFor(t, other), fiber.Map{
		"title": "Hijacked",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, fiber.MethodPatch, "/api/v1/materials/"+material.ID.String(), tokenFor(t, owner), fiber.Map{
		"title": "Renamed",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	decodeBody(t, resp, &material)
	if material.Title != "Renamed" {
		t.Errorf("expected title Renamed, got %q", material.Title)
	}
}

func TestDeleteMaterial_AdminOrOwner(t *testing.T) {
	app := newTestApp(t)
	owner := seedUser(t, "owner@example.com", "tutor")
	other := seedUser(t, "other@example.com", "tutor")
	admin := seedUser(t, "admin@example.com", "admin")
	session := seedSession(t, owner.Email, "approved", 0)

	upload := func() models.Material {
		resp := doJSON(t, app, fiber.MethodPost, "/api/v1/materials", tokenFor(t, owner), fiber.Map{
			"sessionId": session.ID.String(),
			"title":     "Disposable",
		})
		var m models.Material
		decodeBody(t, resp, &m)
		return m
	}

	m := upload()
	if resp := doJSON(t, app, fiber.MethodDelete, "/api/v1/materials/"+m.ID.String(), tokenFor(t, other), nil); resp.StatusCode != http.StatusForbidden {
		t.Errorf("stranger delete: expected 403, got %d", resp.StatusCode)
	}
	if resp := doJSON(t, app, fiber.MethodDelete, "/api/v1/materials/"+m.ID.String(), tokenFor(t, owner), nil); resp.StatusCode != http.StatusNoContent {
		t.Errorf("owner delete: expected 204, got %d", resp.StatusCode)
	}

	m = upload()
	if resp := doJSON(t, app, fiber.MethodDelete, "/api/v1/materials/"+m.ID.String(), tokenFor(t, admin), nil); resp.StatusCode != http.StatusNoContent {
		t.Errorf("admin delete: expected 204, got %d", resp.StatusCode)
	}
}

func TestListMaterials_Filters(t *testing.T) {
	app := newTestApp(t)
	tutor := seedUser(t, "tutor@example.com", "tutor")
	other := seedUser(t, "other@example.com", "tutor")
	sessionA := seedSession(t, tutor.Email, "approved", 0)
	sessionB := seedSession(t, other.Email, "approved", 0)

	doJSON(t, app, fiber.MethodPost, "/api/v1/materials", tokenFor(t, tutor), fiber.Map{
		"sessionId": sessionA.ID.String(), "title": "A material",
	})
	doJSON(t, app, fiber.MethodPost, "/api/v1/materials", tokenFor(t, other), fiber.Map{
		"sessionId": sessionB.ID.String(), "title": "B material",
	})

	resp := doJSON(t, app, fiber.MethodGet, "/api/v1/materials?tutorEmail="+tutor.Email, "", nil)
	var materials []models.Material
	decodeBody(t, resp, &materials)
	if len(materials) != 1 || materials[0].TutorEmail != tutor.Email {
		t.Fatalf("tutorEmail filter failed: %+v", materials)
	}

	resp = doJSON(t, app, fiber.MethodGet, "/api/v1/materials?sessionId="+sessionB.ID.String(), "", nil)
	decodeBody(t, resp, &materials)
	if len(materials) != 1 || materials[0].SessionID != sessionB.ID {
		t.Fatalf("sessionId filter failed: %+v", materials)
	}
}
