package service_test

import (
	"errors"
	"testing"

	"github.com/tlecomte/finance-tracker-backend/internal/apperrors"
	"github.com/tlecomte/finance-tracker-backend/internal/testutil"
)

// TestUserService_CreateUser tests user provisioning.
func TestUserService_CreateUser(t *testing.T) {
	t.Run("creates a user with a generated ID", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestUserService(t, db)

		// Execute
		user, err := svc.CreateUser("alice@example.com", "Alice")

		// Assert
		if err != nil {
			t.Fatalf("CreateUser() returned unexpected error: %v", err)
		}
		if user.ID == "" {
			t.Error("Expected a generated user ID")
		}
		if user.Email != "alice@example.com" || user.Name != "Alice" {
			t.Errorf("Unexpected user: %+v", user)
		}
		testutil.AssertRowCount(t, db, "user", 1)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestUserService(t, db)

		if _, err := svc.CreateUser("alice@example.com", "Alice"); err != nil {
			t.Fatalf("CreateUser() returned unexpected error: %v", err)
		}

		// Execute
		_, err := svc.CreateUser("alice@example.com", "Someone Else")

		// Assert
		if err == nil {
			t.Error("Expected an error for a duplicate email")
		}
		testutil.AssertRowCount(t, db, "user", 1)
	})
}

// TestUserService_GetUser tests identity resolution.
func TestUserService_GetUser(t *testing.T) {
	t.Run("returns the stored user", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestUserService(t, db)
		created := testutil.CreateUser(t, db)

		// Execute
		user, err := svc.GetUser(created.ID)

		// Assert
		if err != nil {
			t.Fatalf("GetUser() returned unexpected error: %v", err)
		}
		if user.ID != created.ID || user.Email != created.Email {
			t.Errorf("Expected user %+v, got %+v", created, user)
		}
	})

	t.Run("returns ErrUserNotFound for an unknown ID", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestUserService(t, db)

		// Execute
		_, err := svc.GetUser(testutil.MakeID())

		// Assert
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			t.Errorf("Expected ErrUserNotFound, got %v", err)
		}
	})
}

// TestSystemService_CheckHealth tests the database health probe.
func TestSystemService_CheckHealth(t *testing.T) {
	t.Run("healthy database passes", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSystemService(t, db)

		// Execute
		err := svc.CheckHealth()

		// Assert
		if err != nil {
			t.Errorf("CheckHealth() returned unexpected error: %v", err)
		}
	})

	t.Run("closed database fails", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSystemService(t, db)
		db.Close()

		// Execute
		err := svc.CheckHealth()

		// Assert
		if err == nil {
			t.Error("Expected an error for a closed database")
		}
	})
}
