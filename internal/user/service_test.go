package user

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestRegister(t *testing.T) {
	service := NewService(NewInMemoryRepository(nil))

	created, err := service.Register(User{Name: "Priya", Email: "priya@example.com", Password: "Sneaker99"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if created.Role != RoleCustomer {
		t.Fatalf("expected default customer role, got %q", created.Role)
	}
	if !created.IsActive {
		t.Fatalf("expected new account active")
	}
	if created.Password == "Sneaker99" {
		t.Fatalf("password stored in plaintext")
	}
	if bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("Sneaker99")) != nil {
		t.Fatalf("stored hash does not match the password")
	}

	// same email again
	if _, err := service.Register(User{Name: "Other", Email: "priya@example.com", Password: "Other1234"}); err != ErrEmailExists {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

// blindRepo simulates the window where a concurrent registration has not
// committed yet: the email lookup misses, so only the insert can catch the
// duplicate.
type blindRepo struct {
	*InMemoryRepository
}

func (r *blindRepo) GetByEmail(string) (User, error) { return User{}, ErrNotFound }

func TestRegister_RacingDuplicateStillConflicts(t *testing.T) {
	service := NewService(&blindRepo{NewInMemoryRepository(nil)})

	if _, err := service.Register(User{Name: "Priya", Email: "priya@example.com", Password: "Sneaker99"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := service.Register(User{Name: "Other", Email: "priya@example.com", Password: "Other1234"}); err != ErrEmailExists {
		t.Fatalf("expected ErrEmailExists from the insert, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	service := NewService(NewInMemoryRepository(nil))
	service.Register(User{Name: "Priya", Email: "priya@example.com", Password: "Sneaker99"})

	u, err := service.Authenticate("priya@example.com", "Sneaker99")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if u.LastLogin == nil {
		t.Fatalf("expected last login stamped")
	}

	if _, err := service.Authenticate("priya@example.com", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := service.Authenticate("ghost@example.com", "Sneaker99"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestAuthenticate_DisabledAccount(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("Sneaker99"), bcrypt.DefaultCost)
	repo := NewInMemoryRepository([]User{
		{ID: 1, Email: "banned@example.com", Password: string(hashed), IsActive: false},
	})
	service := NewService(repo)

	if _, err := service.Authenticate("banned@example.com", "Sneaker99"); err != ErrAccountDisabled {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestUpdateProfile_PartialFields(t *testing.T) {
	service := NewService(NewInMemoryRepository(nil))
	created, _ := service.Register(User{Name: "Priya", Email: "priya@example.com", Password: "Sneaker99"})

	phone := "9876543210"
	updated, err := service.UpdateProfile(created.ID, nil, &phone, nil)
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Name != "Priya" {
		t.Fatalf("expected name untouched, got %q", updated.Name)
	}
	if updated.Phone != "9876543210" {
		t.Fatalf("expected phone updated, got %q", updated.Phone)
	}

	// password must survive a profile update
	if _, err := service.Authenticate("priya@example.com", "Sneaker99"); err != nil {
		t.Fatalf("authenticate after profile update: %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	service := NewService(NewInMemoryRepository(nil))
	created, _ := service.Register(User{Name: "Priya", Email: "priya@example.com", Password: "Sneaker99"})

	if err := service.ChangePassword(created.ID, "nope", "NewSecret1"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong current password, got %v", err)
	}

	if err := service.ChangePassword(created.ID, "Sneaker99", "NewSecret1"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, err := service.Authenticate("priya@example.com", "NewSecret1"); err != nil {
		t.Fatalf("authenticate with new password: %v", err)
	}
	if _, err := service.Authenticate("priya@example.com", "Sneaker99"); err != ErrInvalidCredentials {
		t.Fatalf("old password should be rejected, got %v", err)
	}
}
