package user

import "golang.org/x/crypto/bcrypt"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(id int) (User, error) {
	return s.repo.GetByID(id)
}

// Register creates a customer account with a bcrypt-hashed password.
// Duplicate emails are rejected before the insert so the handler can map
// the failure to a conflict response.
func (s *Service) Register(u User) (User, error) {
	if _, err := s.repo.GetByEmail(u.Email); err == nil {
		return User{}, ErrEmailExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	u.Password = string(hashed)
	if u.Role == "" {
		u.Role = RoleCustomer
	}
	u.IsActive = true
	return s.repo.Create(u)
}

// Authenticate verifies credentials against the stored hash, refuses
// deactivated accounts, and stamps last_login on success.
func (s *Service) Authenticate(email, password string) (User, error) {
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	if !u.IsActive {
		return User{}, ErrAccountDisabled
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}

	if err := s.repo.TouchLastLogin(u.ID); err != nil {
		// login still succeeds; the stamp is best-effort
		return u, nil
	}
	return u, nil
}

// UpdateProfile applies only the profile fields a customer may change.
func (s *Service) UpdateProfile(id int, name, phone *string, addresses []Address) (User, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return User{}, err
	}
	if name != nil {
		existing.Name = *name
	}
	if phone != nil {
		existing.Phone = *phone
	}
	if addresses != nil {
		existing.Addresses = addresses
	}
	return s.repo.Update(id, existing)
}

func (s *Service) ChangePassword(id int, current, next string) error {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(current)) != nil {
		return ErrInvalidCredentials
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(id, string(hashed))
}
