package auth

import (
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Service struct {
	repo UserRepository
}

func NewService(repo UserRepository) *Service {
	return &Service{repo: repo}
}

// LOGIN
func (s *Service) Login(email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword(
		[]byte(user.Password),
		[]byte(password),
	)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// SEED ADMIN
//
// There is no self-service signup. The single reviewer account comes
// from ADMIN_EMAIL / ADMIN_PASSWORD at boot; re-running against an
// already-seeded database is a no-op.
func (s *Service) SeedAdmin() error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	exists, err := s.repo.ExistsByEmail(email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(
		[]byte(password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return err
	}

	user := &User{
		Name:     "Administrator",
		Email:    email,
		Password: string(hashedPassword),
		Role:     RoleAdmin,
	}

	if err := s.repo.Save(user); err != nil {
		return err
	}

	log.Printf("✅ Seeded admin account %s", email)
	return nil
}
