package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/models"
	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/repositories"
	"github.com/LEGENDANISH/UMS/internal/config"
	"github.com/LEGENDANISH/UMS/internal/core/domain"
	"github.com/LEGENDANISH/UMS/internal/pkg/jwt"
	"github.com/LEGENDANISH/UMS/internal/pkg/password"

	"gorm.io/gorm"
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo repositories.UserRepository
	audit    *AuditService
	cfg      *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, audit *AuditService, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		audit:    audit,
		cfg:      cfg,
	}
}

// ProfileInput carries the role-profile fields supplied at registration
type ProfileInput struct {
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	DateOfBirth     *time.Time `json:"date_of_birth,omitempty"`
	Gender          string     `json:"gender,omitempty"`
	Phone           string     `json:"phone,omitempty"`
	Address         string     `json:"address,omitempty"`
	RollNumber      string     `json:"roll_number,omitempty"`
	EmployeeID      string     `json:"employee_id,omitempty"`
	JoiningDate     *time.Time `json:"joining_date,omitempty"`
	Qualification   string     `json:"qualification,omitempty"`
	Specialization  string     `json:"specialization,omitempty"`
	Designation     string     `json:"designation,omitempty"`
	DepartmentID    *uint      `json:"department_id,omitempty"`
	CurrentSemester int        `json:"current_semester,omitempty"`
	CurrentYear     int        `json:"current_year,omitempty"`
}

// RegisterInput represents registration input
type RegisterInput struct {
	Email    string        `json:"email" validate:"required,email"`
	Password string        `json:"password" validate:"required,min=8"`
	Role     string        `json:"role" validate:"required"`
	Profile  *ProfileInput `json:"profile"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User  *models.UserResponse `json:"user"`
	Token string               `json:"token"`
}

// Register registers a new user with its role profile
func (s *AuthService) Register(ctx context.Context, input *RegisterInput, sourceIP string) (*models.UserResponse, error) {
	// 1. Validate the role against the closed set
	role, ok := domain.ParseRole(input.Role)
	if !ok {
		return nil, domain.ErrInvalidRole
	}

	// 2. Check email uniqueness
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	// 3. Hash password
	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    input.Email,
		Password: hashed,
		Role:     role.String(),
		IsActive: true,
	}

	// 4. Create user and profile in one transaction
	profile, err := buildProfile(role, input.Profile)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.CreateWithProfile(ctx, user, profile); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrUserAlreadyExists
		}
		return nil, err
	}

	// 5. Audit
	if err := s.audit.Record(ctx, &user.ID, ActionCreate, "User", user.ID,
		map[string]string{"role": user.Role}, sourceIP); err != nil {
		return nil, err
	}

	log.Printf("✅ User registered: %s [%s]", user.Email, user.Role)

	full, err := s.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return full.ToResponse(), nil
}

// buildProfile maps the registration input onto the role's profile record
func buildProfile(role domain.Role, input *ProfileInput) (interface{}, error) {
	if input == nil {
		return nil, domain.ErrInvalidInput
	}

	switch role {
	case domain.RoleStudent:
		return &models.Student{
			FirstName:       input.FirstName,
			LastName:        input.LastName,
			DateOfBirth:     input.DateOfBirth,
			Gender:          input.Gender,
			Phone:           input.Phone,
			Address:         input.Address,
			RollNumber:      input.RollNumber,
			DepartmentID:    input.DepartmentID,
			CurrentSemester: input.CurrentSemester,
			CurrentYear:     input.CurrentYear,
		}, nil
	case domain.RoleTeacher, domain.RoleClubCoordinator:
		// Club coordinators carry a teacher profile; clubs reference it
		return &models.Teacher{
			FirstName:      input.FirstName,
			LastName:       input.LastName,
			DateOfBirth:    input.DateOfBirth,
			Gender:         input.Gender,
			Phone:          input.Phone,
			EmployeeID:     input.EmployeeID,
			JoiningDate:    input.JoiningDate,
			Qualification:  input.Qualification,
			Specialization: input.Specialization,
			DepartmentID:   input.DepartmentID,
		}, nil
	case domain.RoleAdmin, domain.RoleManagement:
		return &models.Admin{
			FirstName:   input.FirstName,
			LastName:    input.LastName,
			Phone:       input.Phone,
			Designation: input.Designation,
		}, nil
	case domain.RoleLibrarian:
		return &models.Librarian{
			FirstName:  input.FirstName,
			LastName:   input.LastName,
			Phone:      input.Phone,
			EmployeeID: input.EmployeeID,
		}, nil
	default:
		return nil, domain.ErrInvalidRole
	}
}

// Login authenticates a user and issues a 7-day token.
// Unknown email, wrong password and an inactive account all yield the same
// invalid-credentials outcome; the distinction stays in server logs.
func (s *AuthService) Login(ctx context.Context, input *LoginInput, sourceIP string) (*AuthResponse, error) {
	return s.login(ctx, input, sourceIP, jwt.DefaultTTL, nil)
}

// StudentLogin is the alternate student login path. It issues a 1-day
// token and only accepts student accounts.
func (s *AuthService) StudentLogin(ctx context.Context, input *LoginInput, sourceIP string) (*AuthResponse, error) {
	allowed := []domain.Role{domain.RoleStudent}
	return s.login(ctx, input, sourceIP, jwt.StudentTTL, allowed)
}

// AdminLogin handles the admin login route. The break-glass bootstrap
// credential is evaluated first when enabled; otherwise only ADMIN and
// MANAGEMENT accounts may pass.
func (s *AuthService) AdminLogin(ctx context.Context, input *LoginInput, sourceIP string) (*AuthResponse, error) {
	if s.cfg.Bootstrap.Enabled &&
		(input.Email == s.cfg.Bootstrap.Email || input.Email == s.cfg.Bootstrap.Alias) &&
		input.Password == s.cfg.Bootstrap.Password {
		return s.bootstrapLogin(ctx, sourceIP)
	}

	allowed := []domain.Role{domain.RoleAdmin, domain.RoleManagement}
	return s.login(ctx, input, sourceIP, jwt.DefaultTTL, allowed)
}

// bootstrapLogin finds or lazily creates the built-in operator account.
// Repeated bootstrap logins reuse the same user row.
func (s *AuthService) bootstrapLogin(ctx context.Context, sourceIP string) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, s.cfg.Bootstrap.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		hashed, hashErr := password.Hash(s.cfg.Bootstrap.Password)
		if hashErr != nil {
			return nil, hashErr
		}
		user = &models.User{
			Email:    s.cfg.Bootstrap.Email,
			Password: hashed,
			Role:     domain.RoleAdmin.String(),
			IsActive: true,
		}
		if err := s.userRepo.CreateWithProfile(ctx, user, nil); err != nil {
			// Lost the creation race to a concurrent bootstrap login
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				user, err = s.userRepo.GetByEmail(ctx, s.cfg.Bootstrap.Email)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		} else {
			log.Printf("✅ Created bootstrap admin user: %s", user.Email)
		}
	}

	return s.issueFor(ctx, user, jwt.DefaultTTL, sourceIP)
}

// login runs the shared credential check and token issuance. When
// allowedRoles is non-empty, accounts outside it are denied after the
// password check.
func (s *AuthService) login(ctx context.Context, input *LoginInput, sourceIP string, ttl time.Duration, allowedRoles []domain.Role) (*AuthResponse, error) {
	// 1. Find user by email
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Inactive accounts never authenticate, password correctness aside
	if !user.IsActive {
		log.Printf("🛑 Login rejected for inactive account: %s", user.Email)
		return nil, domain.ErrInvalidCredentials
	}

	// 3. Verify password
	if !password.Verify(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	// 4. Role restriction for the specialised login routes
	if len(allowedRoles) > 0 {
		role, _ := domain.ParseRole(user.Role)
		if !role.In(allowedRoles...) {
			return nil, domain.ErrForbidden
		}
	}

	return s.issueFor(ctx, user, ttl, sourceIP)
}

// issueFor stamps the login, audits it and returns a signed token
func (s *AuthService) issueFor(ctx context.Context, user *models.User, ttl time.Duration, sourceIP string) (*AuthResponse, error) {
	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	if err := s.audit.Record(ctx, &user.ID, ActionLogin, "User", user.ID, nil, sourceIP); err != nil {
		return nil, err
	}

	token, err := jwt.Generate(user.ID, user.Role, s.cfg.JWT.Secret, ttl)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Email)

	return &AuthResponse{
		User:  user.ToResponse(),
		Token: token,
	}, nil
}

// ChangePasswordInput represents password change input
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// ChangePassword verifies the current password and stores a new hash
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, input *ChangePasswordInput) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !password.Verify(input.CurrentPassword, user.Password) {
		return domain.ErrInvalidPassword
	}

	if !password.ValidatePassword(input.NewPassword) {
		return domain.ErrInvalidInput
	}

	hashed, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(ctx, userID, hashed)
}

// GetUserByID gets a user with its role profile
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
