package auth

import (
	"context"
	"errors"
	"os"
	"time"

	autherrors "go-attendgate/internal/auth/errors"
	"go-attendgate/internal/employee"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, icNumber, password string) (TokenPairResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenPairResponse, error)
	GetMe(ctx context.Context, employeeID string) (*AuthResponse, error)
	// IssueToken dipakai jalur face verification: berhasil verify = sesi baru.
	IssueToken(empl *employee.Employee) (string, error)
}

type service struct {
	employees employee.Repository
}

func NewService(employees employee.Repository) Service {
	return &service{employees: employees}
}

func (s *service) Login(ctx context.Context, icNumber, password string) (TokenPairResponse, error) {
	empl, err := s.employees.FindActiveByICNumber(ctx, icNumber)
	if err != nil {
		// Jangan bedakan "tidak ada" dan "password salah" ke caller.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenPairResponse{}, autherrors.ErrInvalidCredentials
		}
		return TokenPairResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(empl.PasswordHash), []byte(password)); err != nil {
		return TokenPairResponse{}, autherrors.ErrInvalidCredentials
	}

	return s.issueTokenPair(empl)
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (TokenPairResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return TokenPairResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenPairResponse{}, autherrors.ErrInvalidToken
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return TokenPairResponse{}, autherrors.ErrInvalidToken
	}

	empl, err := s.employees.FindActiveByID(ctx, employeeID)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrInvalidRefreshToken
	}

	return s.issueTokenPair(empl)
}

func (s *service) GetMe(ctx context.Context, employeeID string) (*AuthResponse, error) {
	empl, err := s.employees.FindActiveByID(ctx, employeeID)
	if err != nil {
		return nil, autherrors.ErrInvalidToken
	}

	resp := mapToAuthResponse(empl)
	return &resp, nil
}

func (s *service) IssueToken(empl *employee.Employee) (string, error) {
	return generateToken(empl, 15*time.Minute)
}

func (s *service) issueTokenPair(empl *employee.Employee) (TokenPairResponse, error) {
	accessToken, err := generateToken(empl, 15*time.Minute)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrTokenGenerationFailed
	}

	refreshToken, err := generateToken(empl, 7*24*time.Hour)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Profile:      mapToAuthResponse(empl),
	}, nil
}

func generateToken(empl *employee.Employee, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"employee_id": empl.ID.String(),
		"role":        empl.Role,
		"exp":         time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapToAuthResponse(empl *employee.Employee) AuthResponse {
	return AuthResponse{
		EmployeeID:   empl.ID.String(),
		EmployeeCode: empl.EmployeeCode,
		FullName:     empl.FullName,
		Role:         empl.Role,
	}
}
