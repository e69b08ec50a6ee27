package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/domain"
	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/dto"
	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/helper"
	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/repository"
	"github.com/golang-jwt/jwt/v5"
)

type AuthService interface {
	GoogleAuth(authHeader string, input dto.GoogleAuthRequest) (*dto.GoogleAuthResponse, error)
	AdminLogin(input dto.AdminLoginRequest) (string, error)
	IsAdmin(userID uint) (bool, error)
}

type authService struct {
	repo         repository.UserRepository
	wfRepo       repository.WorkflowRepository
	roleRepo     repository.RoleRepository
	userRoleRepo repository.UserRoleRepository
	auth         helper.Auth
}

func NewAuthService(
	repo repository.UserRepository,
	wfRepo repository.WorkflowRepository,
	roleRepo repository.RoleRepository,
	userRoleRepo repository.UserRoleRepository,
	auth helper.Auth,
) AuthService {
	return &authService{
		repo:         repo,
		wfRepo:       wfRepo,
		roleRepo:     roleRepo,
		userRoleRepo: userRoleRepo,
		auth:         auth,
	}
}

// GoogleAuth handles the Firebase token exchange. The upstream token is
// not re-verified here; the gateway already did that. We only pull the
// sub/email claims out and fall back to the optional userData body.
func (s *authService) GoogleAuth(authHeader string, input dto.GoogleAuthRequest) (*dto.GoogleAuthResponse, error) {
	raw := strings.TrimSpace(authHeader)
	if raw == "" {
		return nil, errors.New("missing authorization header")
	}
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		raw = strings.TrimSpace(raw[len("bearer "):])
	}
	if raw == "" {
		return nil, errors.New("missing bearer token")
	}

	sub, email, name, picture := claimsFromToken(raw)
	if input.UserData != nil {
		if input.UserData.Email != "" {
			email = strings.TrimSpace(strings.ToLower(input.UserData.Email))
		}
		if input.UserData.Name != "" {
			name = strings.TrimSpace(input.UserData.Name)
		}
		if input.UserData.Picture != "" {
			picture = input.UserData.Picture
		}
	}
	if sub == "" && email == "" {
		return nil, errors.New("token carries no identity")
	}
	if sub == "" {
		sub = email
	}

	user, err := s.findOrCreateStudent(sub, email, name, picture)
	if err != nil {
		return nil, err
	}

	wf, err := s.wfRepo.FindByUserID(user.ID)
	if err != nil {
		return nil, errors.New("workflow not found")
	}

	token, err := s.auth.GenerateToken(int(user.ID), user.Email)
	if err != nil {
		return nil, err
	}

	return &dto.GoogleAuthResponse{
		Success: true,
		User: dto.GoogleAuthUser{
			ID:        user.ID,
			GoogleID:  sub,
			Name:      user.Name,
			Email:     user.Email,
			Picture:   user.Picture,
			Status:    string(wf.Status),
			CreatedAt: user.CreatedAt.Format(time.RFC3339),
		},
		Token: token,
	}, nil
}

func (s *authService) findOrCreateStudent(sub, email, name, picture string) (*domain.User, error) {
	if user, err := s.repo.FindUserByGoogleSub(sub); err == nil && user != nil {
		return user, nil
	}
	if email != "" {
		if user, err := s.repo.FindUserByEmail(email); err == nil && user != nil {
			if user.GoogleSub == nil {
				user.GoogleSub = &sub
				if err := s.repo.SaveUser(user); err != nil {
					return nil, err
				}
			}
			return user, nil
		}
	}

	newUser := &domain.User{
		Email:     email,
		GoogleSub: &sub,
		Name:      name,
	}
	if picture != "" {
		newUser.Picture = &picture
	}

	user, err := s.repo.CreateUser(newUser)
	if err != nil {
		// concurrent first logins race on the unique google_sub
		if helper.IsDuplicateKey(err) {
			return s.repo.FindUserByGoogleSub(sub)
		}
		return nil, err
	}

	role, err := s.roleRepo.FindByCode(domain.RoleStudent)
	if err != nil {
		return nil, err
	}
	if err := s.userRoleRepo.ReplaceUserRoles(user.ID, []uint{role.ID}); err != nil {
		return nil, err
	}

	// first login starts the lifecycle at NEW_USER
	if _, err := s.wfRepo.CreateWorkflow(user.ID); err != nil {
		return nil, fmt.Errorf("create workflow: %w", err)
	}

	log.Printf("created student %d (%s)", user.ID, user.Email)
	return user, nil
}

func (s *authService) AdminLogin(input dto.AdminLoginRequest) (string, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := strings.TrimSpace(input.Password)

	if email == "" || password == "" {
		return "", errors.New("invalid email or password")
	}

	user, err := s.repo.FindUserByEmail(email)
	if err != nil || user == nil || user.ID == 0 {
		return "", errors.New("invalid email or password")
	}

	if err := s.auth.VerifyPassword(password, user.PasswordHash); err != nil {
		return "", errors.New("invalid email or password")
	}

	isAdmin, err := s.IsAdmin(user.ID)
	if err != nil {
		return "", err
	}
	if !isAdmin {
		return "", errors.New("admin only")
	}

	return s.auth.GenerateToken(int(user.ID), user.Email)
}

func (s *authService) IsAdmin(userID uint) (bool, error) {
	if userID == 0 {
		return false, errors.New("invalid user id")
	}
	return s.userRoleRepo.UserHasRole(userID, domain.RoleAdmin)
}

// claimsFromToken pulls identity claims without verifying the signature.
func claimsFromToken(raw string) (sub, email, name, picture string) {
	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return "", "", "", ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", "", ""
	}
	if v, ok := claims["sub"].(string); ok {
		sub = v
	}
	if v, ok := claims["email"].(string); ok {
		email = strings.ToLower(v)
	}
	if v, ok := claims["name"].(string); ok {
		name = v
	}
	if v, ok := claims["picture"].(string); ok {
		picture = v
	}
	return sub, email, name, picture
}
