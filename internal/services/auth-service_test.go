package services

import (
	"testing"

	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/domain"
	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/dto"
	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/helper"
	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/status"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	userRepo     *fakeUserRepo
	wfRepo       *fakeWorkflowRepo
	roleRepo     *fakeRoleRepo
	userRoleRepo *fakeUserRoleRepo
	svc          AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		userRepo:     newFakeUserRepo(),
		wfRepo:       newFakeWorkflowRepo(),
		roleRepo:     newFakeRoleRepo(),
		userRoleRepo: newFakeUserRoleRepo(),
	}
	f.svc = NewAuthService(f.userRepo, f.wfRepo, f.roleRepo, f.userRoleRepo, helper.SetupAuth("test-secret"))
	return f
}

// googleToken builds an upstream ID token; the service reads its claims
// without verifying the signature, so any signing key works here.
func googleToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("upstream"))
	require.NoError(t, err)
	return raw
}

func TestGoogleAuthRejectsMissingToken(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.GoogleAuth("", dto.GoogleAuthRequest{})
	assert.ErrorContains(t, err, "missing authorization header")

	_, err = f.svc.GoogleAuth("Bearer   ", dto.GoogleAuthRequest{})
	assert.ErrorContains(t, err, "missing bearer token")
}

func TestGoogleAuthFirstLoginProvisionsStudent(t *testing.T) {
	f := newAuthFixture()
	header := "Bearer " + googleToken(t, jwt.MapClaims{
		"sub":   "g-sub-1",
		"email": "Amal@Example.com",
		"name":  "Amal",
	})

	resp, err := f.svc.GoogleAuth(header, dto.GoogleAuthRequest{})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "g-sub-1", resp.User.GoogleID)
	assert.Equal(t, "amal@example.com", resp.User.Email)
	assert.Equal(t, string(status.NewUser), resp.User.Status)

	// the new account carries the STUDENT role and a fresh workflow
	assert.Equal(t, []uint{1}, f.userRoleRepo.assigned[resp.User.ID])
	wf, err := f.wfRepo.FindByUserID(resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, status.NewUser, wf.Status)
}

func TestGoogleAuthUserDataOverridesTokenClaims(t *testing.T) {
	f := newAuthFixture()
	header := "Bearer " + googleToken(t, jwt.MapClaims{
		"sub":     "g-sub-2",
		"email":   "stale@example.com",
		"name":    "Stale Name",
		"picture": "https://cdn.example.com/stale.png",
	})

	resp, err := f.svc.GoogleAuth(header, dto.GoogleAuthRequest{
		UserData: &dto.GoogleUserData{
			Name:    "Maya",
			Email:   "Maya@Example.com",
			Picture: "https://cdn.example.com/maya.png",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "g-sub-2", resp.User.GoogleID)
	assert.Equal(t, "maya@example.com", resp.User.Email)
	assert.Equal(t, "Maya", resp.User.Name)
	require.NotNil(t, resp.User.Picture)
	assert.Equal(t, "https://cdn.example.com/maya.png", *resp.User.Picture)
}

func TestGoogleAuthSecondLoginReusesAccount(t *testing.T) {
	f := newAuthFixture()
	header := "Bearer " + googleToken(t, jwt.MapClaims{
		"sub":   "g-sub-3",
		"email": "repeat@example.com",
	})

	first, err := f.svc.GoogleAuth(header, dto.GoogleAuthRequest{})
	require.NoError(t, err)

	second, err := f.svc.GoogleAuth(header, dto.GoogleAuthRequest{})
	require.NoError(t, err)

	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Len(t, f.userRepo.users, 1)
}

func TestGoogleAuthDuplicateCreateRecovers(t *testing.T) {
	f := newAuthFixture()

	// a concurrent first login wins the unique google_sub insert; it has
	// already provisioned the workflow by the time we retry the lookup
	f.userRepo.createErr = &pgconn.PgError{Code: "23505"}
	f.wfRepo.seed(1, status.NewUser)

	header := "Bearer " + googleToken(t, jwt.MapClaims{
		"sub":   "g-sub-4",
		"email": "racer@example.com",
	})

	resp, err := f.svc.GoogleAuth(header, dto.GoogleAuthRequest{})
	require.NoError(t, err)

	assert.Equal(t, uint(1), resp.User.ID)
	assert.Equal(t, "g-sub-4", resp.User.GoogleID)
	assert.Len(t, f.userRepo.users, 1)
}

func TestAdminLoginRequiresAdminRole(t *testing.T) {
	f := newAuthFixture()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user, err := f.userRepo.CreateUser(&domain.User{
		Email:        "ops@example.com",
		PasswordHash: string(hash),
		Name:         "Ops",
	})
	require.NoError(t, err)

	_, err = f.svc.AdminLogin(dto.AdminLoginRequest{Email: "ops@example.com", Password: "s3cret-pass"})
	assert.ErrorContains(t, err, "admin only")

	require.NoError(t, f.userRoleRepo.ReplaceUserRoles(user.ID, []uint{2}))

	token, err := f.svc.AdminLogin(dto.AdminLoginRequest{Email: "Ops@Example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = f.svc.AdminLogin(dto.AdminLoginRequest{Email: "ops@example.com", Password: "wrong"})
	assert.ErrorContains(t, err, "invalid email or password")
}
