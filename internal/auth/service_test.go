package auth

import (
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

// Mock UserRepository for testing
type mockUserRepository struct {
	hashes map[string]string
	roles  map[string]string
	users  map[string]*User
}

func newMockUserRepository() *mockUserRepository {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.MinCost)

	return &mockUserRepository{
		hashes: map[string]string{
			"EMP-001": string(hashedPassword),
			"ADM-001": string(hashedPassword),
		},
		roles: map[string]string{
			"EMP-001": "mechanic_technician",
			"ADM-001": "administrator",
		},
		users: map[string]*User{
			"EMP-001": {ID: "EMP-001", Name: "Carlos Mendoza", Role: "mechanic_technician", Permissions: []string{"checkout_tool", "use_loto"}},
			"ADM-001": {ID: "ADM-001", Name: "Rosa Quispe", Role: "administrator", Permissions: []string{"manage_tools", "manage_users"}},
		},
	}
}

func (m *mockUserRepository) GetCredentials(userID string) (string, string, error) {
	hash, ok := m.hashes[userID]
	if !ok {
		return "", "", internal.ErrUserNotFound
	}
	return hash, m.roles[userID], nil
}

func (m *mockUserRepository) GetUser(userID string) (*User, error) {
	u, ok := m.users[userID]
	if !ok {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service  *Service
		mockRepo *mockUserRepository
		tokenGen *JWTTokenGenerator
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		tokenGen = NewJWTTokenGenerator("test-access-secret", "test-refresh-secret", 15*time.Minute, 24*time.Hour)
		service = NewService(mockRepo, tokenGen)
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.Context("when credentials are valid", func() {
			ginkgo.It("should return access and refresh tokens", func() {
				tokens, err := service.Authenticate(LoginDTO{
					UserID:   "EMP-001",
					Password: "correct_password",
				})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(tokens.AccessToken).ToNot(gomega.BeEmpty())
				gomega.Expect(tokens.RefreshToken).ToNot(gomega.BeEmpty())
				gomega.Expect(tokens.AccessToken).ToNot(gomega.Equal(tokens.RefreshToken))
			})

			ginkgo.It("should embed the user's role in the access token", func() {
				tokens, err := service.Authenticate(LoginDTO{
					UserID:   "ADM-001",
					Password: "correct_password",
				})
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				claims, err := service.ValidateAccessToken(tokens.AccessToken)

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(claims.UserID).To(gomega.Equal("ADM-001"))
				gomega.Expect(claims.Role).To(gomega.Equal("administrator"))
			})
		})

		ginkgo.Context("when credentials are invalid", func() {
			ginkgo.It("should reject a wrong password", func() {
				_, err := service.Authenticate(LoginDTO{
					UserID:   "EMP-001",
					Password: "wrong_password",
				})

				gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidCredentials))
			})

			ginkgo.It("should reject an unknown user with the same error", func() {
				_, err := service.Authenticate(LoginDTO{
					UserID:   "EMP-999",
					Password: "correct_password",
				})

				gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidCredentials))
			})

			ginkgo.It("should reject an empty password before touching the store", func() {
				_, err := service.Authenticate(LoginDTO{UserID: "EMP-001"})

				gomega.Expect(err).To(gomega.HaveOccurred())
				appErr, ok := internal.IsAppError(err)
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeValidation))
			})
		})
	})

	ginkgo.Describe("RefreshTokens", func() {
		ginkgo.It("should issue a new token pair from a valid refresh token", func() {
			tokens, err := service.Authenticate(LoginDTO{
				UserID:   "EMP-001",
				Password: "correct_password",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			refreshed, err := service.RefreshTokens(tokens.RefreshToken)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(refreshed.AccessToken).ToNot(gomega.BeEmpty())

			claims, err := service.ValidateAccessToken(refreshed.AccessToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.UserID).To(gomega.Equal("EMP-001"))
		})

		ginkgo.It("should reject a garbage token", func() {
			_, err := service.RefreshTokens("not-a-token")

			gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidToken))
		})
	})

	ginkgo.Describe("ValidateAccessToken", func() {
		ginkgo.It("should reject an expired token", func() {
			shortGen := NewJWTTokenGenerator("test-access-secret", "test-refresh-secret", -time.Minute, 24*time.Hour)
			expired, err := shortGen.GenerateAccessToken("EMP-001", "operator")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.ValidateAccessToken(expired)

			gomega.Expect(err).To(gomega.Equal(internal.ErrTokenExpired))
		})

		ginkgo.It("should reject a token signed with another secret", func() {
			otherGen := NewJWTTokenGenerator("other-secret", "other-refresh", 15*time.Minute, 24*time.Hour)
			forged, err := otherGen.GenerateAccessToken("EMP-001", "administrator")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.ValidateAccessToken(forged)

			gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidToken))
		})
	})

	ginkgo.Describe("LoadUser", func() {
		ginkgo.It("should resolve the principal with role permissions", func() {
			u, err := service.LoadUser("EMP-001")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(u.Name).To(gomega.Equal("Carlos Mendoza"))
			gomega.Expect(u.HasPermission("checkout_tool")).To(gomega.BeTrue())
			gomega.Expect(u.HasPermission("manage_users")).To(gomega.BeFalse())
		})
	})
})
