package user

import (
	"io"
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal"
)

func TestUser(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "User Module Suite")
}

type mockRepository struct {
	users map[string]*User
}

func newMockRepository() *mockRepository {
	return &mockRepository{users: make(map[string]*User)}
}

func (m *mockRepository) Create(u *User) error {
	copied := *u
	m.users[u.ID] = &copied
	return nil
}

func (m *mockRepository) GetByID(id string) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, internal.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockRepository) List() ([]*User, error) {
	var result []*User
	for _, u := range m.users {
		result = append(result, u)
	}
	return result, nil
}

func (m *mockRepository) Save(u *User) error {
	copied := *u
	m.users[u.ID] = &copied
	return nil
}

func (m *mockRepository) Delete(id string) error {
	if _, ok := m.users[id]; !ok {
		return internal.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

var _ = ginkgo.Describe("UserService", func() {
	var (
		service *Service
		repo    *mockRepository
	)

	ginkgo.BeforeEach(func() {
		repo = newMockRepository()
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		service = NewService(repo, bcrypt.MinCost, logger)
	})

	ginkgo.Describe("Create", func() {
		ginkgo.It("should store the user with a hashed password", func() {
			u, err := service.Create(CreateUserDTO{
				ID:          "EMP-001",
				Name:        "Carlos Mendoza",
				Role:        "administrator",
				Password:    "secreto-taller",
				AccessZones: []string{"*"},
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(u.PasswordHash).ToNot(gomega.Equal("secreto-taller"))
			gomega.Expect(bcrypt.CompareHashAndPassword(
				[]byte(u.PasswordHash), []byte("secreto-taller"))).To(gomega.Succeed())
		})

		ginkgo.It("should reject a duplicate id", func() {
			_, err := service.Create(CreateUserDTO{
				ID: "EMP-001", Name: "Carlos Mendoza", Role: "operator", Password: "secreto-taller",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.Create(CreateUserDTO{
				ID: "EMP-001", Name: "Otro Usuario", Role: "operator", Password: "secreto-taller",
			})

			gomega.Expect(err).To(gomega.Equal(internal.ErrUserAlreadyRegistered))
		})

		ginkgo.It("should reject an unknown role", func() {
			_, err := service.Create(CreateUserDTO{
				ID: "EMP-002", Name: "Lucía Paredes", Role: "intern", Password: "secreto-taller",
			})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeValidation))
		})

		ginkgo.It("should reject a short password", func() {
			_, err := service.Create(CreateUserDTO{
				ID: "EMP-002", Name: "Lucía Paredes", Role: "operator", Password: "corta",
			})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeValidation))
		})
	})

	ginkgo.Describe("Update", func() {
		ginkgo.BeforeEach(func() {
			_, err := service.Create(CreateUserDTO{
				ID: "EMP-003", Name: "Jorge Quispe", Role: "operator", Password: "secreto-taller",
				AccessZones: []string{"taller"},
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.It("should change the role and with it the permissions", func() {
			role := "supervisor"
			u, err := service.Update("EMP-003", UpdateUserDTO{Role: &role})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(u.Role).To(gomega.Equal(RoleSupervisor))
			gomega.Expect(u.HasPermission("decommission_tool")).To(gomega.BeTrue())
		})

		ginkgo.It("should fail for an unknown user", func() {
			name := "Nadie"
			_, err := service.Update("EMP-999", UpdateUserDTO{Name: &name})

			gomega.Expect(err).To(gomega.Equal(internal.ErrUserNotFound))
		})
	})

	ginkgo.Describe("Delete", func() {
		ginkgo.It("should remove the user", func() {
			_, err := service.Create(CreateUserDTO{
				ID: "EMP-004", Name: "Ana Torres", Role: "operator", Password: "secreto-taller",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			gomega.Expect(service.Delete("EMP-004")).To(gomega.Succeed())

			_, err = service.GetByID("EMP-004")
			gomega.Expect(err).To(gomega.Equal(internal.ErrUserNotFound))
		})

		ginkgo.It("should fail for an unknown user", func() {
			gomega.Expect(service.Delete("EMP-999")).To(gomega.Equal(internal.ErrUserNotFound))
		})
	})

	ginkgo.Describe("Lookup", func() {
		ginkgo.It("should resolve the display name", func() {
			_, err := service.Create(CreateUserDTO{
				ID: "EMP-005", Name: "Miguel Rojas", Role: "operator", Password: "secreto-taller",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			name, err := service.Lookup("EMP-005")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(name).To(gomega.Equal("Miguel Rojas"))
		})
	})

	ginkgo.Describe("Permissions and zones", func() {
		ginkgo.It("should scope permissions by role", func() {
			operator := &User{ID: "EMP-006", Role: RoleOperator}

			gomega.Expect(operator.HasPermission("checkout_tool")).To(gomega.BeTrue())
			gomega.Expect(operator.HasPermission("manage_users")).To(gomega.BeFalse())
		})

		ginkgo.It("should honor the zone wildcard", func() {
			admin := &User{ID: "EMP-007", AccessZones: []string{"*"}}
			tech := &User{ID: "EMP-008", AccessZones: []string{"taller", "tableros"}}

			gomega.Expect(admin.CanAccessZone("sala de bombas")).To(gomega.BeTrue())
			gomega.Expect(tech.CanAccessZone("tableros")).To(gomega.BeTrue())
			gomega.Expect(tech.CanAccessZone("sala de bombas")).To(gomega.BeFalse())
		})
	})
})
