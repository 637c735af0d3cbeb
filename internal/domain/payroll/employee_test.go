package payroll

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmployee(t *testing.T) {
	companyID := uuid.New()

	t.Run("creates active employee by default", func(t *testing.T) {
		e, err := NewEmployee(companyID, EmployeeInput{
			FirstName: " Grace ",
			LastName:  "Hopper",
			Email:     ptr("Grace@Navy.mil"),
			Position:  ptr(""),
		})

		require.NoError(t, err)
		assert.Equal(t, companyID, e.CompanyID)
		assert.Equal(t, "Grace", e.FirstName)
		assert.Equal(t, "grace@navy.mil", *e.Email)
		assert.Nil(t, e.Position)
		assert.True(t, e.IsActive)
		assert.Equal(t, "Grace Hopper", e.FullName())
	})

	t.Run("requires names", func(t *testing.T) {
		_, err := NewEmployee(companyID, EmployeeInput{FirstName: "Grace"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "last_name")
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		_, err := NewEmployee(companyID, EmployeeInput{FirstName: "A", LastName: "B", Email: ptr("nope")})
		assert.Error(t, err)
	})
}

func TestEmployee_Apply(t *testing.T) {
	e, err := NewEmployee(uuid.New(), EmployeeInput{FirstName: "Alan", LastName: "Turing", Position: ptr("Analyst")})
	require.NoError(t, err)

	hire := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, e.Apply(EmployeeUpdate{LastName: ptr("Mathison"), HireDate: &hire, IsActive: ptr(false)}))

	assert.Equal(t, "Alan", e.FirstName)
	assert.Equal(t, "Mathison", e.LastName)
	assert.Equal(t, "Analyst", *e.Position)
	assert.Equal(t, hire, *e.HireDate)
	assert.False(t, e.IsActive)

	require.NoError(t, e.Apply(EmployeeUpdate{ClearHireDate: true, Position: ptr("")}))
	assert.Nil(t, e.HireDate)
	assert.Nil(t, e.Position)

	assert.Error(t, e.Apply(EmployeeUpdate{FirstName: ptr("  ")}))
}

func TestEmployee_LinkUser(t *testing.T) {
	e, err := NewEmployee(uuid.New(), EmployeeInput{FirstName: "Alan", LastName: "Kay"})
	require.NoError(t, err)

	userID := uuid.New()
	require.NoError(t, e.LinkUser(userID))
	assert.True(t, e.HasUser())
	assert.Equal(t, userID, *e.UserID)

	assert.Error(t, e.LinkUser(uuid.New()))
}
