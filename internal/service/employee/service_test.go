package employee

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopleops/hrms-backend-go/internal/domain/employee"
)

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
	nextID    int
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	for _, existing := range f.employees {
		if existing.EmployeeCode == emp.EmployeeCode {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		if existing.UserID == emp.UserID {
			return employee.Employee{}, employee.ErrUserAlreadyLinked
		}
	}
	f.nextID++
	emp.ID = fmt.Sprintf("emp-%d", f.nextID)
	f.employees[emp.ID] = emp
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.UserID == userID {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	var result []employee.Employee
	for _, emp := range f.employees {
		if filter.Department != nil && emp.Department != *filter.Department {
			continue
		}
		if filter.Status != nil && string(emp.Status) != *filter.Status {
			continue
		}
		result = append(result, emp)
	}
	return result, int64(len(result)), nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	if _, ok := f.employees[emp.ID]; !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	f.employees[emp.ID] = emp
	return emp, nil
}

func (f *fakeEmployeeRepo) UpdateStatusBulk(ctx context.Context, ids []string, status employee.Status) (int64, error) {
	var updated int64
	for _, id := range ids {
		emp, ok := f.employees[id]
		if !ok {
			continue
		}
		emp.Status = status
		f.employees[id] = emp
		updated++
	}
	return updated, nil
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(f.employees, id)
	return nil
}

func newTestService(repo *fakeEmployeeRepo) employee.EmployeeService {
	return NewEmployeeService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func createRequest(code, userID string) employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		UserID:       userID,
		EmployeeCode: code,
		Department:   "Engineering",
		Position:     "Developer",
		Salary:       decimal.NewFromInt(5000),
	}
}

func TestCreateEmployeeDefaultsToActive(t *testing.T) {
	svc := newTestService(newFakeEmployeeRepo())

	resp, err := svc.CreateEmployee(context.Background(), createRequest("EMP-0001", "user-1"))
	require.NoError(t, err)
	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, "EMP-0001", resp.EmployeeCode)
}

func TestCreateEmployeeRejectsBadCode(t *testing.T) {
	svc := newTestService(newFakeEmployeeRepo())

	req := createRequest("E-1", "user-1")
	_, err := svc.CreateEmployee(context.Background(), req)
	assert.Error(t, err)
}

func TestCreateEmployeeDuplicateCode(t *testing.T) {
	svc := newTestService(newFakeEmployeeRepo())

	_, err := svc.CreateEmployee(context.Background(), createRequest("EMP-0001", "user-1"))
	require.NoError(t, err)

	_, err = svc.CreateEmployee(context.Background(), createRequest("EMP-0001", "user-2"))
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)
}

func TestCreateEmployeeUserAlreadyLinked(t *testing.T) {
	svc := newTestService(newFakeEmployeeRepo())

	_, err := svc.CreateEmployee(context.Background(), createRequest("EMP-0001", "user-1"))
	require.NoError(t, err)

	_, err = svc.CreateEmployee(context.Background(), createRequest("EMP-0002", "user-1"))
	assert.ErrorIs(t, err, employee.ErrUserAlreadyLinked)
}

func TestUpdateEmployeePatchesOnlyProvidedFields(t *testing.T) {
	repo := newFakeEmployeeRepo()
	svc := newTestService(repo)

	created, err := svc.CreateEmployee(context.Background(), createRequest("EMP-0001", "user-1"))
	require.NoError(t, err)

	position := "Senior Developer"
	updated, err := svc.UpdateEmployee(context.Background(), employee.UpdateEmployeeRequest{
		ID:       created.ID,
		Position: &position,
	})
	require.NoError(t, err)
	assert.Equal(t, "Senior Developer", updated.Position)
	assert.Equal(t, "Engineering", updated.Department)
	assert.True(t, updated.Salary.Equal(decimal.NewFromInt(5000)))
}

func TestUpdateEmployeeRequiresAField(t *testing.T) {
	svc := newTestService(newFakeEmployeeRepo())

	_, err := svc.UpdateEmployee(context.Background(), employee.UpdateEmployeeRequest{ID: "emp-1"})
	assert.Error(t, err)
}

func TestUpdateStatusBulk(t *testing.T) {
	repo := newFakeEmployeeRepo()
	svc := newTestService(repo)

	first, err := svc.CreateEmployee(context.Background(), createRequest("EMP-0001", "user-1"))
	require.NoError(t, err)
	second, err := svc.CreateEmployee(context.Background(), createRequest("EMP-0002", "user-2"))
	require.NoError(t, err)

	updated, err := svc.UpdateStatusBulk(context.Background(), employee.BulkStatusRequest{
		EmployeeIDs: []string{first.ID, second.ID, "missing"},
		Status:      "terminated",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	got, err := svc.GetEmployee(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, "terminated", got.Status)
}

func TestDeleteEmployee(t *testing.T) {
	repo := newFakeEmployeeRepo()
	svc := newTestService(repo)

	created, err := svc.CreateEmployee(context.Background(), createRequest("EMP-0001", "user-1"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEmployee(context.Background(), created.ID))

	_, err = svc.GetEmployee(context.Background(), created.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
