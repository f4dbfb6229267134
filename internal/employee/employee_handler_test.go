package employee_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-leave/internal/employee"
	employeeerrors "go-leave/internal/employee/errors"
	"go-leave/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeEmployeeService struct {
	createFn        func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	getAllFn        func(ctx context.Context, skip, limit int, activeOnly bool) ([]employee.EmployeeResponse, error)
	getOptionsFn    func(ctx context.Context) ([]employee.EmployeeOption, error)
	getByIDFn       func(ctx context.Context, id string) (employee.EmployeeResponse, error)
	getByEmailFn    func(ctx context.Context, email string) (employee.EmployeeResponse, error)
	updateFn        func(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	deactivateFn    func(ctx context.Context, id string) error
	adjustBalanceFn func(ctx context.Context, id string, newBalance float64) (employee.EmployeeResponse, error)
}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.createFn(ctx, req)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context, skip, limit int, activeOnly bool) ([]employee.EmployeeResponse, error) {
	return f.getAllFn(ctx, skip, limit, activeOnly)
}
func (f *fakeEmployeeService) GetOptions(ctx context.Context) ([]employee.EmployeeOption, error) {
	return f.getOptionsFn(ctx)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeEmployeeService) GetByEmail(ctx context.Context, email string) (employee.EmployeeResponse, error) {
	return f.getByEmailFn(ctx, email)
}
func (f *fakeEmployeeService) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.updateFn(ctx, id, req)
}
func (f *fakeEmployeeService) Deactivate(ctx context.Context, id string) error {
	return f.deactivateFn(ctx, id)
}
func (f *fakeEmployeeService) AdjustBalance(ctx context.Context, id string, newBalance float64) (employee.EmployeeResponse, error) {
	return f.adjustBalanceFn(ctx, id, newBalance)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			createFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, "Sam Ortiz", req.FullName)
				assert.Equal(t, "2024-06-01", req.JoiningDate)
				return employee.EmployeeResponse{
					ID:           uuid.New().String(),
					FullName:     req.FullName,
					Email:        req.Email,
					Department:   req.Department,
					JoiningDate:  req.JoiningDate,
					LeaveBalance: employee.DefaultLeaveBalance,
					IsActive:     true,
				}, nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"full_name":"Sam Ortiz","email":"sam.ortiz@company.com","department":"Finance","joining_date":"2024-06-01","password":"s3cret"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)

		var resp employee.EmployeeResponse
		assert.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.Equal(t, employee.DefaultLeaveBalance, resp.LeaveBalance)
	})

	t.Run("negative invalid email", func(t *testing.T) {
		h := employee.NewHandler(&fakeEmployeeService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"full_name":"Sam Ortiz","email":"not-an-email","department":"Finance","joining_date":"2024-06-01"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
	})

	t.Run("negative duplicate email maps to conflict", func(t *testing.T) {
		svc := &fakeEmployeeService{
			createFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmailAlreadyRegistered
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"full_name":"Sam Ortiz","email":"sam.ortiz@company.com","department":"Finance","joining_date":"2024-06-01"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	t.Run("passes pagination and active filter", func(t *testing.T) {
		svc := &fakeEmployeeService{
			getAllFn: func(ctx context.Context, skip, limit int, activeOnly bool) ([]employee.EmployeeResponse, error) {
				assert.Equal(t, 10, skip)
				assert.Equal(t, 25, limit)
				assert.False(t, activeOnly)
				return []employee.EmployeeResponse{}, nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/employees?skip=10&limit=25&active_only=false", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestEmployeeHandler_GetById(t *testing.T) {
	employeeID := uuid.New().String()

	t.Run("negative employee reads someone else", func(t *testing.T) {
		h := employee.NewHandler(&fakeEmployeeService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/employees/"+employeeID, nil)
		c.Params = gin.Params{{Key: "id", Value: employeeID}}
		c.Set("user_id", uuid.New().String())
		c.Set("role", rbac.RoleEmployee)

		h.GetById(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin reads anyone", func(t *testing.T) {
		svc := &fakeEmployeeService{
			getByIDFn: func(ctx context.Context, id string) (employee.EmployeeResponse, error) {
				assert.Equal(t, employeeID, id)
				return employee.EmployeeResponse{ID: id, FullName: "Sam Ortiz"}, nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/employees/"+employeeID, nil)
		c.Params = gin.Params{{Key: "id", Value: employeeID}}
		c.Set("user_id", uuid.New().String())
		c.Set("role", rbac.RoleAdmin)

		h.GetById(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative unknown id", func(t *testing.T) {
		svc := &fakeEmployeeService{
			getByIDFn: func(ctx context.Context, id string) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/employees/"+employeeID, nil)
		c.Params = gin.Params{{Key: "id", Value: employeeID}}
		c.Set("role", rbac.RoleAdmin)

		h.GetById(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEmployeeHandler_Deactivate(t *testing.T) {
	employeeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			deactivateFn: func(ctx context.Context, id string) error {
				assert.Equal(t, employeeID, id)
				return nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodDelete, "/employees/"+employeeID, nil)
		c.Params = gin.Params{{Key: "id", Value: employeeID}}

		h.Deactivate(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestEmployeeHandler_AdjustBalance(t *testing.T) {
	employeeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			adjustBalanceFn: func(ctx context.Context, id string, newBalance float64) (employee.EmployeeResponse, error) {
				assert.Equal(t, employeeID, id)
				assert.Equal(t, 10.0, newBalance)
				return employee.EmployeeResponse{ID: id, LeaveBalance: newBalance}, nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"leave_balance":10}`
		c.Request = httptest.NewRequest(http.MethodPut, "/employees/"+employeeID+"/balance", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: employeeID}}

		h.AdjustBalance(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative missing balance", func(t *testing.T) {
		h := employee.NewHandler(&fakeEmployeeService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPut, "/employees/"+employeeID+"/balance", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: employeeID}}

		h.AdjustBalance(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
