package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-leave/internal/leave"
	leaveerrors "go-leave/internal/leave/errors"
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

type fakeLeaveService struct {
	createFn     func(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error)
	getByIDFn    func(ctx context.Context, id string) (leave.LeaveResponse, error)
	getAllFn     func(ctx context.Context, employeeID *string, skip, limit int) ([]leave.LeaveResponse, error)
	approveFn    func(ctx context.Context, id, adminComment string) (leave.LeaveResponse, error)
	rejectFn     func(ctx context.Context, id, adminComment string) (leave.LeaveResponse, error)
	getBalanceFn func(ctx context.Context, employeeID string) (leave.BalanceResponse, error)
}

func (f *fakeLeaveService) Create(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	return f.createFn(ctx, req)
}
func (f *fakeLeaveService) GetByID(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeLeaveService) GetAll(ctx context.Context, employeeID *string, skip, limit int) ([]leave.LeaveResponse, error) {
	return f.getAllFn(ctx, employeeID, skip, limit)
}
func (f *fakeLeaveService) Approve(ctx context.Context, id, adminComment string) (leave.LeaveResponse, error) {
	return f.approveFn(ctx, id, adminComment)
}
func (f *fakeLeaveService) Reject(ctx context.Context, id, adminComment string) (leave.LeaveResponse, error) {
	return f.rejectFn(ctx, id, adminComment)
}
func (f *fakeLeaveService) GetBalance(ctx context.Context, employeeID string) (leave.BalanceResponse, error) {
	return f.getBalanceFn(ctx, employeeID)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestLeaveHandler_Create(t *testing.T) {
	employeeID := uuid.New().String()

	t.Run("success as self", func(t *testing.T) {
		svc := &fakeLeaveService{
			createFn: func(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, employeeID, req.EmployeeID)
				assert.Equal(t, "VACATION", req.LeaveType)
				return leave.LeaveResponse{
					ID:            uuid.New().String(),
					EmployeeID:    req.EmployeeID,
					StartDate:     req.StartDate,
					EndDate:       req.EndDate,
					LeaveType:     req.LeaveType,
					Status:        string(leave.StatusPending),
					DaysRequested: 5,
				}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"` + employeeID + `","start_date":"2026-03-02","end_date":"2026-03-06","leave_type":"VACATION","reason":"Family trip"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", employeeID)
		c.Set("role", rbac.RoleEmployee)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)

		var resp leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.Equal(t, employeeID, resp.EmployeeID)
		assert.Equal(t, 5, resp.DaysRequested)
	})

	t.Run("negative employee files for someone else", func(t *testing.T) {
		svc := &fakeLeaveService{
			createFn: func(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				t.Fatal("service must not be called")
				return leave.LeaveResponse{}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"` + employeeID + `","start_date":"2026-03-02","end_date":"2026-03-06","leave_type":"VACATION"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", uuid.New().String())
		c.Set("role", rbac.RoleEmployee)

		h.Create(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
	})

	t.Run("negative missing leave_type", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"` + employeeID + `","start_date":"2026-03-02","end_date":"2026-03-06"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", employeeID)
		c.Set("role", rbac.RoleAdmin)

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative overlap maps to bad request", func(t *testing.T) {
		svc := &fakeLeaveService{
			createFn: func(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveOverlap
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"` + employeeID + `","start_date":"2026-03-02","end_date":"2026-03-06","leave_type":"SICK"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", employeeID)
		c.Set("role", rbac.RoleAdmin)

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		if assert.NotNil(t, env.Error) {
			assert.Equal(t, "INVALID_INPUT", env.Error.Code)
		}
	})
}

func TestLeaveHandler_GetAll(t *testing.T) {
	t.Run("employee is scoped to own requests", func(t *testing.T) {
		userID := uuid.New().String()
		otherID := uuid.New().String()

		svc := &fakeLeaveService{
			getAllFn: func(ctx context.Context, employeeID *string, skip, limit int) ([]leave.LeaveResponse, error) {
				assert.NotNil(t, employeeID)
				assert.Equal(t, userID, *employeeID)
				return []leave.LeaveResponse{}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves?employee_id="+otherID, nil)
		c.Set("user_id", userID)
		c.Set("role", rbac.RoleEmployee)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("admin can filter by employee", func(t *testing.T) {
		otherID := uuid.New().String()

		svc := &fakeLeaveService{
			getAllFn: func(ctx context.Context, employeeID *string, skip, limit int) ([]leave.LeaveResponse, error) {
				assert.NotNil(t, employeeID)
				assert.Equal(t, otherID, *employeeID)
				return []leave.LeaveResponse{{ID: uuid.New().String(), EmployeeID: otherID}}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves?employee_id="+otherID, nil)
		c.Set("user_id", uuid.New().String())
		c.Set("role", rbac.RoleAdmin)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestLeaveHandler_GetById(t *testing.T) {
	t.Run("negative employee reads another request", func(t *testing.T) {
		svc := &fakeLeaveService{
			getByIDFn: func(ctx context.Context, id string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{ID: id, EmployeeID: uuid.New().String()}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves/abc", nil)
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
		c.Set("user_id", uuid.New().String())
		c.Set("role", rbac.RoleEmployee)

		h.GetById(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("negative unknown id", func(t *testing.T) {
		svc := &fakeLeaveService{
			getByIDFn: func(ctx context.Context, id string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveNotFound
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves/abc", nil)
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
		c.Set("user_id", uuid.New().String())
		c.Set("role", rbac.RoleAdmin)

		h.GetById(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestLeaveHandler_Decide(t *testing.T) {
	leaveID := uuid.New().String()

	t.Run("approve success", func(t *testing.T) {
		svc := &fakeLeaveService{
			approveFn: func(ctx context.Context, id, adminComment string) (leave.LeaveResponse, error) {
				assert.Equal(t, leaveID, id)
				assert.Equal(t, "Enjoy", adminComment)
				return leave.LeaveResponse{ID: id, Status: string(leave.StatusApproved)}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"admin_comment":"Enjoy"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves/"+leaveID+"/approve", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Set("user_id", uuid.New().String())
		c.Set("role", rbac.RoleAdmin)

		h.Approve(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("approve without body", func(t *testing.T) {
		svc := &fakeLeaveService{
			approveFn: func(ctx context.Context, id, adminComment string) (leave.LeaveResponse, error) {
				assert.Empty(t, adminComment)
				return leave.LeaveResponse{ID: id, Status: string(leave.StatusApproved)}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves/"+leaveID+"/approve", nil)
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Set("role", rbac.RoleAdmin)

		h.Approve(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("reject already decided maps to invalid state", func(t *testing.T) {
		svc := &fakeLeaveService{
			rejectFn: func(ctx context.Context, id, adminComment string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrNotPending
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves/"+leaveID+"/reject", nil)
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Set("role", rbac.RoleAdmin)

		h.Reject(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
	})
}

func TestLeaveHandler_GetBalance(t *testing.T) {
	employeeID := uuid.New().String()

	t.Run("success as self", func(t *testing.T) {
		svc := &fakeLeaveService{
			getBalanceFn: func(ctx context.Context, id string) (leave.BalanceResponse, error) {
				assert.Equal(t, employeeID, id)
				return leave.BalanceResponse{EmployeeID: id, LeaveBalance: 6.0}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves/balance/"+employeeID, nil)
		c.Params = gin.Params{{Key: "employee_id", Value: employeeID}}
		c.Set("user_id", employeeID)
		c.Set("role", rbac.RoleEmployee)

		h.GetBalance(c)

		assert.Equal(t, http.StatusOK, w.Code)

		env := decodeEnvelope(t, w.Body.Bytes())
		var resp leave.BalanceResponse
		assert.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.Equal(t, 6.0, resp.LeaveBalance)
	})

	t.Run("negative employee reads someone else", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves/balance/"+employeeID, nil)
		c.Params = gin.Params{{Key: "employee_id", Value: employeeID}}
		c.Set("user_id", uuid.New().String())
		c.Set("role", rbac.RoleEmployee)

		h.GetBalance(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
