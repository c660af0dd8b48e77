package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kawerify-tech/flo-orders-app-sub000/common"
	"github.com/kawerify-tech/flo-orders-app-sub000/framework/web"
	"github.com/kawerify-tech/flo-orders-app-sub000/logger"
	loggerMocks "github.com/kawerify-tech/flo-orders-app-sub000/logger/mocks"
	"github.com/kawerify-tech/flo-orders-app-sub000/transaction/domain"
	"github.com/kawerify-tech/flo-orders-app-sub000/transaction/service"
	serviceMock "github.com/kawerify-tech/flo-orders-app-sub000/transaction/service/mocks"
)

var clientUID = "client-1"

func getContext(method string, body io.Reader) *gin.Context {
	request := httptest.NewRequest(method, "http://example.com/foo", body)
	recorder := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(recorder)
	ctx.Request = request
	ctx.Set(common.CtxKeys.UID, clientUID)

	return ctx
}

type fields struct {
	service *serviceMock.TransactionService
}

func newHandler(f *fields) *Transactions {
	return &Transactions{
		l: func(ctx context.Context) logger.ILogger {
			return &loggerMocks.ILogger{}
		},
		svc: f.service,
	}
}

func TestTransactions_Submit(t *testing.T) {
	validBody, _ := json.Marshal(map[string]interface{}{
		"amount":   100,
		"fuelType": "diesel",
		"vehicle":  "KBX 123A",
	})

	// A request that passes JSON binding but fails the service's struct
	// validation, the way Submit rejects a non-positive amount.
	validationErr := validator.New().Struct(&service.SubmitRequest{
		ClientID: clientUID,
		Amount:   -5,
		FuelType: "diesel",
		Vehicle:  "KBX 123A",
	})

	tests := []struct {
		name        string
		on          func(*fields)
		body        io.Reader
		wantErr     bool
		wantStatus  int
		wantGeneric bool
	}{
		{
			name: "happy path",
			on: func(f *fields) {
				f.service.
					On(
						"Submit",
						mock.AnythingOfType("*gin.Context"),
						mock.AnythingOfType("*service.SubmitRequest"),
					).
					Return(&domain.LedgerEntry{ID: "TXN-1", Status: domain.StatusPending}, nil).
					Once()
			},
			body: bytes.NewReader(validBody),
		},
		{
			name:    "malformed body",
			body:    bytes.NewReader([]byte("{")),
			wantErr: true,
		},
		{
			name: "service returned error",
			on: func(f *fields) {
				f.service.
					On(
						"Submit",
						mock.AnythingOfType("*gin.Context"),
						mock.AnythingOfType("*service.SubmitRequest"),
					).
					Return(nil, domain.ErrPumpPriceUnavailable).
					Once()
			},
			body:       bytes.NewReader(validBody),
			wantErr:    true,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "service rejected the payload",
			on: func(f *fields) {
				f.service.
					On(
						"Submit",
						mock.AnythingOfType("*gin.Context"),
						mock.AnythingOfType("*service.SubmitRequest"),
					).
					Return(nil, validationErr).
					Once()
			},
			body:       bytes.NewReader(validBody),
			wantErr:    true,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unexpected error keeps a generic body",
			on: func(f *fields) {
				f.service.
					On(
						"Submit",
						mock.AnythingOfType("*gin.Context"),
						mock.AnythingOfType("*service.SubmitRequest"),
					).
					Return(nil, errors.New("rpc error: code = DeadlineExceeded")).
					Once()
			},
			body:        bytes.NewReader(validBody),
			wantErr:     true,
			wantStatus:  http.StatusInternalServerError,
			wantGeneric: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fields{service: &serviceMock.TransactionService{}}
			if tt.on != nil {
				tt.on(f)
			}

			h := newHandler(f)

			err := h.Submit(getContext(http.MethodPost, tt.body))
			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantStatus != 0 {
					var webErr *web.Error
					assert.ErrorAs(t, err, &webErr)
					assert.Equal(t, tt.wantStatus, webErr.Status)

					if tt.wantGeneric {
						assert.ErrorIs(t, webErr.Err, web.ErrInternalServerError)
					}
				}

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestTransactions_Approve(t *testing.T) {
	tests := []struct {
		name       string
		on         func(*fields)
		wantErr    bool
		wantStatus int
	}{
		{
			name: "happy path",
			on: func(f *fields) {
				f.service.
					On("Approve", mock.AnythingOfType("*gin.Context"), "TXN-1", clientUID, "Jane").
					Return(&domain.LedgerEntry{ID: "TXN-1", Status: domain.StatusCompleted}, nil).
					Once()
			},
		},
		{
			name: "already processed maps to conflict",
			on: func(f *fields) {
				f.service.
					On("Approve", mock.AnythingOfType("*gin.Context"), "TXN-1", clientUID, "Jane").
					Return(nil, domain.ErrInvalidStateTransition).
					Once()
			},
			wantErr:    true,
			wantStatus: http.StatusConflict,
		},
		{
			name: "unknown transaction maps to not found",
			on: func(f *fields) {
				f.service.
					On("Approve", mock.AnythingOfType("*gin.Context"), "TXN-1", clientUID, "Jane").
					Return(nil, domain.ErrNotFound).
					Once()
			},
			wantErr:    true,
			wantStatus: http.StatusNotFound,
		},
	}

	body, _ := json.Marshal(map[string]interface{}{"actorName": "Jane"})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fields{service: &serviceMock.TransactionService{}}
			tt.on(f)

			h := newHandler(f)

			ctx := getContext(http.MethodPost, bytes.NewReader(body))
			ctx.Params = gin.Params{{Key: "id", Value: "TXN-1"}}

			err := h.Approve(ctx)
			if tt.wantErr {
				assert.Error(t, err)

				var webErr *web.Error
				assert.ErrorAs(t, err, &webErr)
				assert.Equal(t, tt.wantStatus, webErr.Status)

				return
			}

			assert.NoError(t, err)
		})
	}
}
