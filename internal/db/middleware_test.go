// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"
)

//go:generate mockgen -build_flags=--mod=mod -package db -destination ./mock_db.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package db -destination ./mock_logger.go -source=../logging/interfaces.go

func TestContextWithoutTx(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := contextWithLazyTx(context.Background(), &lazyTx{})
	ctx = ContextWithTx(ctx, NewMockTxInterface(ctrl))

	detached := ContextWithoutTx(ctx)
	if TxFromContext(detached) != nil {
		t.Error("expected no transaction on the detached context")
	}
	if lazyTxFromContext(detached) != nil {
		t.Error("expected no lazy transaction on the detached context")
	}

	// The original context keeps its transaction state.
	if TxFromContext(ctx) == nil {
		t.Error("expected the original context to keep its transaction")
	}
	if lazyTxFromContext(ctx) == nil {
		t.Error("expected the original context to keep its lazy transaction")
	}
}

func TestTransactionMiddleware(t *testing.T) {
	t.Run("commit failure after a success status is logged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := NewMockDBClientInterface(ctrl)
		mockLogger := NewMockLoggerInterface(ctrl)

		mockDB.EXPECT().WithTx(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
				if err := fn(ctx); err != nil {
					return err
				}
				return errors.New("commit unexpectedly resulted in rollback")
			})
		mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).Times(1)

		handler := TransactionMiddleware(mockDB, mockLogger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v0/requests", nil))
	})

	t.Run("failed handler rolls back without a commit log", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := NewMockDBClientInterface(ctrl)
		mockLogger := NewMockLoggerInterface(ctrl)

		mockDB.EXPECT().WithTx(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
				return fn(ctx)
			})

		handler := TransactionMiddleware(mockDB, mockLogger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v0/requests", nil))
		if rec.Code != http.StatusConflict {
			t.Errorf("expected status 409, got %d", rec.Code)
		}
	})

	t.Run("reads bypass the transaction", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := NewMockDBClientInterface(ctrl)
		mockLogger := NewMockLoggerInterface(ctrl)

		handler := TransactionMiddleware(mockDB, mockLogger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v0/requests", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rec.Code)
		}
	})
}
