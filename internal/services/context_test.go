package services_test

import (
	"context"
	"testing"

	"loadmaster/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRecordID(ctx, "rec-1")
	ctx = services.WithChalk(ctx, "101")
	ctx = services.WithExportID(ctx, "exp-9")
	ctx = services.WithRequestID(ctx, "req-123")

	if id, ok := services.RecordIDFromContext(ctx); !ok || id != "rec-1" {
		t.Fatalf("unexpected record id: %v %v", id, ok)
	}
	if chalk, ok := services.ChalkFromContext(ctx); !ok || chalk != "101" {
		t.Fatalf("unexpected chalk: %v %v", chalk, ok)
	}
	if id, ok := services.ExportIDFromContext(ctx); !ok || id != "exp-9" {
		t.Fatalf("unexpected export id: %v %v", id, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestChalkBlankPreservesContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithChalk(ctx, "")
	if _, ok := services.ChalkFromContext(ctx); ok {
		t.Fatal("expected no chalk value")
	}
}
