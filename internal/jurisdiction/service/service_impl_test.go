package service

import (
	"context"
	"errors"
	"testing"

	jurisdictiondomain "github.com/packlane/packlane/internal/jurisdiction/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type repoStub struct {
	rows []jurisdictiondomain.Jurisdiction
	err  error
}

func (r *repoStub) List(context.Context) ([]jurisdictiondomain.Jurisdiction, error) {
	return r.rows, r.err
}

func TestList_FallbackWithoutRepository(t *testing.T) {
	svc := New(Params{Log: zap.NewNop()})

	rows := svc.List(context.Background())
	assert.Len(t, rows, 8)
	assert.Equal(t, "california", rows[0].Code)
}

func TestList_FallbackOnErrorOrEmpty(t *testing.T) {
	failing := New(Params{Log: zap.NewNop(), Repo: &repoStub{err: errors.New("db down")}})
	assert.Len(t, failing.List(context.Background()), 8)

	empty := New(Params{Log: zap.NewNop(), Repo: &repoStub{}})
	assert.Len(t, empty.List(context.Background()), 8)
}

func TestList_PrefersStoredRows(t *testing.T) {
	stored := []jurisdictiondomain.Jurisdiction{{Code: "oregon", Name: "Oregon", ModelType: "shared responsibility"}}
	svc := New(Params{Log: zap.NewNop(), Repo: &repoStub{rows: stored}})

	rows := svc.List(context.Background())
	assert.Equal(t, stored, rows)
}
