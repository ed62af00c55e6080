package grn

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockd/internal/core/apperror"
	"stockd/internal/core/id"
	"stockd/internal/domain"
)

type fakeRepo struct {
	notes map[id.ID]GoodsReceivedNote
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{notes: make(map[id.ID]GoodsReceivedNote)}
}

func (r *fakeRepo) Create(ctx context.Context, n *GoodsReceivedNote) error {
	r.notes[n.ID] = *n
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, noteID id.ID) (*GoodsReceivedNote, error) {
	n, ok := r.notes[noteID]
	if !ok {
		return nil, apperror.NewNotFound("goods_received_note", noteID)
	}
	return &n, nil
}

func (r *fakeRepo) Update(ctx context.Context, n *GoodsReceivedNote) error {
	r.notes[n.ID] = *n
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, noteID id.ID) error {
	delete(r.notes, noteID)
	return nil
}

func (r *fakeRepo) List(ctx context.Context, filter ListFilter) (domain.ListResult[*GoodsReceivedNote], error) {
	return domain.ListResult[*GoodsReceivedNote]{}, nil
}

func (r *fakeRepo) GetForUpdate(ctx context.Context, noteID id.ID) (*GoodsReceivedNote, error) {
	return r.GetByID(ctx, noteID)
}

func (r *fakeRepo) MarkProcessed(ctx context.Context, noteID id.ID) error {
	n, ok := r.notes[noteID]
	if !ok {
		return apperror.NewNotFound("goods_received_note", noteID)
	}
	n.Processed = true
	r.notes[noteID] = n
	return nil
}

type fakeMatcher struct {
	applied bool
	err     error
	calls   int
}

func (m *fakeMatcher) MatchReceipt(ctx context.Context, noteID id.ID) (bool, error) {
	m.calls++
	return m.applied, m.err
}

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestNote(matched bool) *GoodsReceivedNote {
	n := New(id.New(), 10, time.Now())
	n.Matched = matched
	return n
}

func TestCreate_AppliedMatchSetsProcessed(t *testing.T) {
	repo := newFakeRepo()
	matcher := &fakeMatcher{applied: true}
	svc := NewService(repo, matcher, passthroughTx{})

	n := newTestNote(true)
	require.NoError(t, svc.Create(t.Context(), n))

	assert.Equal(t, 1, matcher.calls)
	assert.True(t, n.Processed)
	assert.Contains(t, repo.notes, n.ID)
}

func TestCreate_MatcherSkipIsSilent(t *testing.T) {
	repo := newFakeRepo()
	matcher := &fakeMatcher{applied: false}
	svc := NewService(repo, matcher, passthroughTx{})

	n := newTestNote(false)
	require.NoError(t, svc.Create(t.Context(), n))

	assert.Equal(t, 1, matcher.calls)
	assert.False(t, n.Processed)
}

func TestCreate_MatcherErrorKeepsNote(t *testing.T) {
	repo := newFakeRepo()
	matcher := &fakeMatcher{err: errors.New("stock adjustment failed")}
	svc := NewService(repo, matcher, passthroughTx{})

	n := newTestNote(true)
	err := svc.Create(t.Context(), n)
	require.Error(t, err)

	assert.Contains(t, repo.notes, n.ID)
	assert.False(t, repo.notes[n.ID].Processed)
}

func TestCreate_RejectsPreProcessedNote(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeMatcher{}, passthroughTx{})

	n := newTestNote(true)
	n.Processed = true

	err := svc.Create(t.Context(), n)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestUpdate_RejectsProcessedNote(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeMatcher{}, passthroughTx{})

	n := newTestNote(true)
	n.Processed = true
	repo.notes[n.ID] = *n

	edit := *n
	edit.ReceivedQuantity = 99
	err := svc.Update(t.Context(), &edit)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeBusinessRule, appErr.Code)
}

func TestDelete_RejectsProcessedNote(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeMatcher{}, passthroughTx{})

	n := newTestNote(true)
	n.Processed = true
	repo.notes[n.ID] = *n

	require.Error(t, svc.Delete(t.Context(), n.ID))
	assert.Contains(t, repo.notes, n.ID)
}

func TestUpdate_RerunsMatcher(t *testing.T) {
	repo := newFakeRepo()
	matcher := &fakeMatcher{applied: true}
	svc := NewService(repo, matcher, passthroughTx{})

	n := newTestNote(false)
	repo.notes[n.ID] = *n

	n.Matched = true
	require.NoError(t, svc.Update(t.Context(), n))

	assert.Equal(t, 1, matcher.calls)
	assert.True(t, n.Processed)
}
