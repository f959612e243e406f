package listkit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFetcher_SuccessThenErrorKeepsItems(t *testing.T) {
	fail := false
	f := NewFetcher(func(ctx context.Context, s SearchState) (Page[int], error) {
		if fail {
			return Page[int]{}, errors.New("502 Bad Gateway")
		}
		return Page[int]{Items: []int{1, 2, 3}, Total: 30}, nil
	}, zap.NewNop())

	res := f.Fetch(context.Background(), SearchState{PerPage: 3})
	require.True(t, res.OK())
	assert.Equal(t, Paginated[int]{Items: []int{1, 2, 3}, Total: 30}, f.Snapshot())

	fail = true
	res = f.Fetch(context.Background(), SearchState{PerPage: 3, Page: 1})
	assert.Error(t, res.Err)
	assert.False(t, res.Superseded)

	snap := f.Snapshot()
	assert.False(t, snap.Loading)
	assert.Equal(t, []int{1, 2, 3}, snap.Items, "при ошибке строки остаются прежними")
	assert.Equal(t, 30, snap.Total)
}

func TestFetcher_LaterCallSupersedesSlowEarlierCall(t *testing.T) {
	release := make(chan struct{})
	f := NewFetcher(func(ctx context.Context, s SearchState) (Page[string], error) {
		if s.Page == 0 {
			select {
			case <-release:
				return Page[string]{Items: []string{"old"}, Total: 1}, nil
			case <-ctx.Done():
				return Page[string]{}, ctx.Err()
			}
		}
		return Page[string]{Items: []string{"new"}, Total: 1}, nil
	}, zap.NewNop())

	slow := make(chan Result[string], 1)
	go func() { slow <- f.Fetch(context.Background(), SearchState{Page: 0}) }()

	require.Eventually(t, func() bool { return f.Snapshot().Loading }, time.Second, 5*time.Millisecond)

	fast := f.Fetch(context.Background(), SearchState{Page: 1})
	require.True(t, fast.OK())
	close(release)

	old := <-slow
	assert.True(t, old.Superseded)
	assert.Equal(t, []string{"new"}, f.Snapshot().Items)
}

func TestFetcher_LoadingFlag(t *testing.T) {
	started := make(chan struct{})
	done := make(chan struct{})
	f := NewFetcher(func(ctx context.Context, s SearchState) (Page[int], error) {
		close(started)
		<-done
		return Page[int]{Items: []int{1}, Total: 1}, nil
	}, zap.NewNop())

	go f.Fetch(context.Background(), SearchState{})
	<-started
	assert.True(t, f.Snapshot().Loading)
	close(done)
	assert.Eventually(t, func() bool { return !f.Snapshot().Loading }, time.Second, 5*time.Millisecond)
}

func TestFetcher_Stop(t *testing.T) {
	f := NewFetcher(func(ctx context.Context, s SearchState) (Page[int], error) {
		<-ctx.Done()
		return Page[int]{}, ctx.Err()
	}, zap.NewNop())

	res := make(chan Result[int], 1)
	go func() { res <- f.Fetch(context.Background(), SearchState{}) }()
	require.Eventually(t, func() bool { return f.Snapshot().Loading }, time.Second, 5*time.Millisecond)

	f.Stop()
	assert.True(t, (<-res).Superseded)
	assert.False(t, f.Snapshot().Loading)
}

func TestFetcher_FetchThenCommitsOnlyLatest(t *testing.T) {
	release := make(chan struct{})
	f := NewFetcher(func(ctx context.Context, s SearchState) (Page[string], error) {
		if s.Page == 0 {
			<-release
			return Page[string]{Items: []string{"old"}, Total: 1}, nil
		}
		return Page[string]{Items: []string{"new"}, Total: 1}, nil
	}, zap.NewNop())

	var committed []string
	commit := func(p Page[string]) { committed = append(committed, p.Items...) }

	slow := make(chan Result[string], 1)
	go func() { slow <- f.FetchThen(context.Background(), SearchState{Page: 0}, commit) }()
	require.Eventually(t, func() bool { return f.Snapshot().Loading }, time.Second, 5*time.Millisecond)

	require.True(t, f.FetchThen(context.Background(), SearchState{Page: 1}, commit).OK())
	close(release)

	assert.True(t, (<-slow).Superseded)
	assert.Equal(t, []string{"new"}, committed)
}

func TestFetcher_NextFetchWaitsForCommit(t *testing.T) {
	calls := 0
	f := NewFetcher(func(ctx context.Context, s SearchState) (Page[int], error) {
		calls++
		return Page[int]{Items: []int{calls}, Total: 1}, nil
	}, zap.NewNop())

	var order []int
	inCommit := make(chan struct{})
	first := make(chan struct{})
	go func() {
		f.FetchThen(context.Background(), SearchState{}, func(p Page[int]) {
			close(inCommit)
			time.Sleep(50 * time.Millisecond)
			order = append(order, p.Items[0])
		})
		close(first)
	}()

	<-inCommit
	f.FetchThen(context.Background(), SearchState{Page: 1}, func(p Page[int]) {
		order = append(order, p.Items[0])
	})
	<-first

	assert.Equal(t, []int{1, 2}, order)
	assert.Equal(t, []int{2}, f.Snapshot().Items)
}
