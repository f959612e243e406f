package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"backoffice/internal/listkit"
	"backoffice/internal/repositories"
	apperrors "backoffice/pkg/errors"
)

type envelope struct {
	Type    string
	Payload interface{}
}

type recordingSender struct {
	mu   sync.Mutex
	msgs []envelope
}

func (r *recordingSender) SendEnvelope(msgType string, payload interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, envelope{Type: msgType, Payload: payload})
}

func (r *recordingSender) ofType(msgType string) []envelope {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []envelope
	for _, m := range r.msgs {
		if m.Type == msgType {
			out = append(out, m)
		}
	}
	return out
}

func (r *recordingSender) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.msgs))
	for i, m := range r.msgs {
		out[i] = m.Type
	}
	return out
}

func newLivePage(t *testing.T, fetch listkit.FetchFunc[testRow]) *ListPageService[testRow] {
	t.Helper()
	cache := newTestCache(t)
	def := testPageDefinition(&fakeBackend{})
	def.Fetch = fetch
	return NewListPageService(
		def,
		newFakeLookups(),
		repositories.NewSelectionRepository(cache, time.Hour),
		repositories.NewPageCacheRepository(cache, time.Hour),
		listkit.DefaultStateTTL,
		zap.NewNop(),
	)
}

func openSession(t *testing.T, page ListPage, debounce time.Duration) (*LiveSession, *recordingSender, *memoryStore) {
	t.Helper()
	out := &recordingSender{}
	store := newMemoryStore()
	session := NewLiveSessionService(debounce, zap.NewNop()).Open(context.Background(), page, store, "k", "u1", out)
	t.Cleanup(session.Close)
	return session, out, store
}

func TestLiveSession_StartSendsStateThenPage(t *testing.T) {
	backend := &fakeBackend{rows: []testRow{{ID: 1}, {ID: 2}}, total: 2}
	session, out, _ := openSession(t, newLivePage(t, backend.fetch), 0)

	session.Start()
	require.Eventually(t, func() bool { return len(out.ofType(MsgPage)) == 1 }, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{MsgState, MsgLoading, MsgPage}, out.types())
	page := out.ofType(MsgPage)[0].Payload.(LivePagePayload)
	assert.Equal(t, 2, page.Total)
	assert.Len(t, page.Items, 2)
	assert.False(t, page.Loading)
	assert.Empty(t, page.Selected)
}

func TestLiveSession_DispatchFromJSON(t *testing.T) {
	backend := &fakeBackend{}
	session, out, store := openSession(t, newLivePage(t, backend.fetch), 0)

	session.HandleMessage([]byte(`{"type":"dispatch","actions":[
		{"type":"set_page","page":4},
		{"type":"set_filter","key":"statusId","value":[1,4]}
	]}`))

	state := session.State()
	assert.Equal(t, []int64{1, 4}, state.Filters["statusId"])
	assert.Equal(t, 0, state.Page, "фильтр сбрасывает страницу")
	require.NotEmpty(t, out.ofType(MsgState))

	saved, err := listkit.DecodeState(store.blobs["k"])
	require.NoError(t, err)
	assert.Equal(t, state, saved)

	require.Eventually(t, func() bool { return len(backend.calls()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int64{1, 4}, backend.calls()[0].Filters["statusId"])
}

func TestLiveSession_LastIssuedFetchWins(t *testing.T) {
	started := make(chan struct{}, 1)
	fetch := func(ctx context.Context, state listkit.SearchState) (listkit.Page[testRow], error) {
		if state.Page == 0 {
			started <- struct{}{}
			<-ctx.Done()
			return listkit.Page[testRow]{Items: []testRow{{ID: 100}}, Total: 1}, nil
		}
		return listkit.Page[testRow]{Items: []testRow{{ID: 200}}, Total: 1}, nil
	}
	session, out, _ := openSession(t, newLivePage(t, fetch), 0)

	session.Start()
	<-started
	session.Dispatch(listkit.SetPage(1))

	require.Eventually(t, func() bool { return len(out.ofType(MsgPage)) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	pages := out.ofType(MsgPage)
	require.Len(t, pages, 1, "ответ вытесненного запроса не доходит до клиента")
	assert.Equal(t, []any{testRow{ID: 200}}, pages[0].Payload.(LivePagePayload).Items)
}

func TestLiveSession_DebounceCollapsesDispatches(t *testing.T) {
	backend := &fakeBackend{}
	session, _, _ := openSession(t, newLivePage(t, backend.fetch), 30*time.Millisecond)

	session.Dispatch(listkit.SetFilter("search", "a"))
	session.Dispatch(listkit.SetFilter("search", "ab"))
	session.Dispatch(listkit.SetFilter("search", "abc"))

	require.Eventually(t, func() bool { return len(backend.calls()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)

	calls := backend.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "abc", calls[0].Filters["search"])
}

func TestLiveSession_FetchErrorKeepsRows(t *testing.T) {
	backend := &fakeBackend{err: apperrors.NewInvalidInputError("Фильтр не поддерживается")}
	session, out, _ := openSession(t, newLivePage(t, backend.fetch), 0)

	session.Invalidate()
	require.Eventually(t, func() bool { return len(out.ofType(MsgError)) == 1 }, time.Second, 5*time.Millisecond)

	payload := out.ofType(MsgError)[0].Payload.(LiveErrorPayload)
	assert.Equal(t, "Фильтр не поддерживается", payload.Message)
	assert.True(t, payload.Stale)
	assert.Empty(t, out.ofType(MsgPage))
}

func TestLiveSession_SelectAndBadMessages(t *testing.T) {
	backend := &fakeBackend{rows: []testRow{{ID: 1}, {ID: 2}}, total: 2}
	session, out, _ := openSession(t, newLivePage(t, backend.fetch), 0)

	session.Start()
	require.Eventually(t, func() bool { return len(out.ofType(MsgPage)) == 1 }, time.Second, 5*time.Millisecond)

	session.HandleMessage([]byte(`{"type":"select","op":"select_one","id":2}`))
	sel := out.ofType(MsgSelection)
	require.Len(t, sel, 1)

	session.HandleMessage([]byte(`{"type":"select","op":"toggle","id":2}`))
	session.HandleMessage([]byte(`{"type":"bogus"}`))
	session.HandleMessage([]byte(`not json`))
	assert.Len(t, out.ofType(MsgError), 3)
}

func TestLiveSession_ClosedSessionIgnoresRefresh(t *testing.T) {
	backend := &fakeBackend{}
	session, out, _ := openSession(t, newLivePage(t, backend.fetch), 0)

	session.Close()
	session.refresh()
	assert.Empty(t, out.types())
	assert.Empty(t, backend.calls())
}

// slowFirstCommit задерживает запоминание первой загруженной страницы.
type slowFirstCommit struct {
	*ListPageService[testRow]
	entered chan struct{}
	once    sync.Once
}

func (p *slowFirstCommit) Commit(ctx context.Context, user string, page listkit.Page[any]) []int64 {
	slow := false
	p.once.Do(func() {
		slow = true
		close(p.entered)
	})
	if slow {
		time.Sleep(150 * time.Millisecond)
	}
	return p.ListPageService.Commit(ctx, user, page)
}

func TestLiveSession_OlderCommitDoesNotOverwriteNewerPage(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	fetch := func(context.Context, listkit.SearchState) (listkit.Page[testRow], error) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls == 1 {
			return listkit.Page[testRow]{Items: []testRow{{ID: 1}, {ID: 2}}, Total: 2}, nil
		}
		return listkit.Page[testRow]{Items: []testRow{{ID: 3}, {ID: 4}}, Total: 2}, nil
	}
	svc := newLivePage(t, fetch)
	page := &slowFirstCommit{ListPageService: svc, entered: make(chan struct{})}
	session, out, _ := openSession(t, page, 0)

	session.Start()
	<-page.entered
	session.Invalidate()

	require.Eventually(t, func() bool { return len(out.ofType(MsgPage)) == 2 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)

	sel, err := svc.Selection(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 4}, sel.Items())

	pages := out.ofType(MsgPage)
	assert.Equal(t, []any{testRow{ID: 3}, testRow{ID: 4}}, pages[len(pages)-1].Payload.(LivePagePayload).Items)

	res, err := svc.Select(context.Background(), "u1", listkit.OpSelectOne, 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, res.Selected)
}

func TestLiveSession_InvalidDispatchIsRejected(t *testing.T) {
	backend := &fakeBackend{}
	session, out, store := openSession(t, newLivePage(t, backend.fetch), 0)

	session.HandleMessage([]byte(`{"type":"dispatch","actions":[
		{"type":"set_filter","key":"search","value":"ok"},
		{"type":"set_per_page","perPage":-10},
		{"type":"set_sort","sortBy":"password; drop","sortDir":"sideways"},
		{"type":"set_filter","key":"notAField","value":"x"}
	]}`))

	errs := out.ofType(MsgError)
	require.Len(t, errs, 1)
	assert.False(t, errs[0].Payload.(LiveErrorPayload).Stale)
	assert.Empty(t, out.ofType(MsgState))
	assert.Empty(t, store.blobs, "отклонённое сообщение не сохраняется")

	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, backend.calls())

	session.HandleMessage([]byte(`{"type":"dispatch","actions":[{"type":"set_per_page","perPage":50}]}`))
	assert.Equal(t, 50, session.State().PerPage)
	require.Eventually(t, func() bool { return len(backend.calls()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Greater(t, backend.calls()[0].PerPage, 0)
}
