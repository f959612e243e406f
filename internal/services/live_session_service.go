package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"backoffice/internal/listkit"
	apperrors "backoffice/pkg/errors"
	"backoffice/pkg/utils"
)

// Типы сообщений живого списка.
const (
	MsgState     = "state"
	MsgLoading   = "loading"
	MsgPage      = "page"
	MsgError     = "error"
	MsgSelection = "selection"

	inDispatch = "dispatch"
	inSelect   = "select"
	inRefresh  = "refresh"
)

// Sender - куда сессия пишет сообщения (WebSocket-клиент).
type Sender interface {
	SendEnvelope(msgType string, payload interface{})
}

type liveMessage struct {
	Type    string           `json:"type"`
	Actions []listkit.Action `json:"actions,omitempty"`
	Op      string           `json:"op,omitempty"`
	ID      int64            `json:"id,omitempty"`
}

type LivePagePayload struct {
	Items    []any   `json:"items"`
	Total    int     `json:"total"`
	Loading  bool    `json:"loading"`
	Selected []int64 `json:"selected"`
}

type LiveErrorPayload struct {
	Message string `json:"message"`
	// Stale: на экране остаются прежние строки.
	Stale bool `json:"stale"`
}

type LiveSessionService struct {
	debounce time.Duration
	logger   *zap.Logger
}

func NewLiveSessionService(debounceInterval time.Duration, logger *zap.Logger) *LiveSessionService {
	return &LiveSessionService{debounce: debounceInterval, logger: logger.Named("live")}
}

// Open создаёт сессию. ctx должен нести токен и пользователя:
// сессия переживает HTTP-запрос, в котором была открыта.
func (s *LiveSessionService) Open(ctx context.Context, page ListPage, store listkit.StateStore, key, user string, out Sender) *LiveSession {
	ctx, cancel := context.WithCancel(ctx)
	id := uuid.NewString()
	logger := s.logger.With(zap.String("session", id), zap.String("scope", page.Scope()), zap.String("user", user))

	session := &LiveSession{
		ID:      id,
		ctx:     ctx,
		cancel:  cancel,
		page:    page,
		search:  page.SearchStore(store, key),
		user:    user,
		out:     out,
		fetcher: listkit.NewFetcher[any](page.FetchAny, logger),
		logger:  logger,
	}
	if s.debounce > 0 {
		session.debounced = debounce.New(s.debounce)
	} else {
		session.debounced = func(f func()) { go f() }
	}
	return session
}

// LiveSession - одна открытая таблица. Изменения состояния сохраняются сразу,
// запрос страницы откладывается на интервал debounce; из нескольких
// запросов подряд результат пишет только последний.
type LiveSession struct {
	ID string

	ctx       context.Context
	cancel    context.CancelFunc
	page      ListPage
	search    *listkit.SearchStore
	user      string
	out       Sender
	fetcher   *listkit.Fetcher[any]
	debounced func(func())
	logger    *zap.Logger

	mu    sync.Mutex
	state listkit.SearchState
}

// Start отправляет текущее состояние и сразу грузит страницу.
func (s *LiveSession) Start() {
	state := s.search.Load(s.ctx)
	s.setState(state)
	s.sendState(state)
	go s.refresh()
}

func (s *LiveSession) State() listkit.SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *LiveSession) setState(state listkit.SearchState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *LiveSession) HandleMessage(data []byte) {
	var msg liveMessage
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&msg); err != nil {
		s.out.SendEnvelope(MsgError, LiveErrorPayload{Message: "Некорректное сообщение"})
		return
	}

	switch msg.Type {
	case inDispatch:
		s.Dispatch(msg.Actions...)
	case inSelect:
		s.Select(listkit.SelectionOp(msg.Op), msg.ID)
	case inRefresh:
		s.Invalidate()
	default:
		s.out.SendEnvelope(MsgError, LiveErrorPayload{Message: "Неизвестный тип сообщения: " + msg.Type})
	}
}

// Dispatch проверяет действия, применяет их, сохраняет состояние и планирует
// загрузку. Одно некорректное действие отклоняет всё сообщение.
func (s *LiveSession) Dispatch(actions ...listkit.Action) {
	if len(actions) == 0 {
		return
	}
	checked := make([]listkit.Action, len(actions))
	for i, a := range actions {
		valid, err := s.page.Validate(a)
		if err != nil {
			s.logger.Debug("Действие отклонено", zap.String("action", string(a.Type)), zap.Error(err))
			s.out.SendEnvelope(MsgError, LiveErrorPayload{Message: publicMessage(err)})
			return
		}
		checked[i] = valid
	}
	state, err := s.search.Update(s.ctx, s.page.Reducer(), checked...)
	if err != nil {
		s.logger.Warn("Не удалось сохранить состояние списка", zap.Error(err))
	}
	s.setState(state)
	s.sendState(state)
	s.debounced(s.refresh)
}

func (s *LiveSession) Select(op listkit.SelectionOp, id int64) {
	res, err := s.page.Select(s.ctx, s.user, op, id)
	if err != nil {
		s.out.SendEnvelope(MsgError, LiveErrorPayload{Message: publicMessage(err)})
		return
	}
	s.out.SendEnvelope(MsgSelection, res)
}

// Invalidate перечитывает текущую страницу (изменение пришло извне).
func (s *LiveSession) Invalidate() {
	s.debounced(s.refresh)
}

func (s *LiveSession) refresh() {
	if s.ctx.Err() != nil {
		return
	}
	state := s.State()
	s.out.SendEnvelope(MsgLoading, map[string]bool{"loading": true})

	// страница уходит клиенту там же, где запоминается выбор:
	// порядок сообщений совпадает с порядком фиксации
	res := s.fetcher.FetchThen(s.ctx, state, func(page listkit.Page[any]) {
		selected := s.page.Commit(s.ctx, s.user, page)
		s.out.SendEnvelope(MsgPage, LivePagePayload{
			Items:    append([]any{}, page.Items...),
			Total:    page.Total,
			Selected: selected,
		})
	})
	if res.Superseded || s.ctx.Err() != nil {
		return
	}
	if res.Err != nil {
		s.out.SendEnvelope(MsgError, LiveErrorPayload{Message: publicMessage(res.Err), Stale: true})
	}
}

func (s *LiveSession) sendState(state listkit.SearchState) {
	s.out.SendEnvelope(MsgState, map[string]interface{}{
		"state": state,
		"chips": s.page.Chips(s.ctx, state.Filters),
	})
}

// Close останавливает незавершённый запрос; отложенные загрузки уже ничего не сделают.
func (s *LiveSession) Close() {
	s.fetcher.Stop()
	s.cancel()
}

// publicMessage - текст ошибки, который можно показать пользователю.
func publicMessage(err error) string {
	var public interface{ PublicMessage() string }
	if errors.As(err, &public) {
		return public.PublicMessage()
	}
	var inputErr *apperrors.InvalidInputError
	if errors.As(err, &inputErr) {
		return inputErr.Message
	}
	return "Не удалось загрузить данные"
}

// SessionContext переносит токен и пользователя в контекст, не зависящий от запроса.
func SessionContext(reqCtx context.Context) context.Context {
	ctx := context.Background()
	if token, err := utils.GetTokenFromCtx(reqCtx); err == nil {
		ctx = utils.WithToken(ctx, token)
	}
	if user, err := utils.GetUserFromCtx(reqCtx); err == nil {
		ctx = utils.WithUser(ctx, user)
	}
	if id := utils.GetRequestIDFromCtx(reqCtx); id != "" {
		ctx = utils.WithRequestID(ctx, id)
	}
	return ctx
}
