// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package optimizer

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/golang-jwt/jwt/v5"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptvita/promptpro/internal/api"
	"github.com/promptvita/promptpro/internal/auth"
	"github.com/promptvita/promptpro/internal/model"
	"github.com/promptvita/promptpro/internal/storage"
	"github.com/promptvita/promptpro/internal/ui/components"
	"github.com/promptvita/promptpro/internal/ui/styles"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// =============================================================================
// FAKE BACKEND
// =============================================================================

// fakeAPI is a scripted PromptVita backend.
type fakeAPI struct {
	mu sync.Mutex

	optimizeStatus int
	optimizeBody   any
	quota          api.QuotaResponse
	loginStatus    int
	loginBody      any

	optimizeCalls int
	quotaCalls    int
	verifyCalls   int
	logoutCalls   int
	lastOptimize  api.OptimizeRequest
	lastAuthz     string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		optimizeStatus: http.StatusOK,
		optimizeBody:   api.OptimizeResponse{Original: "A", Strategy: "B", Optimized: "C"},
		quota:          api.QuotaResponse{RemainingRequests: 3, TotalLimit: 5},
		loginStatus:    http.StatusOK,
		loginBody: api.AuthResponse{
			Message: "Login successful",
			User:    api.User{ID: 7, Name: "Ada", Email: "ada@example.com"},
			Token:   "tok-ada",
		},
	}
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	reply := func(status int, body any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}

	switch r.URL.Path {
	case "/api/optimize":
		f.optimizeCalls++
		f.lastAuthz = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&f.lastOptimize)
		reply(f.optimizeStatus, f.optimizeBody)
	case "/api/check-requests":
		f.quotaCalls++
		reply(http.StatusOK, f.quota)
	case "/api/auth/verify-token":
		f.verifyCalls++
		reply(http.StatusOK, api.VerifyResponse{Valid: true, User: api.User{ID: 7, Name: "Ada", Email: "ada@example.com"}})
	case "/api/auth/login":
		reply(f.loginStatus, f.loginBody)
	case "/api/auth/logout":
		f.logoutCalls++
		reply(http.StatusOK, map[string]string{"message": "Logout successful"})
	default:
		reply(http.StatusNotFound, map[string]string{"error": "Endpoint not found"})
	}
}

func (f *fakeAPI) lastRequest() (api.OptimizeRequest, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastOptimize, f.lastAuthz
}

func (f *fakeAPI) counts() (optimize, quota, verify, logout int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.optimizeCalls, f.quotaCalls, f.verifyCalls, f.logoutCalls
}

// fakeClipboard records writes.
type fakeClipboard struct {
	mu     sync.Mutex
	writes []string
	err    error
}

func (c *fakeClipboard) WriteAll(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.writes = append(c.writes, text)
	return nil
}

// =============================================================================
// HARNESS
// =============================================================================

type harness struct {
	t       *testing.T
	api     *fakeAPI
	client  *api.Client
	store   storage.Store
	session *auth.Manager
	clip    *fakeClipboard
	m       Model
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	fake := newFakeAPI()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL).WithMaxRetries(0)
	store, err := storage.NewFileStore(filepath.Join(t.TempDir(), "storage.json"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	h := &harness{
		t:       t,
		api:     fake,
		client:  client,
		store:   store,
		session: auth.NewManager(client, store, nil),
		clip:    &fakeClipboard{},
	}
	h.rebuild()
	return h
}

// rebuild creates a fresh model sized 120x40.
func (h *harness) rebuild() {
	h.m = New(Deps{
		Optimizer: h.client,
		Quota:     h.client,
		Session:   h.session,
		Clipboard: h.clip,
	}, Options{
		Theme:          styles.NewTheme(styles.ModeDark),
		SplitPercent:   50,
		Mouse:          true,
		RequestTimeout: 5 * time.Second,
	})
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	// Finish startup restoration without touching the network. Tests that
	// exercise restoration run Init themselves.
	h.send(restoreDoneMsg{result: auth.RestoreResult{State: auth.StateAnonymous}})
}

// send delivers msg and returns the command it produced.
func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	return cmd
}

// settle runs cmd and feeds every resulting message back into the model
// until nothing is left. Timer commands slower than the cutoff are dropped.
func (h *harness) settle(cmd tea.Cmd) {
	queue := collect(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		switch msg.(type) {
		case spinner.TickMsg:
			if !h.m.Loading() && !h.m.Restoring() {
				continue
			}
		case components.ToastTickMsg, components.FlashExpiredMsg:
			// Delivered explicitly by the tests that care about timing.
			h.send(msg)
			continue
		}
		queue = append(queue, collect(h.send(msg))...)
	}
}

func (h *harness) key(k tea.KeyType) tea.Cmd {
	return h.send(tea.KeyMsg{Type: k})
}

func (h *harness) submit(text string) {
	h.m.SetInput(text)
	h.settle(h.key(tea.KeyEnter))
}

// collect runs cmd, expanding batches. Commands that block longer than
// 300ms (cursor blink, flash expiry) are skipped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collect(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(300 * time.Millisecond):
		return nil
	}
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 7,
		"exp":     exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

// =============================================================================
// SUBMIT FLOW
// =============================================================================

func TestSubmit_Success(t *testing.T) {
	h := newHarness(t)

	h.m.SetInput("  write a busines plan  ")
	cmd := h.key(tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.True(t, h.m.Loading())
	require.Equal(t, 1, h.m.Conversation().Len())

	user, ok := h.m.Conversation().Latest().(*model.UserMessage)
	require.True(t, ok)
	assert.Equal(t, "write a busines plan", user.Content)

	h.settle(cmd)
	assert.False(t, h.m.Loading())
	require.Equal(t, 2, h.m.Conversation().Len())

	res, ok := h.m.Conversation().LatestResult()
	require.True(t, ok)
	assert.Equal(t, "A", res.Original)
	assert.Equal(t, "B", res.Strategy)
	assert.Equal(t, "C", res.Optimized)

	req, _ := h.api.lastRequest()
	assert.Equal(t, "write a busines plan", req.Prompt)
	assert.Equal(t, model.ContextGeneral, req.Context)
	assert.Equal(t, "  write a busines plan  ", h.m.InputValue(), "input is kept after submit")
}

func TestSubmit_SendsSelectedContext(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyTab)
	assert.Equal(t, model.ContextBusiness, h.m.Context())

	h.submit("plan")
	req, _ := h.api.lastRequest()
	assert.Equal(t, model.ContextBusiness, req.Context)
}

func TestSubmit_IgnoredWhenBlankOrLoading(t *testing.T) {
	h := newHarness(t)

	h.m.SetInput("   \n  ")
	assert.Nil(t, h.key(tea.KeyEnter))
	assert.True(t, h.m.Conversation().IsEmpty())

	h.m.SetInput("first")
	cmd := h.key(tea.KeyEnter)
	assert.Nil(t, h.key(tea.KeyEnter), "second submit while loading is ignored")
	assert.Equal(t, 1, h.m.Conversation().Len())

	h.settle(cmd)
	optimizeCalls, _, _, _ := h.api.counts()
	assert.Equal(t, 1, optimizeCalls)
	assert.Equal(t, 2, h.m.Conversation().Len())
}

func TestSubmit_ServerErrorShowsGenericText(t *testing.T) {
	h := newHarness(t)
	h.api.optimizeStatus = http.StatusInternalServerError
	h.api.optimizeBody = map[string]string{"error": "Failed to optimize prompt: upstream"}

	h.submit("plan")

	require.Equal(t, 2, h.m.Conversation().Len())
	e, ok := h.m.Conversation().Latest().(*model.AssistantError)
	require.True(t, ok)
	assert.Equal(t, model.GenericErrorText, e.Content)
	assert.False(t, e.RequiresLogin)
	assert.False(t, h.m.Modal().IsOpen())
	assert.False(t, h.m.Loading())
}

func TestSubmit_RequiresLoginOpensModal(t *testing.T) {
	h := newHarness(t)
	h.api.optimizeStatus = http.StatusForbidden
	h.api.optimizeBody = map[string]any{
		"error":          "Request limit exceeded",
		"message":        "You have used all 5 free requests. Please log in to continue.",
		"requires_login": true,
	}

	h.submit("plan")

	e, ok := h.m.Conversation().Latest().(*model.AssistantError)
	require.True(t, ok)
	assert.True(t, e.RequiresLogin)
	assert.NotEmpty(t, e.Content)
	assert.True(t, h.m.Modal().IsOpen())
	assert.Equal(t, auth.ModeLogin, h.m.Modal().Mode())
	assert.True(t, h.m.Quota().Exhausted())
}

func TestSubmit_ExhaustedQuotaOpensLoginWithoutRequest(t *testing.T) {
	h := newHarness(t)
	h.send(quotaMsg{resp: &api.QuotaResponse{RemainingRequests: 0, TotalLimit: 5}})
	require.True(t, h.m.Quota().Exhausted())

	h.m.SetInput("plan")
	h.settle(h.key(tea.KeyEnter))

	assert.True(t, h.m.Conversation().IsEmpty())
	assert.True(t, h.m.Modal().IsOpen())
	optimizeCalls, _, _, _ := h.api.counts()
	assert.Zero(t, optimizeCalls)
}

func TestSubmit_DecrementsAnonymousQuota(t *testing.T) {
	h := newHarness(t)
	h.send(quotaMsg{resp: &api.QuotaResponse{RemainingRequests: 3, TotalLimit: 5}})

	h.submit("plan")
	assert.Equal(t, 2, h.m.Quota().Snapshot().Remaining)
	assert.Equal(t, "2 of 5 free requests left", h.m.Quota().Label())
}

func TestSubmit_ExactlyOneReplyPerPrompt(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 3; i++ {
		h.submit("plan")
	}
	msgs := h.m.Conversation().Messages()
	require.Len(t, msgs, 6)
	for i, msg := range msgs {
		want := model.RoleUser
		if i%2 == 1 {
			want = model.RoleAssistant
		}
		assert.Equal(t, want, msg.Role(), "message %d", i)
	}
}

// =============================================================================
// COPY
// =============================================================================

func TestCopy_Success(t *testing.T) {
	h := newHarness(t)
	h.submit("plan")

	h.settle(h.key(tea.KeyCtrlY))

	assert.Equal(t, []string{"C"}, h.clip.writes)
	toast, ok := h.m.Toasts().Current()
	require.True(t, ok)
	assert.Equal(t, components.CopiedText, toast.Message)
	assert.Equal(t, components.ToastSuccess, toast.Kind)
	assert.True(t, h.m.Flash().Active(components.CopyButton))

	h.send(components.FlashExpiredMsg{Seq: 1})
	assert.False(t, h.m.Flash().Active(components.CopyButton))
}

func TestCopy_Failure(t *testing.T) {
	h := newHarness(t)
	h.clip.err = errors.New("xclip not found")
	h.submit("plan")

	h.settle(h.key(tea.KeyCtrlY))

	toast, ok := h.m.Toasts().Current()
	require.True(t, ok)
	assert.Equal(t, components.CopyFailedText, toast.Message)
	assert.Equal(t, components.ToastError, toast.Kind)
	assert.False(t, h.m.Flash().Active(components.CopyButton))
}

func TestCopy_NothingToCopy(t *testing.T) {
	h := newHarness(t)
	assert.Nil(t, h.key(tea.KeyCtrlY))

	h.api.optimizeStatus = http.StatusInternalServerError
	h.api.optimizeBody = map[string]string{"error": "boom"}
	h.submit("plan")
	assert.Nil(t, h.key(tea.KeyCtrlY), "an error result has nothing to copy")
	assert.Empty(t, h.clip.writes)
}

func TestCopy_MouseOnIcon(t *testing.T) {
	h := newHarness(t)
	h.submit("plan")

	left, _ := h.m.paneWidths()
	x := left + dividerWidth + copyIconOffset(h.m.Context())
	h.settle(h.send(tea.MouseMsg{X: x, Y: bodyTop + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}))

	assert.Equal(t, []string{"C"}, h.clip.writes)
	assert.True(t, h.m.Flash().Active(components.CopyIcon))
}

// =============================================================================
// RE-OPTIMIZE AND CONTEXT
// =============================================================================

func TestReoptimize_ClearsEverything(t *testing.T) {
	h := newHarness(t)
	h.submit("plan")
	require.False(t, h.m.Conversation().IsEmpty())

	h.key(tea.KeyCtrlR)

	assert.Empty(t, h.m.InputValue())
	assert.True(t, h.m.Conversation().IsEmpty())
	assert.Nil(t, h.m.Conversation().Latest())
	assert.Contains(t, h.m.View(), "No prompt optimized yet")
}

func TestContextCycling(t *testing.T) {
	h := newHarness(t)

	h.key(tea.KeyShiftTab)
	assert.Equal(t, model.ContextVideoGeneration, h.m.Context())
	h.key(tea.KeyTab)
	assert.Equal(t, model.ContextGeneral, h.m.Context())

	h.key(tea.KeyTab)
	h.key(tea.KeyTab)
	require.Equal(t, model.ContextRephrase, h.m.Context())

	view := h.m.View()
	assert.Contains(t, view, "Turn messy text")
	assert.Contains(t, view, "Correct Text")
	assert.Contains(t, view, "No text corrected yet")
}

// =============================================================================
// SPLIT
// =============================================================================

func TestSplit_KeyboardNudge(t *testing.T) {
	h := newHarness(t)
	h.send(tea.KeyMsg{Type: tea.KeyCtrlLeft})
	assert.Equal(t, 45.0, h.m.Split().Percent())
	h.send(tea.KeyMsg{Type: tea.KeyCtrlRight})
	h.send(tea.KeyMsg{Type: tea.KeyCtrlRight})
	assert.Equal(t, 55.0, h.m.Split().Percent())
}

func TestSplit_DragClamps(t *testing.T) {
	h := newHarness(t)
	col := h.m.Split().DividerColumn(120, dividerWidth)

	h.send(tea.MouseMsg{X: col, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.True(t, h.m.Split().Dragging())

	h.send(tea.MouseMsg{X: 12, Y: 10, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	assert.Equal(t, 20.0, h.m.Split().Percent(), "10% clamps to 20%")

	h.send(tea.MouseMsg{X: 78, Y: 10, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	want := 78.0 / float64(120-dividerWidth) * 100
	assert.InDelta(t, want, h.m.Split().Percent(), 0.001)
	assert.Equal(t, 78, h.m.Split().DividerColumn(120, dividerWidth), "divider follows the pointer")

	h.send(tea.MouseMsg{X: 78, Y: 10, Action: tea.MouseActionRelease})
	assert.False(t, h.m.Split().Dragging())

	h.send(tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionMotion})
	assert.InDelta(t, want, h.m.Split().Percent(), 0.001, "motion after release is ignored")
}

func TestSplit_DragInPlaceKeepsDivider(t *testing.T) {
	for _, percent := range []float64{30, 50, 65, 80} {
		h := newHarness(t)
		h.m.Split().Nudge(percent - h.m.Split().Percent())
		col := h.m.Split().DividerColumn(120, dividerWidth)

		h.send(tea.MouseMsg{X: col, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
		h.send(tea.MouseMsg{X: col, Y: 10, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})

		assert.Equal(t, col, h.m.Split().DividerColumn(120, dividerWidth), "split %.0f%%", percent)
	}
}

func TestSplit_PressAwayFromDividerDoesNotDrag(t *testing.T) {
	h := newHarness(t)
	h.send(tea.MouseMsg{X: 5, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.False(t, h.m.Split().Dragging())
}

// =============================================================================
// SESSION
// =============================================================================

func TestSpinner_StopsAfterRestore(t *testing.T) {
	h := newHarness(t)
	h.m = New(Deps{
		Optimizer: h.client,
		Quota:     h.client,
		Session:   h.session,
		Clipboard: h.clip,
	}, Options{Theme: styles.NewTheme(styles.ModeDark)})
	require.True(t, h.m.Restoring())

	tick := h.m.spinner.Tick()
	assert.NotNil(t, h.send(tick), "spinner keeps ticking while restoring")

	h.send(restoreDoneMsg{result: auth.RestoreResult{State: auth.StateAnonymous}})
	assert.False(t, h.m.Restoring())
	assert.Nil(t, h.send(tick), "tick chain ends once restoration is done")
}

func TestSubmit_SettlesAfterReply(t *testing.T) {
	h := newHarness(t)

	done := make(chan struct{})
	go func() {
		h.submit("draft an email")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("spinner kept ticking after the reply arrived")
	}
	assert.False(t, h.m.Loading())
	assert.Equal(t, 2, h.m.Conversation().Len())
}

func TestInit_ExpiredTokenClearsStorageAndChecksQuotaOnce(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, storage.SaveCredentials(h.store, storage.Credentials{
		Token: signedToken(t, time.Now().Add(-time.Hour)),
		User:  api.User{ID: 7, Name: "Ada", Email: "ada@example.com"},
	}))

	h.settle(h.m.Init())

	_, quotaCalls, verifyCalls, _ := h.api.counts()
	assert.Equal(t, 1, quotaCalls)
	assert.Zero(t, verifyCalls, "expired token is not sent to the server")

	creds, err := storage.LoadCredentials(h.store)
	require.NoError(t, err)
	assert.Nil(t, creds)
	assert.Equal(t, auth.StateAnonymous, h.session.State())
	assert.Equal(t, "3 of 5 free requests left", h.m.Quota().Label())
}

func TestInit_ValidTokenRestoresSession(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, storage.SaveCredentials(h.store, storage.Credentials{
		Token: signedToken(t, time.Now().Add(time.Hour)),
		User:  api.User{ID: 7, Name: "Ada", Email: "ada@example.com"},
	}))

	h.settle(h.m.Init())

	_, quotaCalls, verifyCalls, _ := h.api.counts()
	assert.Equal(t, 1, verifyCalls)
	assert.Zero(t, quotaCalls)
	assert.True(t, h.session.IsAuthenticated())
	assert.Equal(t, "Unlimited", h.m.Quota().Label())
	assert.Contains(t, h.m.View(), "Hi, Ada")

	h.submit("plan")
	_, authz := h.api.lastRequest()
	assert.Contains(t, authz, "Bearer ")
}

func TestLoginThroughModal(t *testing.T) {
	h := newHarness(t)

	h.settle(h.key(tea.KeyCtrlL))
	require.True(t, h.m.Modal().IsOpen())

	h.m.Modal().SetValue(auth.FieldEmail, "ada@example.com")
	h.m.Modal().SetValue(auth.FieldPassword, "secret1")
	h.settle(h.key(tea.KeyEnter))

	assert.False(t, h.m.Modal().IsOpen())
	assert.True(t, h.session.IsAuthenticated())
	assert.Equal(t, "Unlimited", h.m.Quota().Label())

	creds, err := storage.LoadCredentials(h.store)
	require.NoError(t, err)
	require.NotNil(t, creds)
	assert.Equal(t, "tok-ada", creds.Token)
}

func TestLoginThroughModal_ServerRejects(t *testing.T) {
	h := newHarness(t)
	h.api.loginStatus = http.StatusUnauthorized
	h.api.loginBody = map[string]string{"error": "Invalid email or password"}

	h.settle(h.key(tea.KeyCtrlL))
	h.m.Modal().SetValue(auth.FieldEmail, "ada@example.com")
	h.m.Modal().SetValue(auth.FieldPassword, "wrong-password")
	h.settle(h.key(tea.KeyEnter))

	require.True(t, h.m.Modal().IsOpen())
	assert.Equal(t, "Invalid email or password", h.m.Modal().Errors().Get(auth.FieldGeneral))
	assert.False(t, h.m.Modal().Loading())
	assert.False(t, h.session.IsAuthenticated())
}

func TestLoginThroughModal_ValidationErrors(t *testing.T) {
	h := newHarness(t)
	h.settle(h.key(tea.KeyCtrlL))
	h.m.Modal().SetValue(auth.FieldEmail, "not-an-email")
	h.settle(h.key(tea.KeyEnter))

	errs := h.m.Modal().Errors()
	assert.Equal(t, "Please enter a valid email", errs.Get(auth.FieldEmail))
	assert.Equal(t, "Password is required", errs.Get(auth.FieldPassword))
}

func TestLogout_RequeriesQuota(t *testing.T) {
	h := newHarness(t)
	h.settle(h.key(tea.KeyCtrlL))
	h.m.Modal().SetValue(auth.FieldEmail, "ada@example.com")
	h.m.Modal().SetValue(auth.FieldPassword, "secret1")
	h.settle(h.key(tea.KeyEnter))
	require.True(t, h.session.IsAuthenticated())

	h.settle(h.key(tea.KeyCtrlL))

	_, quotaCalls, _, logoutCalls := h.api.counts()
	assert.Equal(t, 1, logoutCalls)
	assert.Equal(t, 1, quotaCalls)
	assert.False(t, h.session.IsAuthenticated())
	assert.Equal(t, "3 of 5 free requests left", h.m.Quota().Label())
}

func TestCredentialsChangedElsewhere(t *testing.T) {
	h := newHarness(t)
	h.settle(h.key(tea.KeyCtrlL))
	require.True(t, h.m.Modal().IsOpen())

	require.NoError(t, storage.SaveCredentials(h.store, storage.Credentials{
		Token: "tok-other",
		User:  api.User{ID: 9, Name: "Grace", Email: "grace@example.com"},
	}))
	h.settle(h.send(CredentialsChangedMsg{}))

	assert.True(t, h.session.IsAuthenticated())
	assert.False(t, h.m.Modal().IsOpen())
	assert.Contains(t, h.m.View(), "Hi, Grace")

	require.NoError(t, storage.ClearCredentials(h.store))
	h.settle(h.send(CredentialsChangedMsg{}))
	assert.False(t, h.session.IsAuthenticated())
	_, quotaCalls, _, _ := h.api.counts()
	assert.Equal(t, 1, quotaCalls)
}

// =============================================================================
// VIEW
// =============================================================================

func TestView_ShowsResultSections(t *testing.T) {
	h := newHarness(t)
	h.submit("plan")

	view := h.m.View()
	for _, want := range []string{"PromptPro", "Original Prompt", "Strategy Applied", "Optimized Prompt", "Copy Optimized"} {
		assert.Contains(t, view, want)
	}
}

func TestView_BeforeFirstResize(t *testing.T) {
	m := New(Deps{}, Options{Theme: styles.NewTheme(styles.ModeDark)})
	assert.Equal(t, "Loading...", m.View())
}

func TestView_HelpToggle(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyF1)
	assert.Contains(t, h.m.View(), "narrow input")
	h.key(tea.KeyF1)
	assert.NotContains(t, h.m.View(), "narrow input")
}
