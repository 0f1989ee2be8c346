package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glasspane-dev/glasspane/internal/domain/values"
	"github.com/glasspane-dev/glasspane/internal/preview"
)

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	renderer, err := preview.NewRenderer()
	require.NoError(t, err)
	return New(renderer, opts...)
}

func postRender(t *testing.T, router *gin.Engine, req preview.Request) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/render", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, r)
	return w
}

func TestHealth(t *testing.T) {
	t.Parallel()

	router := newTestServer(t).Router()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestRenderAndPreview(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	router := srv.Router()

	w := postRender(t, router, preview.Request{
		Code: "export default function App() { return <p>hi</p> }",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Result     preview.RenderResult `json:"result"`
		PreviewURL string               `json:"preview_url"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "App", resp.Result.EntryName)
	require.NotEmpty(t, resp.PreviewURL)

	pw := httptest.NewRecorder()
	router.ServeHTTP(pw, httptest.NewRequest(http.MethodGet, resp.PreviewURL, nil))
	assert.Equal(t, http.StatusOK, pw.Code)
	assert.Contains(t, pw.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, pw.Body.String(), "glasspane-source")
}

func TestRenderRejectsEmptyPayload(t *testing.T) {
	t.Parallel()

	router := newTestServer(t).Router()
	w := postRender(t, router, preview.Request{})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRenderRejectsMalformedBody(t *testing.T) {
	t.Parallel()

	router := newTestServer(t).Router()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/render", strings.NewReader("not json"))
	router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPreviewUnknownID(t *testing.T) {
	t.Parallel()

	router := newTestServer(t).Router()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/preview/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/preview/"+values.NewRenderID().String(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDocumentStoreEviction(t *testing.T) {
	t.Parallel()

	store := newDocumentStore(2)
	first := values.NewRenderID()
	store.Put(first, "a")
	store.Put(values.NewRenderID(), "b")
	store.Put(values.NewRenderID(), "c")

	assert.Equal(t, 2, store.Len())
	_, ok := store.Get(first)
	assert.False(t, ok, "oldest entry should be evicted")
}

func TestEventRelay_HelloDuringBroadcastStorm(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(newTestServer(t).Router())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/events"

	sender, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer sender.Close()
	var hello map[string]any
	require.NoError(t, sender.ReadJSON(&hello))

	// Keep broadcasts flowing while new clients connect. Each hello frame
	// is written to a connection the hub must not yet be writing to.
	stop := make(chan struct{})
	senderDone := make(chan struct{})
	go func() {
		defer close(senderDone)
		for {
			select {
			case <-stop:
				return
			default:
				if err := sender.WriteJSON(preview.Event{
					Type: preview.EventNavigation,
					Path: "/storm",
				}); err != nil {
					return
				}
			}
		}
	}()

	for i := 0; i < 20; i++ {
		ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		require.NoError(t, err)

		ws.SetReadDeadline(time.Now().Add(2 * time.Second))
		var first map[string]any
		require.NoError(t, ws.ReadJSON(&first))
		assert.Equal(t, "subscribed", first["action"], "first frame must be the hello, never a broadcast")
		ws.Close()
	}

	close(stop)
	<-senderDone
}

func TestEventRelay(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(newTestServer(t).Router())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/events"

	dial := func() *websocket.Conn {
		ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		require.NoError(t, err)
		var hello map[string]any
		require.NoError(t, ws.ReadJSON(&hello))
		require.Equal(t, "subscribed", hello["action"])
		return ws
	}

	sender := dial()
	defer sender.Close()
	watcher := dial()
	defer watcher.Close()

	require.NoError(t, sender.WriteJSON(preview.Event{
		Type: preview.EventNavigation,
		Path: "/settings",
	}))

	watcher.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got preview.Event
	require.NoError(t, watcher.ReadJSON(&got))
	assert.Equal(t, preview.EventNavigation, got.Type)
	assert.Equal(t, "/settings", got.Path)

	// Malformed payloads are dropped without closing the socket.
	require.NoError(t, sender.WriteMessage(websocket.TextMessage, []byte(`{"type":"bogus"}`)))
	require.NoError(t, sender.WriteJSON(preview.Event{
		Type:  preview.EventError,
		Error: &preview.ErrorDetail{Message: "boom"},
	}))

	watcher.SetReadDeadline(time.Now().Add(2 * time.Second))
	require.NoError(t, watcher.ReadJSON(&got))
	assert.Equal(t, preview.EventError, got.Type)
	require.NotNil(t, got.Error)
	assert.Equal(t, "boom", got.Error.Message)
}
