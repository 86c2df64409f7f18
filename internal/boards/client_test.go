package boards_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velais/sprintgate/internal/boards"
)

func newClient(t *testing.T, handler http.Handler) *boards.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return boards.NewClient(boards.Config{
		Organization: "velais",
		Token:        "pat-token",
		BaseURL:      server.URL,
		Timeout:      5 * time.Second,
	})
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func iterationDoc(name, start, finish, timeFrame string) map[string]any {
	return map[string]any{
		"id":   "iter-" + name,
		"name": name,
		"path": `Project\` + name,
		"attributes": map[string]string{
			"startDate":  start,
			"finishDate": finish,
			"timeFrame":  timeFrame,
		},
	}
}

func TestCurrentIteration(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("prefers the iteration covering today", func(t *testing.T) {
		t.Parallel()

		now := time.Now().UTC()
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.URL.Path, "/_apis/work/teamsettings/iterations")
			assert.Equal(t, "Basic OnBhdC10b2tlbg==", r.Header.Get("Authorization"))
			writeJSON(t, w, map[string]any{"value": []any{
				iterationDoc("Sprint 11", now.Add(-20*24*time.Hour).Format(time.RFC3339), now.Add(-10*24*time.Hour).Format(time.RFC3339), "past"),
				iterationDoc("Sprint 12", now.Add(-2*24*time.Hour).Format(time.RFC3339), now.Add(8*24*time.Hour).Format(time.RFC3339), "future"),
			}})
		}))

		iter, err := client.CurrentIteration(ctx, "Acme Project", "Acme Team")
		require.NoError(t, err)
		require.NotNil(t, iter)
		assert.Equal(t, "Sprint 12", iter.Name)
	})

	t.Run("falls back to the timeFrame marker", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, map[string]any{"value": []any{
				iterationDoc("Sprint 11", "", "", "past"),
				iterationDoc("Sprint 12", "", "", "current"),
				iterationDoc("Sprint 13", "", "", "future"),
			}})
		}))

		iter, err := client.CurrentIteration(ctx, "Acme Project", "Acme Team")
		require.NoError(t, err)
		require.NotNil(t, iter)
		assert.Equal(t, "Sprint 12", iter.Name)
	})

	t.Run("falls back to the most recent iteration", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, map[string]any{"value": []any{
				iterationDoc("Sprint 11", "", "", "past"),
				iterationDoc("Sprint 12", "", "", "past"),
			}})
		}))

		iter, err := client.CurrentIteration(ctx, "Acme Project", "Acme Team")
		require.NoError(t, err)
		require.NotNil(t, iter)
		assert.Equal(t, "Sprint 12", iter.Name)
	})

	t.Run("no iterations yields nil without error", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, map[string]any{"value": []any{}})
		}))

		iter, err := client.CurrentIteration(ctx, "Acme Project", "Acme Team")
		require.NoError(t, err)
		assert.Nil(t, iter)
	})

	t.Run("non-200 surfaces as upstream failure", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))

		_, err := client.CurrentIteration(ctx, "Acme Project", "Acme Team")
		assert.ErrorIs(t, err, boards.ErrUpstream)
	})
}

func TestQueryWorkItemIDs(t *testing.T) {
	t.Parallel()

	t.Run("sends an escaped WIQL query", func(t *testing.T) {
		t.Parallel()

		var query string
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			var body struct {
				Query string `json:"query"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			query = body.Query
			writeJSON(t, w, map[string]any{"workItems": []map[string]int{{"id": 7}, {"id": 3}}})
		}))

		ids, err := client.QueryWorkItemIDs(context.Background(), "O'Brien Project", `O'Brien Project\Sprint 1`)
		require.NoError(t, err)
		assert.Equal(t, []int{7, 3}, ids)
		assert.Contains(t, query, "[System.TeamProject] = 'O''Brien Project'")
		assert.Contains(t, query, `UNDER 'O''Brien Project\Sprint 1'`)
	})
}

func TestWorkItems(t *testing.T) {
	t.Parallel()

	t.Run("empty id list short-circuits", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		}))

		items, err := client.WorkItems(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("fetches details in batches of 200", func(t *testing.T) {
		t.Parallel()

		var batches []int
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			idsParam := r.URL.Query().Get("ids")
			count := len(strings.Split(idsParam, ","))
			batches = append(batches, count)

			items := make([]map[string]any, 0, count)
			for _, raw := range strings.Split(idsParam, ",") {
				items = append(items, map[string]any{"id": json.Number(raw), "fields": map[string]any{}})
			}
			writeJSON(t, w, map[string]any{"value": items})
		}))

		ids := make([]int, 450)
		for i := range ids {
			ids[i] = i + 1
		}

		items, err := client.WorkItems(context.Background(), ids)
		require.NoError(t, err)
		assert.Len(t, items, 450)
		assert.Equal(t, []int{200, 200, 50}, batches)
	})
}

func TestClientContextCancellation(t *testing.T) {
	t.Parallel()

	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.CurrentIteration(ctx, "Acme Project", "Acme Team")
	require.Error(t, err)
	assert.ErrorIs(t, err, boards.ErrUpstream)
}
