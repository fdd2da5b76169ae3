package hackernews

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchStories(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantErr  string
		wantHits int
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body: `{"hits": [
				{"objectID": "1", "title": "Show HN: Harvey AI", "points": 120, "num_comments": 40},
				{"objectID": "2", "title": "Legal tech thread", "points": 15}
			]}`,
			wantHits: 2,
		},
		{
			name:    "server_error",
			status:  http.StatusInternalServerError,
			body:    `oops`,
			wantErr: "unexpected status Internal Server Error",
		},
		{
			name:    "malformed_response",
			status:  http.StatusOK,
			body:    `{"hits": [`,
			wantErr: "unmarshal response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/search", r.URL.Path)
				assert.Equal(t, "Harvey AI", r.URL.Query().Get("query"))
				assert.Equal(t, "story", r.URL.Query().Get("tags"))
				assert.Equal(t, "5", r.URL.Query().Get("hitsPerPage"))

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(WithBaseURL(srv.URL))

			resp, err := client.SearchStories(context.Background(), "Harvey AI", 5)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.Len(t, resp.Hits, tt.wantHits)
			assert.Equal(t, "Show HN: Harvey AI", resp.Hits[0].Title)
			assert.Equal(t, 120, resp.Hits[0].Points)
		})
	}
}
