package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventcrm/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUserQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		check   func(t *testing.T, q domain.UserQuery)
		wantErr bool
	}{
		{
			name:  "defaults",
			query: "",
			check: func(t *testing.T, q domain.UserQuery) {
				assert.Equal(t, domain.UserFilter{}, q.Filter)
				assert.Equal(t, 0, q.Skip)
				require.NotNil(t, q.Limit)
				assert.Equal(t, DefaultFilterLimit, *q.Limit)
				assert.Empty(t, q.SortBy)
			},
		},
		{
			name:  "all parameters",
			query: "company=ABC&job_title=Engineer&city=Austin&state=TX&events_hosted_min=1&events_hosted_max=3&events_attended_min=0&events_attended_max=9&skip=5&limit=2&sort_by=last_name",
			check: func(t *testing.T, q domain.UserQuery) {
				assert.Equal(t, "ABC", q.Filter.Company)
				assert.Equal(t, "Engineer", q.Filter.JobTitle)
				assert.Equal(t, "Austin", q.Filter.City)
				assert.Equal(t, "TX", q.Filter.State)
				assert.Equal(t, 1, *q.Filter.HostedMin)
				assert.Equal(t, 3, *q.Filter.HostedMax)
				assert.Equal(t, 0, *q.Filter.AttendedMin)
				assert.Equal(t, 9, *q.Filter.AttendedMax)
				assert.Equal(t, 5, q.Skip)
				assert.Equal(t, 2, *q.Limit)
				assert.Equal(t, "last_name", q.SortBy)
			},
		},
		{name: "non numeric limit", query: "limit=ten", wantErr: true},
		{name: "negative skip", query: "skip=-1", wantErr: true},
		{name: "non numeric bound", query: "events_hosted_min=x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/users?"+tt.query, nil)
			q, err := ParseUserQuery(r)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			tt.check(t, q)
		})
	}
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		query string
		want  domain.PaginationParams
	}{
		{"", domain.PaginationParams{Page: DefaultPage, PageSize: DefaultPageSize}},
		{"page=3&page_size=500", domain.PaginationParams{Page: 3, PageSize: MaxPageSize}},
		{"page=0&page_size=abc", domain.PaginationParams{Page: DefaultPage, PageSize: DefaultPageSize}},
		{"page=2&page_size=5", domain.PaginationParams{Page: 2, PageSize: 5}},
		{"page=9223372036854775807&page_size=100", domain.PaginationParams{Page: math.MaxInt, PageSize: 100}},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/email-logs?"+tt.query, nil)
		assert.Equal(t, tt.want, ParsePage(r), tt.query)
	}
}

func TestNewPageMeta(t *testing.T) {
	assert.Equal(t, PageMeta{Page: 2, PageSize: 20, Total: 41, TotalPages: 3}, NewPageMeta(domain.PaginationParams{Page: 2, PageSize: 20}, 41))
	assert.Equal(t, 0, NewPageMeta(domain.PaginationParams{Page: 1}, 41).TotalPages)
}

type createThing struct {
	Name string `json:"name"`
}

func (c createThing) Validate() []string {
	if c.Name == "" {
		return []string{"name is required"}
	}
	return nil
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		wantOK bool
	}{
		{"valid", `{"name":"x"}`, true},
		{"unknown field", `{"name":"x","extra":1}`, false},
		{"malformed", `{`, false},
		{"validation failure", `{}`, false},
		{"empty body", ``, false},
		{"wrong type", `{"name":7}`, false},
		{"trailing object", `{"name":"x"}{"name":"y"}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			var dest createThing
			assert.Equal(t, tt.wantOK, DecodeAndValidate(rr, r, &dest))
			if !tt.wantOK {
				assert.Equal(t, http.StatusBadRequest, rr.Code)
				var envelope APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.NotNil(t, envelope.Error)
				assert.NotEmpty(t, envelope.Error.Message)
			}
		})
	}
}

func TestDecodeAndValidate_Messages(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{``, "request body is required"},
		{`{"name":7}`, "name must be a string"},
		{`{"name":"` + strings.Repeat("x", MaxBodyBytes) + `"}`, "request body exceeds"},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
		rr := httptest.NewRecorder()
		var dest createThing
		require.False(t, DecodeAndValidate(rr, r, &dest))
		var envelope APIResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
		assert.Contains(t, envelope.Error.Message, tt.want)
	}
}

func TestWriteServiceError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tests := []struct {
		err     error
		status  int
		code    string
		message string
	}{
		{domain.InvalidInputf("email is required"), http.StatusBadRequest, ErrCodeBadRequest, "invalid input: email is required"},
		{fmt.Errorf("get: %w", domain.ErrNotFound), http.StatusNotFound, ErrCodeNotFound, "user not found"},
		{fmt.Errorf("scan: %w", domain.ErrStoreUnavailable), http.StatusInternalServerError, ErrCodeInternalError, "internal server error"},
		{errors.New("boom"), http.StatusInternalServerError, ErrCodeInternalError, "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteServiceError(rr, httptest.NewRequest(http.MethodGet, "/users/1", nil), logger, tt.err, "user not found")
			require.Equal(t, tt.status, rr.Code)
			var envelope APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.code, envelope.Error.Code)
			assert.Equal(t, tt.message, envelope.Error.Message)
		})
	}
}
