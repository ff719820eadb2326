package yelp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchBusinessesRequestShape(t *testing.T) {
	var gotPath, gotAuth string
	var gotQuery map[string][]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"businesses":[{"id":"biz-1","name":"Downtown Grill","rating":4.5,"review_count":120}],"total":1}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL)
	businesses, err := client.SearchBusinesses(context.Background(), "Downtown Grill", "Fresno, CA")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if gotPath != "/businesses/search" {
		t.Fatalf("expected /businesses/search, got %s", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("expected bearer auth, got %q", gotAuth)
	}
	if got := gotQuery["term"]; len(got) != 1 || got[0] != "Downtown Grill" {
		t.Fatalf("unexpected term query %v", got)
	}
	if got := gotQuery["categories"]; len(got) != 1 || got[0] != "restaurants,food" {
		t.Fatalf("unexpected categories query %v", got)
	}

	if len(businesses) != 1 {
		t.Fatalf("expected 1 business, got %d", len(businesses))
	}
	if businesses[0].ID != "biz-1" || businesses[0].ReviewCount != 120 {
		t.Fatalf("unexpected business decode: %+v", businesses[0])
	}
}

func TestSearchBusinessesMissingAPIKey(t *testing.T) {
	client := NewClient("", "http://unused.invalid")
	_, err := client.SearchBusinesses(context.Background(), "a", "b")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestSearchBusinessesStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusUnauthorized, ErrUnauthorized},
	}

	for _, tc := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))

		client := NewClient("test-key", server.URL)
		_, err := client.SearchBusinesses(context.Background(), "a", "b")
		server.Close()

		if !errors.Is(err, tc.want) {
			t.Fatalf("status %d: expected %v, got %v", tc.status, tc.want, err)
		}
	}
}

func TestSearchBusinessesUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL)
	_, err := client.SearchBusinesses(context.Background(), "a", "b")
	if err == nil {
		t.Fatal("expected an error for a 500 response")
	}
	if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected a generic error, got %v", err)
	}
}
