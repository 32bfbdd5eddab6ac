package permissions_test

import (
	"testing"

	"basecamp/permissions"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	if data == nil {
		t.Fatal("expected embedded permissions to load")
	}

	if data.Skip {
		t.Error("expected global skip to be off")
	}

	if len(data.Endpoints) == 0 {
		t.Error("expected at least one endpoint entry")
	}
}

func TestFindPermissions(t *testing.T) {
	data := permissions.Get()
	if data == nil {
		t.Fatal("expected embedded permissions to load")
	}

	tests := []struct {
		name     string
		path     string
		method   string
		wantSkip bool
		found    bool
	}{
		{
			name:     "health probe is skipped",
			path:     "/health",
			method:   "GET",
			wantSkip: true,
			found:    true,
		},
		{
			name:     "swagger ui is skipped",
			path:     "/swagger/*",
			method:   "GET",
			wantSkip: true,
			found:    true,
		},
		{
			name:     "public catalog is skipped",
			path:     "/v1/packages",
			method:   "GET",
			wantSkip: true,
			found:    true,
		},
		{
			name:     "collection root matches with trailing slash",
			path:     "/v1/packages/",
			method:   "GET",
			wantSkip: true,
			found:    true,
		},
		{
			name:   "dashboard delete is role gated",
			path:   "/v1/dashboard/packages/{id}",
			method: "DELETE",
			found:  true,
		},
		{
			name:   "unknown endpoint returns the zero value",
			path:   "/v1/nonexistent",
			method: "GET",
			found:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			if tt.found && permission.Path == "" {
				t.Fatalf("expected to find permission for %s %s", tt.method, tt.path)
			}

			if !tt.found && permission.Path != "" {
				t.Fatalf("expected no permission for %s %s, got %+v", tt.method, tt.path, permission)
			}

			if permission.Skip != tt.wantSkip {
				t.Errorf("expected skip=%v for %s %s, got %v", tt.wantSkip, tt.method, tt.path, permission.Skip)
			}
		})
	}
}
