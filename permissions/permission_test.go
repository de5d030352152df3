package permissions_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbooker/permissions"
	"hotelbooker/shared/constant"
)

func TestGet_EmbeddedTable(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)
	assert.False(t, data.Skip)

	tests := []struct {
		path   string
		method string
		skip   bool
		roles  []string
	}{
		{path: "/api/webhooks/cashfree", method: http.MethodPost, skip: true},
		{path: "/api/bookings", method: http.MethodPost, skip: true},
		{path: "/api/hotels", method: http.MethodGet, skip: true},
		{path: "/api/hotels", method: http.MethodPost, roles: []string{constant.RoleAdmin}},
		{path: "/api/admins", method: http.MethodPost, roles: []string{constant.RoleAdmin}},
		{
			path:   "/api/bookings/{id}/cancel",
			method: http.MethodPost,
			roles:  []string{constant.RoleAdmin, constant.RoleManager, constant.RoleStaff},
		},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			perm := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.path, perm.Path)
			assert.Equal(t, tt.skip, perm.Skip)
			assert.ElementsMatch(t, tt.roles, perm.Permissions)
		})
	}
}

func TestFindPermissions_Unknown(t *testing.T) {
	data := &permissions.PermissionData{
		Endpoints: []permissions.Permission{{Path: "/api/admins", Method: http.MethodPost}},
	}

	assert.Equal(t, permissions.Permission{}, data.FindPermissions("/api/admins", http.MethodGet))
}

func TestFindPermissions_TrailingSlash(t *testing.T) {
	data := &permissions.PermissionData{
		Endpoints: []permissions.Permission{{Path: "/api/hotels", Method: http.MethodGet, Skip: true}},
	}

	assert.True(t, data.FindPermissions("/api/hotels/", http.MethodGet).Skip)
	assert.True(t, data.FindPermissions("/api/hotels", http.MethodGet).Skip)
}
