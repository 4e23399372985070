package gorm

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestUserCan(t *testing.T) {
	tests := []struct {
		name    string
		count   int64
		allowed bool
	}{
		{"permission held", 1, true},
		{"permission missing", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDB := newMockDB(t)

			rows := sqlmock.NewRows([]string{"count"}).AddRow(tt.count)
			mockDB.Mock.ExpectQuery(`SELECT count\(.+\) FROM "permissions"`).
				WithArgs("u1", "model_create").
				WillReturnRows(rows)

			authz := NewAuthzStore(mockDB.GormDB)
			if got := authz.UserCan("u1", "model_create"); got != tt.allowed {
				t.Errorf("expected %v, got %v", tt.allowed, got)
			}

			mockDB.verify(t)
		})
	}
}

func TestPermissions(t *testing.T) {
	mockDB := newMockDB(t)

	rows := sqlmock.NewRows([]string{"permission"}).
		AddRow("model_access").
		AddRow("model_create")
	mockDB.Mock.ExpectQuery(`SELECT "permission" FROM "permissions" WHERE user_id = \$1`).
		WithArgs("u1").
		WillReturnRows(rows)

	authz := NewAuthzStore(mockDB.GormDB)
	permissions, err := authz.Permissions("u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(permissions) != 2 || permissions[0] != "model_access" {
		t.Errorf("unexpected permissions: %v", permissions)
	}

	mockDB.verify(t)
}
