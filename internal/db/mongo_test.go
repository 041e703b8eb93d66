package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseName(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{name: "named database", uri: "mongodb://localhost:27017/userdb", want: "userdb"},
		{name: "no database in path", uri: "mongodb://localhost:27017", want: "authbase"},
		{name: "trailing slash only", uri: "mongodb://localhost:27017/", want: "authbase"},
		{name: "with credentials and options", uri: "mongodb://app:pw@db.internal:27017/accounts?retryWrites=true", want: "accounts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DatabaseName(tt.uri))
		})
	}
}
