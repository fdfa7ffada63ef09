package postgres

import (
	"testing"

	"fin-analyzer/pkg/config"
)

func TestDSN(t *testing.T) {
	got := DSN(&config.DatabaseConfig{
		Host: "db", Port: "5432", User: "u", Password: "p", DBName: "fin", SSLMode: "disable",
	})
	want := "host=db port=5432 user=u password=p dbname=fin sslmode=disable"
	if got != want {
		t.Fatalf("DSN = %q, want %q", got, want)
	}
}
