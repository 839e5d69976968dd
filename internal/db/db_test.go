package db

import "testing"

func TestOpenUnreachableKeepsHandle(t *testing.T) {
	database, err := Open("host=127.0.0.1 port=1 user=nobody dbname=nothing sslmode=disable connect_timeout=1")
	if err == nil {
		t.Fatal("expected a connection error against an unreachable address")
	}
	// The handle must survive so development can keep serving and retry on
	// the next query; only production treats this as fatal.
	if database == nil {
		t.Fatal("no handle returned alongside the connection error")
	}
}
