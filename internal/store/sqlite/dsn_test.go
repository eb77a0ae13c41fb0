package sqlite

import "testing"

func TestParseDSN(t *testing.T) {
	tests := []struct {
		dsn     string
		want    string
		wantErr bool
	}{
		{dsn: "sqlite://:memory:", want: ":memory:"},
		{dsn: "sqlite:///var/lib/painter/index.db", want: "/var/lib/painter/index.db"},
		{dsn: "sqlite://./index.db", want: "./index.db"},
		{dsn: "sqlite://index.db", want: "./index.db"},
		{dsn: "sqlite://my%20index.db?cache=shared", want: "./my index.db?cache=shared"},
		{dsn: "sqlite://:memory:?cache=shared", want: ":memory:?cache=shared"},
		{dsn: "postgres://localhost/painter", wantErr: true},
		{dsn: "sqlite://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			got, err := parseDSN(tt.dsn)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got != tt.want {
				t.Fatalf("parseDSN(%q) = %q, want %q", tt.dsn, got, tt.want)
			}
		})
	}
}

func TestIsMemory(t *testing.T) {
	if !isMemory(":memory:") || !isMemory(":memory:?cache=shared") {
		t.Fatalf("expected in-memory DSNs")
	}
	if isMemory("./index.db") {
		t.Fatalf("expected file DSN")
	}
}
