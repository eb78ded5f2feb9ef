package search

import (
	"errors"
	"testing"
)

var testFields = map[string]string{
	"name":        "name",
	"statusId":    "status_id",
	"createdDate": "created_at",
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		wantExpr string
		wantArgs []any
	}{
		{
			name:     "equals",
			criteria: Criteria{Field: "statusId", Op: "eq", Value: "ACTIVE"},
			wantExpr: "status_id = ?",
			wantArgs: []any{"ACTIVE"},
		},
		{
			name:     "not equals",
			criteria: Criteria{Field: "statusId", Op: "ne", Value: "ACTIVE"},
			wantExpr: "status_id <> ?",
			wantArgs: []any{"ACTIVE"},
		},
		{
			name:     "greater or equal maps camelCase to column",
			criteria: Criteria{Field: "createdDate", Op: "ge", Value: "2026-01-01"},
			wantExpr: "created_at >= ?",
			wantArgs: []any{"2026-01-01"},
		},
		{
			name:     "contains wraps value in wildcards",
			criteria: Criteria{Field: "name", Op: "cn", Value: "acme"},
			wantExpr: "name LIKE ?",
			wantArgs: []any{"%acme%"},
		},
		{
			name:     "begins with",
			criteria: Criteria{Field: "name", Op: "bw", Value: "ac"},
			wantExpr: "name LIKE ?",
			wantArgs: []any{"ac%"},
		},
		{
			name:     "is null takes no args",
			criteria: Criteria{Field: "name", Op: "nu"},
			wantExpr: "name IS NULL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Translate(tt.criteria, testFields)
			if err != nil {
				t.Fatalf("Translate: %v", err)
			}
			if got.Expr != tt.wantExpr {
				t.Errorf("expr = %q, want %q", got.Expr, tt.wantExpr)
			}
			if len(got.Args) != len(tt.wantArgs) {
				t.Fatalf("args = %v, want %v", got.Args, tt.wantArgs)
			}
			for i := range got.Args {
				if got.Args[i] != tt.wantArgs[i] {
					t.Errorf("args[%d] = %v, want %v", i, got.Args[i], tt.wantArgs[i])
				}
			}
		})
	}
}

func TestTranslateRejectsUnknownField(t *testing.T) {
	_, err := Translate(Criteria{Field: "password", Op: "eq", Value: "x"}, testFields)

	var bad *BadCriteriaError
	if !errors.As(err, &bad) {
		t.Fatalf("err = %v, want *BadCriteriaError", err)
	}
	if bad.Field != "password" {
		t.Errorf("field = %q", bad.Field)
	}
}

func TestTranslateRejectsUnknownOperation(t *testing.T) {
	_, err := Translate(Criteria{Field: "name", Op: "regex", Value: "x"}, testFields)

	var bad *BadCriteriaError
	if !errors.As(err, &bad) {
		t.Fatalf("err = %v, want *BadCriteriaError", err)
	}
	if bad.Op != "regex" {
		t.Errorf("op = %q", bad.Op)
	}
}

func TestOrderClause(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		want    string
		wantErr bool
	}{
		{
			name: "ascending",
			req:  Request{Sort: "createdDate", Ascending: true},
			want: "created_at ASC",
		},
		{
			name: "descending",
			req:  Request{Sort: "name"},
			want: "name DESC",
		},
		{
			name: "no sort",
			req:  Request{},
			want: "",
		},
		{
			name:    "unknown sort property",
			req:     Request{Sort: "password"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OrderClause(tt.req, testFields)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("OrderClause: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
