package db

import (
	"strings"
	"testing"
)

func build(t *testing.T, b *IndexBuilder) *IndexDefinition {
	t.Helper()
	idx, err := b.Build()
	if err != nil {
		t.Fatalf("build index: %v", err)
	}
	return idx
}

func TestIndexBuilder_Simple(t *testing.T) {
	idx := build(t, NewIndex("test-idx").
		Prefix("doc:").
		Tag("category").
		Numeric("price"))

	if err := idx.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.Name != "test-idx" {
		t.Errorf("name = %q, want test-idx", idx.Name)
	}
	if idx.StorageType != StorageHash {
		t.Errorf("storage = %q, want HASH", idx.StorageType)
	}
	if len(idx.Fields) != 2 {
		t.Fatalf("fields count = %d, want 2", len(idx.Fields))
	}
	if idx.Fields[0].Name != "category" || idx.Fields[0].Type != IndexFieldTag {
		t.Errorf("field[0] = %+v, want category TAG", idx.Fields[0])
	}
	if idx.Fields[1].Name != "price" || idx.Fields[1].Type != IndexFieldNumeric {
		t.Errorf("field[1] = %+v, want price NUMERIC", idx.Fields[1])
	}
}

func TestIndexBuilder_JSONAliases(t *testing.T) {
	idx := build(t, NewIndex("restaurants-idx").
		OnJSON().
		Prefix("menuboard:restaurant:").
		Text("$.name").As("name").Weight(2).
		Geo("$.geo").As("location").
		Numeric("$.created_at").As("created_at").Sortable())

	if idx.StorageType != StorageJSON {
		t.Errorf("storage = %q, want JSON", idx.StorageType)
	}
	if idx.Fields[0].Alias != "name" || idx.Fields[0].TextWeight != 2 {
		t.Errorf("field[0] = %+v", idx.Fields[0])
	}
	if idx.Fields[1].Type != IndexFieldGeo || idx.Fields[1].Alias != "location" {
		t.Errorf("field[1] = %+v, want GEO location", idx.Fields[1])
	}
	if !idx.Fields[2].Sortable {
		t.Error("expected created_at SORTABLE")
	}
}

func TestIndexBuilder_ModifiersWithoutFields(t *testing.T) {
	b := NewIndex("idx").As("x").Sortable().Weight(3)
	if _, err := b.Build(); err == nil {
		t.Fatal("expected error for index without fields")
	}
}

func TestIndexBuilder_TagOptions(t *testing.T) {
	idx := build(t, NewIndex("tag-idx").
		Prefix("t:").
		TagWithOpts("tags", "|", true))

	f := idx.Fields[0]
	if f.TagSeparator != "|" {
		t.Errorf("separator = %q, want |", f.TagSeparator)
	}
	if !f.TagCaseSensitive {
		t.Error("expected TagCaseSensitive=true")
	}
}

func TestIndexBuilder_MultiplePrefixes(t *testing.T) {
	idx := build(t, NewIndex("multi-idx").
		Prefix("a:", "b:", "c:").
		Tag("x"))

	if len(idx.Prefixes) != 3 {
		t.Errorf("prefix count = %d, want 3", len(idx.Prefixes))
	}
}

func TestIndexBuilder_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		builder func() (*IndexDefinition, error)
		wantErr string
	}{
		{
			name: "empty name",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("").Tag("x").Build()
			},
			wantErr: "index name is required",
		},
		{
			name: "no fields",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").Build()
			},
			wantErr: "at least one field",
		},
		{
			name: "json path without alias",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").OnJSON().Tag("$.owner_id").Build()
			},
			wantErr: "requires an alias",
		},
		{
			name: "negative weight",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").Text("name").Weight(-1).Build()
			},
			wantErr: "weight",
		},
		{
			name: "invalid characters",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx with spaces").Tag("x").Build()
			},
			wantErr: "invalid characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got error %q, want containing %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestIndexDefinition_String(t *testing.T) {
	idx := build(t, NewIndex("my-idx").
		OnJSON().
		Prefix("doc:").
		Tag("$.cat").As("cat").
		Geo("$.geo").As("location").
		Numeric("$.ts").As("ts").Sortable())

	want := "FT.CREATE my-idx ON JSON PREFIX 1 doc: SCHEMA $.cat AS cat TAG $.geo AS location GEO $.ts AS ts NUMERIC SORTABLE"
	if got := idx.String(); got != want {
		t.Errorf("String() =\n%q\nwant\n%q", got, want)
	}
}

func TestIndexBuilder_DuplicateFields(t *testing.T) {
	idx := &IndexDefinition{
		Name: "dup-idx",
		Fields: []IndexField{
			{Name: "field1", Type: IndexFieldTag},
			{Name: "field1", Type: IndexFieldNumeric},
		},
	}

	if err := idx.Validate(); err == nil {
		t.Fatal("expected error for duplicate fields")
	}
}
