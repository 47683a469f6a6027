package domain

import (
	"reflect"
	"testing"
)

func TestMergeRoles_UnionDedup(t *testing.T) {
	t.Parallel()

	got := MergeRoles([]Role{"biker"}, RolePhotographer)
	want := []Role{"biker", "photographer"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got=%v want=%v", got, want)
	}
}

func TestMergeRoles_AlreadyPresent(t *testing.T) {
	t.Parallel()

	got := MergeRoles([]Role{"photographer", "biker"}, RolePhotographer)
	want := []Role{"biker", "photographer"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got=%v want=%v", got, want)
	}
}

func TestMergeRoles_DropsBlanksAndDuplicates(t *testing.T) {
	t.Parallel()

	got := MergeRoles([]Role{"", "biker", "biker"}, RolePhotographer, RolePhotographer)
	want := []Role{"biker", "photographer"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got=%v want=%v", got, want)
	}
}

func TestRolesFromMetadata_Array(t *testing.T) {
	t.Parallel()

	// JSON-decoded metadata arrives as []any.
	md := map[string]any{"roles": []any{"biker", "photographer"}}
	got := RolesFromMetadata(md)
	want := []Role{"biker", "photographer"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got=%v want=%v", got, want)
	}
}

func TestRolesFromMetadata_LegacySingular(t *testing.T) {
	t.Parallel()

	md := map[string]any{"role": "biker"}
	got := RolesFromMetadata(md)
	if !reflect.DeepEqual(got, []Role{"biker"}) {
		t.Fatalf("got=%v", got)
	}
}

func TestRolesFromMetadata_NilAndUnknownShapes(t *testing.T) {
	t.Parallel()

	if got := RolesFromMetadata(nil); got != nil {
		t.Fatalf("nil metadata: got=%v", got)
	}
	if got := RolesFromMetadata(map[string]any{"roles": 42}); got != nil {
		t.Fatalf("bad shape: got=%v", got)
	}
}

func TestNormalizeHumanName(t *testing.T) {
	t.Parallel()

	if got := NormalizeHumanName("  Juan   Pérez "); got != "Juan Pérez" {
		t.Fatalf("got=%q", got)
	}
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	if got := NormalizeEmail("  Fotografa@Example.COM "); got != "fotografa@example.com" {
		t.Fatalf("got=%q", got)
	}
}
