package listing

import "testing"

func TestStatusFromStored(t *testing.T) {
	yes, no := true, false
	tests := []struct {
		name string
		in   *bool
		want ApprovalStatus
	}{
		{"absent means pending", nil, StatusPending},
		{"true means approved", &yes, StatusApproved},
		{"false means declined", &no, StatusDeclined},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFromStored(tt.in); got != tt.want {
				t.Errorf("StatusFromStored(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStoredValue(t *testing.T) {
	if !StatusApproved.StoredValue() {
		t.Error("approved should store as true")
	}
	if StatusDeclined.StoredValue() {
		t.Error("declined should store as false")
	}
	if StatusPending.StoredValue() {
		t.Error("pending should store as false")
	}
}

func TestParseOwner(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantID   string
		wantName string
	}{
		{"well formed", `{"id":"u1","name":"Ada"}`, "u1", "Ada"},
		{"empty string", "", "", UnknownOwner},
		{"malformed json", `{"id":`, "", UnknownOwner},
		{"not an object", `"just a string"`, "", UnknownOwner},
		{"missing name", `{"id":"u2"}`, "u2", UnknownOwner},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseOwner(tt.raw)
			if got.ID != tt.wantID || got.DisplayName != tt.wantName {
				t.Errorf("ParseOwner(%q) = %+v, want {ID:%q DisplayName:%q}",
					tt.raw, got, tt.wantID, tt.wantName)
			}
		})
	}
}

func TestCategoryValid(t *testing.T) {
	for _, cat := range Categories {
		if !cat.Valid() {
			t.Errorf("%s should be valid", cat)
		}
	}
	if Category("pets").Valid() {
		t.Error("unknown category should not be valid")
	}
	if len(Categories) != 5 {
		t.Fatalf("expected 5 categories, got %d", len(Categories))
	}
}
