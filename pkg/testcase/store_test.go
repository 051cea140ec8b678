package testcase

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	tc := New("登录测试", "验证登录流程")
	tc.Steps = []Step{
		{Action: "打开页面", Data: "https://example.com/login"},
		{Action: "点击登录按钮"},
	}
	tc.ExpectedResults = []string{"dashboard shown"}
	tc.Tags = []string{"smoke"}

	if err := s.Save(tc); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load(tc.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Name != tc.Name || got.Description != tc.Description {
		t.Errorf("roundtrip mismatch: %+v", got)
	}
	if len(got.Steps) != 2 || got.Steps[0].Data != "https://example.com/login" {
		t.Errorf("steps mismatch: %+v", got.Steps)
	}
	if got.Priority != "medium" || got.TestType != "functional" || got.Status != "draft" {
		t.Errorf("defaults not persisted: %+v", got)
	}
}

func TestStoreListSortedByName(t *testing.T) {
	s := newTestStore(t)
	for _, name := range []string{"charlie", "alpha", "bravo"} {
		if err := s.Save(New(name, "")); err != nil {
			t.Fatal(err)
		}
	}
	cases, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(cases) != 3 {
		t.Fatalf("expected 3 cases, got %d", len(cases))
	}
	for i, want := range []string{"alpha", "bravo", "charlie"} {
		if cases[i].Name != want {
			t.Errorf("position %d: got %s", i, cases[i].Name)
		}
	}
}

func TestStoreListSkipsBadFiles(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(New("good", "")); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(s.Dir(), "broken.yaml"), []byte(":\tnot yaml"), 0644); err != nil {
		t.Fatal(err)
	}
	cases, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(cases) != 1 {
		t.Errorf("bad file should be skipped, got %d cases", len(cases))
	}
}

func TestStoreSearch(t *testing.T) {
	s := newTestStore(t)
	login := New("Login flow", "")
	login.Tags = []string{"smoke"}
	if err := s.Save(login); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(New("Checkout", "")); err != nil {
		t.Fatal(err)
	}

	byName, err := s.Search("login")
	if err != nil || len(byName) != 1 {
		t.Errorf("search by name: %v, %d results", err, len(byName))
	}
	byTag, err := s.Search("smoke")
	if err != nil || len(byTag) != 1 {
		t.Errorf("search by tag: %v, %d results", err, len(byTag))
	}
}

func TestStoreDelete(t *testing.T) {
	s := newTestStore(t)
	tc := New("doomed", "")
	if err := s.Save(tc); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(tc.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Load(tc.ID); err == nil {
		t.Error("expected load failure after delete")
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := Load([]byte("id: x\nname: y\nbogus_field: z\n"))
	if err == nil {
		t.Error("strict decode must reject unknown fields")
	}
}
