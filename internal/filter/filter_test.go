package filter

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw         string
		wantInclude []string
		wantExclude []string
		wantOK      bool
	}{
		{"+*.go -vendor", []string{"*.go"}, []string{"vendor"}, true},
		{"foo", []string{"foo"}, nil, true},
		{"", nil, nil, false},
		{"   ", nil, nil, false},
		{"+*.go +*.md -vendor -dist", []string{"*.go", "*.md"}, []string{"vendor", "dist"}, true},
		{"*.lua -spec", []string{"*.lua"}, []string{"spec"}, true},
		{"+ -", nil, nil, true}, // bare sigils carry no pattern
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			set, ok := Parse(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if !reflect.DeepEqual(set.Include, tt.wantInclude) {
				t.Errorf("include = %v, want %v", set.Include, tt.wantInclude)
			}
			if !reflect.DeepEqual(set.Exclude, tt.wantExclude) {
				t.Errorf("exclude = %v, want %v", set.Exclude, tt.wantExclude)
			}
		})
	}
}

func TestArgsIncludesFirstExcludesNegated(t *testing.T) {
	set := Set{Include: []string{"*.go"}, Exclude: []string{"vendor", "dist"}}

	want := []string{"--glob", "*.go", "--glob", "!vendor", "--glob", "!dist"}
	if got := set.Args(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestStoreApplyReplaces(t *testing.T) {
	store := NewStore()
	store.Apply("+*.go -vendor")
	store.Apply("+*.md")

	got := store.Active()
	if !got.Equal(Set{Include: []string{"*.md"}}) {
		t.Errorf("apply did not replace: %v", got)
	}
}

func TestStoreEmptyInputRetainsPrior(t *testing.T) {
	store := NewStore()
	store.Apply("+*.go -vendor")

	if store.Apply("") {
		t.Error("empty input must report false")
	}

	got := store.Active()
	want := Set{Include: []string{"*.go"}, Exclude: []string{"vendor"}}
	if !got.Equal(want) {
		t.Errorf("prior set was not retained: %v", got)
	}
}

func TestStoreClear(t *testing.T) {
	store := NewStore()
	store.Apply("+*.go -vendor")
	store.Clear()

	if !store.Active().Empty() {
		t.Errorf("clear left %v", store.Active())
	}
}

func TestStringRoundTrip(t *testing.T) {
	set, _ := Parse("+*.go -vendor")
	again, ok := Parse(set.String())
	if !ok || !again.Equal(set) {
		t.Errorf("round trip changed the set: %v vs %v", set, again)
	}
}

func TestActiveReturnsCopy(t *testing.T) {
	store := NewStore()
	store.Apply("+*.go")

	got := store.Active()
	got.Include[0] = "mutated"

	if store.Active().Include[0] != "*.go" {
		t.Error("Active leaked internal state")
	}
}
