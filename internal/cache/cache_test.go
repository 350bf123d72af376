package cache

import (
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := New[string]()
	if _, ok := c.Get("mako"); ok {
		t.Fatal("Get() on an empty cache reported a hit")
	}

	c.SetSession("mako", "profile")
	if got, ok := c.Get("mako"); !ok || got != "profile" {
		t.Errorf("Get() = %q, %v", got, ok)
	}

	c.Delete("mako")
	if _, ok := c.Get("mako"); ok {
		t.Error("Get() after Delete() reported a hit")
	}
}

func TestExpiry(t *testing.T) {
	c := New[int]()
	c.Set("old", 1, -time.Second)
	c.Set("new", 2, time.Hour)

	if _, ok := c.Get("old"); ok {
		t.Error("expired entry returned")
	}
	if e := c.GetEntry("old"); e == nil || !e.IsExpired() || e.Value != 1 {
		t.Errorf("GetEntry(old) = %+v", e)
	}

	c.Cleanup()
	if e := c.GetEntry("old"); e != nil {
		t.Errorf("GetEntry(old) after Cleanup() = %+v", e)
	}
	if got, ok := c.Get("new"); !ok || got != 2 {
		t.Errorf("Get(new) after Cleanup() = %d, %v", got, ok)
	}
}

func TestEntryAge(t *testing.T) {
	c := New[int]()
	c.Set("k", 1, TTLCatalog)
	e := c.GetEntry("k")
	if e == nil {
		t.Fatal("GetEntry() = nil")
	}
	if age := e.Age(); age < 0 || age > time.Minute {
		t.Errorf("Age() = %v", age)
	}
	if got := e.ExpiresAt.Sub(e.FetchedAt); got != TTLCatalog {
		t.Errorf("ttl = %v, want %v", got, TTLCatalog)
	}
}
