package loadbalancer

import "testing"

func TestRoundRobin_Rotation(t *testing.T) {
	rr := NewRoundRobin([]string{"http://a:8080", "http://b:8080", "http://c:8080"})

	want := []string{"http://a:8080", "http://b:8080", "http://c:8080", "http://a:8080"}
	for i, w := range want {
		if got := rr.Next(); got != w {
			t.Errorf("Next() #%d = %q, want %q", i, got, w)
		}
	}
}

func TestRoundRobin_EmptyFallback(t *testing.T) {
	rr := NewRoundRobin(nil)
	if got := rr.Next(); got != "http://localhost:8080" {
		t.Errorf("Next() = %q, want default fallback", got)
	}
}

func TestRoundRobin_AddServer(t *testing.T) {
	rr := NewRoundRobin([]string{"http://a:8080"})
	rr.AddServer("http://b:8080")

	servers := rr.GetServers()
	if len(servers) != 2 || servers[1] != "http://b:8080" {
		t.Errorf("servers = %v", servers)
	}

	rr.Next()
	if got := rr.Next(); got != "http://b:8080" {
		t.Errorf("rotation should include the added server, got %q", got)
	}
}

func TestRoundRobin_RemoveServer(t *testing.T) {
	rr := NewRoundRobin([]string{"http://a:8080", "http://b:8080"})

	// Advance past the server about to be removed
	rr.Next()
	rr.Next()
	rr.RemoveServer("http://b:8080")

	servers := rr.GetServers()
	if len(servers) != 1 || servers[0] != "http://a:8080" {
		t.Errorf("servers = %v", servers)
	}
	if got := rr.Next(); got != "http://a:8080" {
		t.Errorf("Next() = %q after removal", got)
	}
}

func TestRoundRobin_GetStats(t *testing.T) {
	rr := NewRoundRobin([]string{"http://a:8080", "http://b:8080"})
	stats := rr.GetStats()

	if stats["algorithm"] != "round-robin" {
		t.Errorf("algorithm = %v", stats["algorithm"])
	}
	if stats["server_count"] != 2 {
		t.Errorf("server_count = %v", stats["server_count"])
	}
}
