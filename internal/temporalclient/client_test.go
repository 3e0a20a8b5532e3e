package temporalclient

import "testing"

func TestWorkflowIDDeterministic(t *testing.T) {
	a := WorkflowID("My Service", "abcdef0123456789")
	b := WorkflowID("My Service", "abcdef0123456789")
	if a != b {
		t.Fatalf("expected deterministic id, got %q and %q", a, b)
	}
	want := "golden-my-service-abcdef012345"
	if a != want {
		t.Fatalf("got %q, want %q", a, want)
	}
}

func TestWorkflowIDShortRevision(t *testing.T) {
	got := WorkflowID("svc", "abc")
	want := "golden-svc-abc"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWorkflowIDDiffersByRevision(t *testing.T) {
	a := WorkflowID("svc", "abcdef0123456789")
	b := WorkflowID("svc", "fedcba9876543210")
	if a == b {
		t.Fatalf("expected distinct ids, got %q for both", a)
	}
}
