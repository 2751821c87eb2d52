package repository

import (
	"context"
	"testing"
)

func TestParticipantRosterOrderAndDuplicates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	g := seedGame(t, db, "Catan", 1, 39.99, 4.00)
	op := seedUser(t, db, "staff", "SELLER")
	alice := seedUser(t, db, "alice", "CLIENT")
	bob := seedUser(t, db, "bob", "CLIENT")

	s, _ := NewSessionRepo(db).Start(ctx, g.ID, op.ID)
	repo := NewParticipantRepo(db)

	// The roster is append-only and keeps duplicates.
	for _, uid := range []uint64{alice.ID, bob.ID, alice.ID} {
		if _, err := repo.Register(ctx, s.ID, uid); err != nil {
			t.Fatalf("Register(%d): %v", uid, err)
		}
	}

	ids, err := repo.ListBySession(ctx, s.ID)
	if err != nil {
		t.Fatalf("ListBySession: %v", err)
	}
	want := []uint64{alice.ID, bob.ID, alice.ID}
	if len(ids) != len(want) {
		t.Fatalf("got %d entries, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %d, want %d", i, ids[i], want[i])
		}
	}
}

func TestParticipantJoinsClosedSession(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	g := seedGame(t, db, "Azul", 1, 29.99, 3.00)
	op := seedUser(t, db, "staff", "SELLER")
	late := seedUser(t, db, "latecomer", "CLIENT")

	sessions := NewSessionRepo(db)
	s, _ := sessions.Start(ctx, g.ID, op.ID)
	if _, err := sessions.Finalize(ctx, s.ID); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	// Registration after close is allowed; the roster records who played,
	// not who is currently playing.
	if _, err := NewParticipantRepo(db).Register(ctx, s.ID, late.ID); err != nil {
		t.Fatalf("Register on closed session: %v", err)
	}
}

func TestParticipantUnknownReferences(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	g := seedGame(t, db, "Dixit", 1, 27.99, 2.00)
	op := seedUser(t, db, "staff", "SELLER")
	s, _ := NewSessionRepo(db).Start(ctx, g.ID, op.ID)

	repo := NewParticipantRepo(db)
	if _, err := repo.Register(ctx, 9999, op.ID); err != ErrSessionNotFound {
		t.Errorf("unknown session: got %v, want ErrSessionNotFound", err)
	}
	if _, err := repo.Register(ctx, s.ID, 9999); err != ErrUserNotFound {
		t.Errorf("unknown user: got %v, want ErrUserNotFound", err)
	}

	ids, err := repo.ListBySession(ctx, 9999)
	if err != nil {
		t.Fatalf("ListBySession: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("unknown session roster not empty: %v", ids)
	}
}
