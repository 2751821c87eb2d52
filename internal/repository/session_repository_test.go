package repository

import (
	"context"
	"testing"
	"time"
)

func TestSessionStartAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	g := seedGame(t, db, "Catan", 1, 39.99, 10.00)
	op := seedUser(t, db, "staff", "SELLER")

	repo := NewSessionRepo(db)
	s, err := repo.Start(ctx, g.ID, op.ID)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.ID == 0 || s.GameID != g.ID || s.OperatorID != op.ID {
		t.Errorf("session fields: %+v", s)
	}
	if !s.Open() {
		t.Error("fresh session not open")
	}

	got, err := repo.GetByID(ctx, s.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.EndTime != nil || got.DurationHours != nil || got.TotalPrice != nil {
		t.Errorf("open session has closed fields: %+v", got)
	}

	if _, err := repo.Start(ctx, 9999, op.ID); err != ErrGameNotFound {
		t.Errorf("unknown game: got %v, want ErrGameNotFound", err)
	}
	if _, err := repo.GetByID(ctx, 9999); err != ErrSessionNotFound {
		t.Errorf("unknown session: got %v, want ErrSessionNotFound", err)
	}
}

// 90 minutes at 10.00 per hour must bill exactly 1.5 hours and 15.00.
func TestSessionFinalizeComputesDurationAndPrice(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	g := seedGame(t, db, "Azul", 1, 29.99, 10.00)
	op := seedUser(t, db, "staff", "SELLER")

	start := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	repo := NewSessionRepo(db)
	repo.Now = func() time.Time { return start }
	s, err := repo.Start(ctx, g.ID, op.ID)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	repo.Now = func() time.Time { return start.Add(90 * time.Minute) }
	closed, err := repo.Finalize(ctx, s.ID)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if closed.Open() {
		t.Fatal("finalized session still open")
	}
	if closed.DurationHours == nil || *closed.DurationHours != 1.5 {
		t.Errorf("duration = %v, want 1.5", closed.DurationHours)
	}
	if closed.TotalPrice == nil || *closed.TotalPrice != 15.00 {
		t.Errorf("price = %v, want 15.00", closed.TotalPrice)
	}

	stored, err := repo.GetByID(ctx, s.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.DurationHours == nil || *stored.DurationHours != 1.5 {
		t.Errorf("stored duration = %v, want 1.5", stored.DurationHours)
	}
	if stored.TotalPrice == nil || *stored.TotalPrice != 15.00 {
		t.Errorf("stored price = %v, want 15.00", stored.TotalPrice)
	}
}

func TestSessionFinalizeIsSingleUse(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	g := seedGame(t, db, "Dixit", 1, 27.99, 8.00)
	op := seedUser(t, db, "staff", "SELLER")

	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	repo := NewSessionRepo(db)
	repo.Now = func() time.Time { return start }
	s, _ := repo.Start(ctx, g.ID, op.ID)

	repo.Now = func() time.Time { return start.Add(30 * time.Minute) }
	first, err := repo.Finalize(ctx, s.ID)
	if err != nil {
		t.Fatalf("first Finalize: %v", err)
	}

	// A later second attempt must not move the end time or the billing.
	repo.Now = func() time.Time { return start.Add(5 * time.Hour) }
	if _, err := repo.Finalize(ctx, s.ID); err != ErrSessionClosed {
		t.Fatalf("second Finalize: got %v, want ErrSessionClosed", err)
	}

	stored, _ := repo.GetByID(ctx, s.ID)
	if *stored.DurationHours != *first.DurationHours || *stored.TotalPrice != *first.TotalPrice {
		t.Errorf("second finalize rewrote billing: %+v", stored)
	}
	if !stored.EndTime.Equal(*first.EndTime) {
		t.Errorf("end time moved: %v vs %v", stored.EndTime, first.EndTime)
	}

	if _, err := repo.Finalize(ctx, 9999); err != ErrSessionNotFound {
		t.Errorf("unknown session: got %v, want ErrSessionNotFound", err)
	}
}

func TestSessionListOrderedByStart(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	g := seedGame(t, db, "Carcassonne", 1, 34.99, 6.00)
	op := seedUser(t, db, "staff", "SELLER")

	repo := NewSessionRepo(db)
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	// Insert out of chronological order.
	for _, offset := range []time.Duration{2 * time.Hour, 0, time.Hour} {
		at := base.Add(offset)
		repo.Now = func() time.Time { return at }
		if _, err := repo.Start(ctx, g.ID, op.ID); err != nil {
			t.Fatalf("Start: %v", err)
		}
	}

	sessions, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("got %d sessions, want 3", len(sessions))
	}
	for i := 1; i < len(sessions); i++ {
		if sessions[i].StartTime.Before(sessions[i-1].StartTime) {
			t.Errorf("sessions out of order at %d", i)
		}
	}
}

func TestSessionDeleteCascadesRoster(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	g := seedGame(t, db, "Splendor", 1, 31.99, 4.00)
	op := seedUser(t, db, "staff", "SELLER")
	player := seedUser(t, db, "alice", "CLIENT")

	sessions := NewSessionRepo(db)
	participants := NewParticipantRepo(db)
	s, _ := sessions.Start(ctx, g.ID, op.ID)
	if _, err := participants.Register(ctx, s.ID, player.ID); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := sessions.Delete(ctx, s.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	ids, err := participants.ListBySession(ctx, s.ID)
	if err != nil {
		t.Fatalf("ListBySession: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("roster survived session delete: %v", ids)
	}
	if err := sessions.Delete(ctx, s.ID); err != ErrSessionNotFound {
		t.Errorf("second delete: got %v, want ErrSessionNotFound", err)
	}
}
