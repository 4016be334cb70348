package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/wricardo/mcp-training/battleship/game/service"
	"github.com/wricardo/mcp-training/battleship/game/session"
)

// Readers that touch the access time run alongside listings; run with -race
func TestGameService_ConcurrentReads(t *testing.T) {
	svc := service.NewGameService(session.NewManager(), NewMockConfigManager())
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 4; i++ {
		wg.Add(4)
		go func() {
			defer wg.Done()
			if _, err := svc.GetSession(ctx, info.ID); err != nil {
				errs <- err
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := svc.GetGameState(ctx, info.ID); err != nil {
				errs <- err
			}
		}()
		go func() {
			defer wg.Done()
			sessions, err := svc.ListSessions(ctx)
			if err != nil {
				errs <- err
				return
			}
			for _, s := range sessions {
				_ = s.LastAccessedAt
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := svc.SetFleetCount(ctx, info.ID, 2); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Unexpected error: %v", err)
	}
}
