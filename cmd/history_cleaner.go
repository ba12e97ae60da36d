package main

import (
	"context"
	"log"
	"time"

	"imoveisBack/internal/services"
)

const (
	historyCleanerInterval = 12 * time.Hour
	historyCleanerTimeout  = 1 * time.Minute
)

// startHistoryCleaner periodically archives rented/sold listings whose
// status change fell out of the retention window, keeping the admin history
// view bounded.
func startHistoryCleaner(ctx context.Context, svc *services.PropertyService, infoLog, errorLog *log.Logger) {
	if svc == nil {
		return
	}

	go func() {
		ticker := time.NewTicker(historyCleanerInterval)
		defer ticker.Stop()

		run := func() {
			runCtx, cancel := context.WithTimeout(ctx, historyCleanerTimeout)
			defer cancel()

			archived, err := svc.ArchiveExpired(runCtx, time.Now())
			if err != nil {
				if errorLog != nil {
					errorLog.Printf("history cleaner: failed to archive expired listings: %v", err)
				}
				return
			}
			if archived > 0 && infoLog != nil {
				infoLog.Printf("history cleaner: archived %d expired listings", archived)
			}
		}

		run()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				run()
			}
		}
	}()
}
