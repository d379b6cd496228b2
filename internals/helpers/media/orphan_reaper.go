package media

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// OrphanReaper removes hosted photos that no student row points to any
// more. A crash between upload and insert, or a failed post-delete cleanup,
// leaves such assets behind.
type OrphanReaper struct {
	Host   MediaHost
	Folder string
	Grace  time.Duration // assets younger than this are never touched
	DryRun bool
	// Referenced returns every photo URL currently stored.
	Referenced func(ctx context.Context) ([]string, error)
	Now        func() time.Time
}

func (r *OrphanReaper) RunOnce(ctx context.Context) ([]string, error) {
	urls, err := r.Referenced(ctx)
	if err != nil {
		return nil, err
	}
	keep := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		if id, ok := r.Host.PublicIDFromURL(u); ok {
			keep[id] = struct{}{}
		}
	}

	assets, err := r.Host.List(ctx, r.Folder)
	if err != nil {
		return nil, err
	}

	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	threshold := now().Add(-r.Grace)

	var orphans []string
	for _, a := range assets {
		if _, ok := keep[a.PublicID]; ok {
			continue
		}
		if a.CreatedAt.After(threshold) {
			continue
		}
		orphans = append(orphans, a.PublicID)
	}

	if len(orphans) == 0 {
		log.Printf("[MEDIA-REAPER] nothing to delete; scanned=%d under %q", len(assets), r.Folder)
		return nil, nil
	}
	if r.DryRun {
		log.Printf("[MEDIA-REAPER] DRY-RUN would delete %d/%d assets under %q", len(orphans), len(assets), r.Folder)
		return orphans, nil
	}

	deleted := make([]string, 0, len(orphans))
	for _, id := range orphans {
		if err := r.Host.Destroy(ctx, id); err != nil {
			log.Printf("[MEDIA-REAPER] destroy %s échoué: %v", id, err)
			continue
		}
		deleted = append(deleted, id)
	}
	log.Printf("[MEDIA-REAPER] deleted %d assets (scanned=%d) under %q", len(deleted), len(assets), r.Folder)
	return deleted, nil
}

// Start schedules RunOnce. The caller owns the returned cron and stops it on
// shutdown.
func (r *OrphanReaper) Start(schedule string) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
		defer cancel()
		if _, err := r.RunOnce(ctx); err != nil {
			log.Printf("[MEDIA-REAPER] error: %v", err)
		}
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[MEDIA-REAPER] started schedule=%q folder=%q grace=%s dryRun=%v",
		schedule, r.Folder, r.Grace, r.DryRun)
	c.Start()
	return c, nil
}
