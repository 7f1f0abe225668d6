package container

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"mentorship/admin/internal/client"
	"mentorship/admin/internal/config"
	"mentorship/admin/internal/content"
	"mentorship/admin/internal/domain"
	"mentorship/admin/internal/editor"
	"mentorship/admin/internal/loading"
	"mentorship/admin/internal/notify"
	"mentorship/admin/internal/queue"
	"mentorship/admin/internal/repository"
	"mentorship/admin/internal/state"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config        *config.Config
	Client        client.AdminClient
	Notifier      notify.Notifier
	Tracker       *loading.Tracker
	Editor        *editor.Editor
	Notifications *queue.StreamNotifier
	Changes       repository.PageChangeRepository

	// Page forms opened by Run, keyed by page type
	Forms map[domain.PageType]*content.Form

	db    *pgxpool.Pool
	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	setupLogging(cfg.Log)

	container := &Container{
		Config:  cfg,
		Client:  client.NewAdminClient(cfg.API),
		Tracker: loading.NewTracker(),
		Forms:   make(map[domain.PageType]*content.Form),
	}

	notifiers := notify.Multi{notify.LogNotifier{}}
	editorOpts := []editor.Option{editor.WithTracker(container.Tracker)}

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})

		// Test connection
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("✅ Connected to Redis successfully")

		container.redis = rdb
		container.Notifications = queue.NewStreamNotifier(rdb, cfg.Redis.KeyPrefix)
		notifiers = append(notifiers, container.Notifications)
		editorOpts = append(editorOpts, editor.WithExpansionStore(state.NewRedisExpansionStore(rdb, cfg.Redis.KeyPrefix)))
	}

	if cfg.Database.Enabled {
		db, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			container.Close()
			return nil, fmt.Errorf("failed to create database pool: %w", err)
		}
		container.db = db

		if err := db.Ping(ctx); err != nil {
			container.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		changes := repository.NewPageChangeRepository(db)
		if err := changes.EnsureSchema(ctx); err != nil {
			container.Close()
			return nil, err
		}
		container.Changes = changes
		log.Info("✅ Connected to PostgreSQL successfully")
	}

	container.Notifier = notifiers
	container.Editor = editor.New(container.Client, container.Notifier, editorOpts...)

	return container, nil
}

func setupLogging(cfg config.LogConfig) {
	log.SetOutput(os.Stdout)
	if cfg.JSON {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		log.Warnf("⚠️ Unknown log level %q, using info", cfg.Level)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

// Run loads the dashboard data concurrently, prints the configured category
// view and saves the expansion state.
func (c *Container) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return c.Editor.Load(gctx)
	})

	g.Go(func() error {
		return c.openPages(gctx)
	})

	g.Go(func() error {
		return c.logOverview(gctx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	c.logCategoryView()

	if err := c.Editor.PersistExpansion(ctx); err != nil {
		log.WithError(err).Warn("⚠️ Failed to persist expanded categories")
	}

	if c.Notifications != nil {
		recent, err := c.Notifications.Recent(ctx, 5)
		if err != nil {
			log.WithError(err).Warn("⚠️ Failed to read recent notifications")
		}
		for _, n := range recent {
			log.Debugf("📣 [%s] %s", n.Level, n.Message)
		}
	}

	return nil
}

func (c *Container) openPages(ctx context.Context) error {
	pages, err := c.Client.ListPages(ctx)
	if err != nil {
		c.Notifier.Error(notify.Message(err, "Failed to load pages"))
		return err
	}

	var opts []content.FormOption
	opts = append(opts, content.WithTracker(c.Tracker))
	if c.Changes != nil {
		opts = append(opts, content.WithChangeRecorder(c.Changes))
	}

	for _, page := range pages {
		form, err := content.OpenForm(page, c.Client, c.Notifier, opts...)
		if err != nil {
			log.WithField("page", page.ID).WithError(err).Warn("⚠️ Skipping page")
			continue
		}
		c.Forms[page.Type] = form
		log.Infof("📄 Opened %s page %q", page.Type.GetPageName(), form.Title())
	}

	for _, pageType := range domain.PageTypes {
		if _, ok := c.Forms[pageType]; !ok {
			log.Infof("📭 No %s page yet", pageType.GetPageName())
		}
	}
	return nil
}

// logOverview reports the secondary resources. Failures are logged and do
// not stop the run.
func (c *Container) logOverview(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		faqs, err := c.Client.ListFAQs(gctx)
		if err != nil {
			log.WithError(err).Warn("⚠️ Failed to load FAQs")
			return nil
		}
		log.Infof("❓ %d FAQs", len(faqs))
		return nil
	})

	g.Go(func() error {
		members, err := c.Client.ListTeamMembers(gctx)
		if err != nil {
			log.WithError(err).Warn("⚠️ Failed to load team members")
			return nil
		}
		log.Infof("👥 %d team members", len(members))
		return nil
	})

	g.Go(func() error {
		stats, err := c.Client.GetWebsiteStats(gctx)
		if err != nil {
			log.WithError(err).Warn("⚠️ Failed to load website stats")
			return nil
		}
		log.WithFields(log.Fields{
			"experts":  stats.TotalExperts,
			"students": stats.TotalStudents,
			"sessions": stats.TotalSessions,
		}).Info("📊 Website stats")
		return nil
	})

	g.Go(func() error {
		staff, err := c.Client.ListStaff(gctx)
		if err != nil {
			log.WithError(err).Warn("⚠️ Failed to load staff")
			return nil
		}
		students, err := c.Client.ListStudents(gctx)
		if err != nil {
			log.WithError(err).Warn("⚠️ Failed to load students")
			return nil
		}
		log.Infof("🧑‍🏫 %d staff, 🎓 %d students", len(staff), len(students))
		return nil
	})

	return g.Wait()
}

func (c *Container) logCategoryView() {
	view := c.Config.View
	categories := c.Editor.View(editor.Query{
		Search:     view.Search,
		SortKey:    editor.ParseSortKey(view.SortKey),
		Descending: view.SortDesc,
		HideEmpty:  view.HideEmpty,
	})

	log.Infof("🗂️ Showing %d categories", len(categories))
	for _, category := range categories {
		log.WithFields(log.Fields{
			"id":            category.ID.String(),
			"subcategories": len(category.Subcategories),
			"experts":       category.EffectiveExpertCount(),
		}).Info("📁 " + category.Name)
		for _, sub := range category.Subcategories {
			log.Debugf("   └─ %s (%d experts)", sub.Name, sub.ExpertCount)
		}
	}
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			return fmt.Errorf("failed to close Redis client: %w", err)
		}
	}

	log.Info("Container shut down successfully")
	return nil
}
