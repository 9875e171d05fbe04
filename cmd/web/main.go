package main

import (
	"flag"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"mikadarshika.com/wedding-web/internal/config"
	"mikadarshika.com/wedding-web/internal/content"
	"mikadarshika.com/wedding-web/internal/invite"
	mw "mikadarshika.com/wedding-web/internal/middleware"
	"mikadarshika.com/wedding-web/internal/rsvp"
	"mikadarshika.com/wedding-web/internal/store"
)

var (
	cfg       config.Config
	logger    *zap.Logger
	site      content.Site
	dataset   *invite.Dataset
	kv        store.KV
	rsvpAPI   *rsvp.Client
	fetcher   *rsvp.Fetcher
	persister rsvp.Persister
	tmplCache *template.Template
)

func main() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	flag.StringVar(&cfg.TemplatesDir, "templates", cfg.TemplatesDir, "templates directory")
	flag.StringVar(&cfg.PublicDir, "public", cfg.PublicDir, "public assets directory")
	flag.Parse()

	logger = newLogger(cfg)
	defer func() { _ = logger.Sync() }()

	if err := initApp(); err != nil {
		logger.Fatal("startup failed", zap.Error(err))
	}
	defer kv.Close()

	if !cfg.Dev {
		// Parse templates once in production
		tc, err := parseTemplates()
		if err != nil {
			logger.Fatal("parse templates", zap.Error(err))
		}
		tmplCache = tc
	}

	sessions := mw.NewSessionManager(cfg.SessionSigningKey, cfg.Prod(), logger)
	r := newRouter(sessions)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("web listening",
		zap.String("addr", cfg.Addr),
		zap.Bool("dev", cfg.Dev),
		zap.Bool("remote_rsvp", rsvpAPI.Configured()),
	)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("listen", zap.Error(err))
	}
}

// initApp loads content and the guest dataset and wires the RSVP plumbing.
func initApp() error {
	var err error
	site, err = content.Load(cfg.ContentDir)
	if err != nil {
		return err
	}

	dataset, err = invite.LoadDataset(filepath.Join(cfg.DataDir, "invites.json"))
	if err != nil {
		return err
	}

	if cfg.StorePath != "" {
		kv, err = store.OpenSQLite(cfg.StorePath)
		if err != nil {
			return err
		}
	} else {
		// kept across requests but not restarts; fine for dev
		kv = store.NewMemory()
	}

	rsvpAPI = rsvp.NewClient(cfg.RSVPAPIURL, cfg.RSVPAPIToken)
	fetcher = rsvp.NewFetcher(rsvpAPI, logger)
	if rsvpAPI.Configured() {
		persister = rsvpAPI
	} else {
		persister = rsvp.LocalPersister{KV: kv, Logger: logger}
	}
	return nil
}

func newRouter(sessions *mw.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// Behind a trusted reverse proxy RealIP derives the client IP from
	// X-Forwarded-For. Ensure only trusted proxies can set those headers.
	r.Use(chimw.RealIP)
	r.Use(sessions.Session)
	r.Use(mw.Logger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	assets := http.StripPrefix("/assets", mw.AssetsWithCache(filepath.Join(cfg.PublicDir, "assets")))
	r.Handle("/assets/*", assets)

	r.Get("/", HomeHandler)
	r.Get("/rsvp", RSVPDialogHandler)
	r.With(mw.CSRF).Post("/rsvp", RSVPSubmitHandler)

	return r
}

func newLogger(cfg config.Config) *zap.Logger {
	var zc zap.Config
	if cfg.Prod() {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	if cfg.LogLevel != "" {
		if lvl, err := zap.ParseAtomicLevel(cfg.LogLevel); err == nil {
			zc.Level = lvl
		}
	}
	l, err := zc.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"now": time.Now,
	}
	// Recursively discover and parse all .tmpl files. ParseGlob doesn't support **.
	var files []string
	if err := filepath.WalkDir(cfg.TemplatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", cfg.TemplatesDir)
	}
	return template.New("_root").Funcs(funcMap).ParseFiles(files...)
}

func templates(w http.ResponseWriter) *template.Template {
	if cfg.Dev {
		tc, err := parseTemplates()
		if err != nil {
			http.Error(w, fmt.Sprintf("template parse error: %v", err), http.StatusInternalServerError)
			return nil
		}
		return tc
	}
	return tmplCache
}

// render executes the base layout. In dev mode, templates are reparsed on
// each request.
func render(w http.ResponseWriter, name string, data any) {
	t := templates(w)
	if t == nil {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, fmt.Sprintf("template exec error: %v", err), http.StatusInternalServerError)
	}
}
