// Command formblocks-demo serves the forms in a content document over HTTP,
// persisting submissions to SQLite.
package main

import (
	"log"
	"os"

	"github.com/goliatone/go-formblocks/pkg/captcha"
	"github.com/goliatone/go-formblocks/pkg/collector"
	"github.com/goliatone/go-formblocks/pkg/content"
	"github.com/goliatone/go-formblocks/pkg/forms"
	"github.com/goliatone/go-formblocks/pkg/notify"
	"github.com/goliatone/go-formblocks/pkg/render"
	"github.com/goliatone/go-formblocks/pkg/renderers/vanilla"
	"github.com/goliatone/go-formblocks/pkg/store"
	"github.com/goliatone/go-formblocks/pkg/web"
)

func main() {
	sourcePath := envOr("FORMBLOCKS_SOURCE", "forms.yaml")
	dbPath := envOr("FORMBLOCKS_DB", "data/formblocks.db")
	listenAddr := envOr("FORMBLOCKS_ADDR", ":8080")

	file, err := os.Open(sourcePath)
	if err != nil {
		log.Fatalf("open content document: %v", err)
	}
	trees, err := content.Load(file)
	file.Close()
	if err != nil {
		log.Fatalf("parse content document: %v", err)
	}

	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer db.Close()

	renderer, err := vanilla.New()
	if err != nil {
		log.Fatalf("configure renderer: %v", err)
	}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	options := []forms.Option{
		forms.WithCollector(collector.New(collector.WithOptionsProvider(db))),
		forms.WithRegistry(registry),
		forms.WithStore(db),
		forms.WithNotifier(notifierFromEnv()),
	}
	if endpoint := os.Getenv("FORMBLOCKS_CAPTCHA_ENDPOINT"); endpoint != "" {
		verifier, err := captcha.NewHTTPVerifier(endpoint, os.Getenv("FORMBLOCKS_CAPTCHA_SECRET"))
		if err != nil {
			log.Fatalf("configure captcha: %v", err)
		}
		options = append(options, forms.WithCaptchaVerifier(verifier))
	}

	server, err := web.New(forms.New(options...), web.TreeSource(trees),
		web.WithSessionSecret(envOr("FORMBLOCKS_SESSION_SECRET", "formblocks-dev-secret")),
		web.WithCookieSecure(os.Getenv("FORMBLOCKS_COOKIE_SECURE") == "true"),
	)
	if err != nil {
		log.Fatalf("configure server: %v", err)
	}

	log.Printf("serving forms from %s on %s", sourcePath, listenAddr)
	if err := server.Echo.Start(listenAddr); err != nil {
		log.Fatal(err)
	}
}

func notifierFromEnv() notify.Notifier {
	addr := os.Getenv("FORMBLOCKS_SMTP_ADDR")
	from := os.Getenv("FORMBLOCKS_SMTP_FROM")
	if addr == "" || from == "" {
		return &notify.Log{}
	}
	notifier, err := notify.NewSMTP(addr, from)
	if err != nil {
		log.Fatalf("configure smtp: %v", err)
	}
	return notifier
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
