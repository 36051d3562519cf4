package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rmaulana/go-catalog/app/cmd"
	"github.com/rmaulana/go-catalog/app/configs"
	"github.com/rmaulana/go-catalog/app/routes"
	"github.com/rmaulana/go-catalog/app/utils/renderer"
	"github.com/rmaulana/go-catalog/app/utils/sessions"
)

func main() {

	env := configs.LoadEnv()
	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	if err := os.MkdirAll(filepath.Join(env.DataDir, "uploads"), 0o755); err != nil {
		log.Fatalf("Failed to create data directory %s: %v", env.DataDir, err)
	}

	keys, err := configs.LoadSessionKeys(env)
	if err != nil {
		log.Fatalf("Failed to load session keys: %v", err)
	}

	sessionStore := sessions.NewCookieSessionStore(keys.AuthKey, keys.EncKey)
	log.Println("✅ Session store initialized.")

	rnd := renderer.New("templates")
	router := routes.NewRouter(env, keys, sessionStore, rnd)

	server := http.Server{
		Addr:    env.Port,
		Handler: router,
	}

	log.Printf("🚀 Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Println("failed to connecting to the server")
	}

}
